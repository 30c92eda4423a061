package domain

import (
	"math"
	"time"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
)

type ID string

// Review is one user's rating of the movie. Username and FullName are the
// author's display fields, filled in by every read.
type Review struct {
	ID        ID
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	FullName  string
}

// Stats is the maintained aggregate over all reviews.
type Stats struct {
	TotalReviews int64
	RatingSum    int64
	UpdatedAt    time.Time
}

func (s Stats) AverageRating() float64 {
	if s.TotalReviews <= 0 {
		return 0
	}
	avg := float64(s.RatingSum) / float64(s.TotalReviews)
	return math.Round(avg*100) / 100
}

type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

// ParseSortOrder falls back to SortNewest for anything unrecognised.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortHighest:
		return SortHighest
	case SortLowest:
		return SortLowest
	default:
		return SortNewest
	}
}

var (
	ErrReviewExists = commonerrors.NewConflictError(
		"REVIEW_ALREADY_EXISTS",
		"you have already reviewed this movie, update your review instead",
	)

	// ErrReviewNotFound is returned both when the review is absent and when
	// it belongs to someone else.
	ErrReviewNotFound = commonerrors.NewNotFoundError(
		"REVIEW_NOT_FOUND",
		"review not found or not yours",
	)
)
