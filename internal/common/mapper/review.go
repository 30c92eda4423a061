package mapper

import (
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	reviewdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
)

func ReviewToDTO(review reviewdomain.Review) dto.Review {
	return dto.Review{
		ID:        string(review.ID),
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		Username:  review.Username,
		FullName:  review.FullName,
	}
}

func ReviewsToDTO(reviews []reviewdomain.Review) []dto.Review {
	out := make([]dto.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToDTO(r))
	}
	return out
}

func StatsToDTO(stats reviewdomain.Stats) dto.Stats {
	return dto.Stats{
		AverageRating: stats.AverageRating(),
		TotalReviews:  stats.TotalReviews,
	}
}
