package service

import (
	"strings"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/validation"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

func (in ReviewInput) normalize() ReviewInput {
	in.Comment = strings.TrimSpace(in.Comment)
	return in
}

func validateReview(in ReviewInput) error {
	return validation.Struct(in)
}

// ListQuery is the raw paging request; Normalize applies defaults and bounds.
type ListQuery struct {
	Page  int
	Limit int
	Sort  domain.SortOrder
}

func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.Page > constants.MaxPage {
		q.Page = constants.MaxPage
	}
	if q.Limit < 1 {
		q.Limit = constants.DefaultPageLimit
	}
	if q.Limit > constants.MaxPageLimit {
		q.Limit = constants.MaxPageLimit
	}
	q.Sort = domain.ParseSortOrder(string(q.Sort))
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func pageCount(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
