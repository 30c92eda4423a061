package service

import (
	"context"
	"errors"
	"time"

	commoncrypto "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/crypto"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/mapper"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/validation"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/feed"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/repository"
)

// Publisher receives an event after each committed mutation. Publishing is
// best effort and cannot fail the request.
type Publisher interface {
	Publish(ctx context.Context, event feed.Event)
}

type Deps struct {
	Repo        repository.Repository
	IDGenerator commoncrypto.IDGenerator
	Publisher   Publisher
	Log         *logger.Logger
}

type ReviewService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	publisher   Publisher
	log         *logger.Logger
}

func NewReviewService(deps Deps) *ReviewService {
	return &ReviewService{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		publisher:   deps.Publisher,
		log:         deps.Log,
	}
}

type ListResult struct {
	Reviews    []dto.Review
	Pagination dto.Pagination
}

func (s *ReviewService) List(ctx context.Context, query ListQuery) (result ListResult, err error) {
	defer observeDuration("list", time.Now())
	defer func() { recordOperation("list", err) }()

	query = query.Normalize()

	reviews, err := s.repo.List(ctx, query.Sort, query.Limit, query.Offset())
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Reviews: mapper.ReviewsToDTO(reviews),
		Pagination: dto.Pagination{
			Total: total,
			Page:  query.Page,
			Limit: query.Limit,
			Pages: pageCount(total, query.Limit),
		},
	}, nil
}

func (s *ReviewService) Create(ctx context.Context, userID string, input ReviewInput) (out dto.Review, err error) {
	defer observeDuration("create", time.Now())
	defer func() { recordOperation("create", err) }()

	input = input.normalize()
	if err := validateReview(input); err != nil {
		return dto.Review{}, err
	}

	exists, err := s.repo.ExistsByUser(ctx, userID)
	if err != nil {
		return dto.Review{}, err
	}
	if exists {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "review_create_conflict",
		}).Info("review already exists for user")
		return dto.Review{}, domain.ErrReviewExists
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return dto.Review{}, commonerrors.ErrInternalError.WithCause(err)
	}

	// reviews_user_id_key still settles concurrent creates by the same user
	review, stats, err := s.repo.Create(ctx, domain.Review{
		ID:      domain.ID(id),
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		s.logFailure(ctx, "review_create_failed", userID, err)
		return dto.Review{}, err
	}

	out = mapper.ReviewToDTO(review)
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   userID,
		"review_id": out.ID,
		"rating":    out.Rating,
		"action":    "review_create",
	}).Info("review created")

	s.publish(ctx, feed.Event{Type: feed.EventReviewCreated, Review: &out, Stats: mapper.StatsToDTO(stats)})
	return out, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, input ReviewInput) (out dto.Review, err error) {
	defer observeDuration("update", time.Now())
	defer func() { recordOperation("update", err) }()

	input = input.normalize()
	if err := validateReview(input); err != nil {
		return dto.Review{}, err
	}
	if !validation.IsUUID(reviewID) {
		return dto.Review{}, domain.ErrReviewNotFound
	}

	review, stats, err := s.repo.Update(ctx, domain.ID(reviewID), userID, input.Rating, input.Comment)
	if err != nil {
		s.logFailure(ctx, "review_update_failed", userID, err)
		return dto.Review{}, err
	}

	out = mapper.ReviewToDTO(review)
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   userID,
		"review_id": out.ID,
		"rating":    out.Rating,
		"action":    "review_update",
	}).Info("review updated")

	s.publish(ctx, feed.Event{Type: feed.EventReviewUpdated, Review: &out, Stats: mapper.StatsToDTO(stats)})
	return out, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) (err error) {
	defer observeDuration("delete", time.Now())
	defer func() { recordOperation("delete", err) }()

	if !validation.IsUUID(reviewID) {
		return domain.ErrReviewNotFound
	}

	stats, err := s.repo.Delete(ctx, domain.ID(reviewID), userID)
	if err != nil {
		s.logFailure(ctx, "review_delete_failed", userID, err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id":   userID,
		"review_id": reviewID,
		"action":    "review_delete",
	}).Info("review deleted")

	s.publish(ctx, feed.Event{Type: feed.EventReviewDeleted, ReviewID: reviewID, Stats: mapper.StatsToDTO(stats)})
	return nil
}

func (s *ReviewService) Stats(ctx context.Context) (out dto.Stats, err error) {
	defer observeDuration("stats", time.Now())
	defer func() { recordOperation("stats", err) }()

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return dto.Stats{}, err
	}
	return mapper.StatsToDTO(stats), nil
}

func (s *ReviewService) publish(ctx context.Context, event feed.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, event)
}

func (s *ReviewService) logFailure(ctx context.Context, action, userID string, err error) {
	entry := s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"action":  action,
	})
	var de commonerrors.DomainError
	if errors.As(err, &de) && de.HTTPStatus() < 500 {
		entry.Infof("%s: %v", action, err)
		return
	}
	entry.Errorf("%s: %v", action, err)
}
