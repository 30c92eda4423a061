package service_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/feed"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/service"
)

type mockReviewRepo struct {
	listFunc         func(ctx context.Context, sort domain.SortOrder, limit, offset int) ([]domain.Review, error)
	countFunc        func(ctx context.Context) (int64, error)
	existsByUserFunc func(ctx context.Context, userID string) (bool, error)
	createFunc       func(ctx context.Context, review domain.Review) (domain.Review, domain.Stats, error)
	updateFunc       func(ctx context.Context, id domain.ID, userID string, rating int, comment string) (domain.Review, domain.Stats, error)
	deleteFunc       func(ctx context.Context, id domain.ID, userID string) (domain.Stats, error)
	statsFunc        func(ctx context.Context) (domain.Stats, error)
}

func (m *mockReviewRepo) List(ctx context.Context, sort domain.SortOrder, limit, offset int) ([]domain.Review, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, sort, limit, offset)
	}
	return nil, nil
}

func (m *mockReviewRepo) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockReviewRepo) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	if m.existsByUserFunc != nil {
		return m.existsByUserFunc(ctx, userID)
	}
	return false, nil
}

func (m *mockReviewRepo) Create(ctx context.Context, review domain.Review) (domain.Review, domain.Stats, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	review.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	review.UpdatedAt = review.CreatedAt
	return review, domain.Stats{TotalReviews: 1, RatingSum: int64(review.Rating)}, nil
}

func (m *mockReviewRepo) Update(ctx context.Context, id domain.ID, userID string, rating int, comment string) (domain.Review, domain.Stats, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, userID, rating, comment)
	}
	return domain.Review{}, domain.Stats{}, domain.ErrReviewNotFound
}

func (m *mockReviewRepo) Delete(ctx context.Context, id domain.ID, userID string) (domain.Stats, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return domain.Stats{}, domain.ErrReviewNotFound
}

func (m *mockReviewRepo) Stats(ctx context.Context) (domain.Stats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return domain.Stats{}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []feed.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event feed.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []feed.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]feed.Event(nil), p.events...)
}

type staticIDGenerator struct{ id string }

func (g staticIDGenerator) NewID() (string, error) { return g.id, nil }

const (
	testReviewID = "0b8f5b7e-3c1d-4f7a-9a55-2d4c6e8f1a2b"
	testUserID   = "6f1c2a8e-7d3b-4c55-9a0e-3b2d1f4e5a6b"
)

type reviewFixture struct {
	svc       *service.ReviewService
	repo      *mockReviewRepo
	publisher *recordingPublisher
}

func setupReviewService(t *testing.T) reviewFixture {
	t.Helper()
	f := reviewFixture{repo: &mockReviewRepo{}, publisher: &recordingPublisher{}}
	f.svc = service.NewReviewService(service.Deps{
		Repo:        f.repo,
		IDGenerator: staticIDGenerator{id: testReviewID},
		Publisher:   f.publisher,
		Log:         logger.NewWithWriter(io.Discard, "test", "error"),
	})
	return f
}
