package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/db"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

// Repository is the review store. Every mutation updates movie_stats in the
// same transaction and returns the aggregate as it stood at commit.
type Repository interface {
	List(ctx context.Context, sort domain.SortOrder, limit, offset int) ([]domain.Review, error)
	Count(ctx context.Context) (int64, error)
	ExistsByUser(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, review domain.Review) (domain.Review, domain.Stats, error)
	Update(ctx context.Context, id domain.ID, userID string, rating int, comment string) (domain.Review, domain.Stats, error)
	Delete(ctx context.Context, id domain.ID, userID string) (domain.Stats, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type PgRepository struct {
	pool    db.Conn
	tx      db.TxManager
	breaker *db.DBCircuitBreaker
}

func NewPgRepository(pool db.Conn, tx db.TxManager, breaker *db.DBCircuitBreaker) *PgRepository {
	return &PgRepository{pool: pool, tx: tx, breaker: breaker}
}

const reviewColumns = `r.id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at, u.username, u.full_name`

func orderClause(sort domain.SortOrder) string {
	switch sort {
	case domain.SortHighest:
		return `r.rating DESC, r.created_at DESC, r.id`
	case domain.SortLowest:
		return `r.rating ASC, r.created_at DESC, r.id`
	default:
		return `r.created_at DESC, r.id`
	}
}

func (r *PgRepository) List(ctx context.Context, sort domain.SortOrder, limit, offset int) ([]domain.Review, error) {
	start := time.Now()
	var reviews []domain.Review
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		// orderClause only ever yields one of three constant strings
		rows, err := r.pool.Query(
			ctx,
			`SELECT `+reviewColumns+`
			 FROM reviews r
			 JOIN users u ON u.id = r.user_id
			 ORDER BY `+orderClause(sort)+`
			 LIMIT $1 OFFSET $2`,
			limit,
			offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		reviews = make([]domain.Review, 0, limit)
		for rows.Next() {
			var review domain.Review
			if err := scanReview(rows, &review); err != nil {
				return err
			}
			reviews = append(reviews, review)
		}
		return rows.Err()
	})
	if err := db.HandleQueryError(err, nil, "list reviews", start); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *PgRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	var total int64
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total)
	})
	if err := db.HandleQueryError(err, nil, "count reviews", start); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PgRepository) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	start := time.Now()
	var exists bool
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1)`,
			userID,
		).Scan(&exists)
	})
	if err := db.HandleQueryError(err, nil, "check review exists", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) Create(ctx context.Context, review domain.Review) (domain.Review, domain.Stats, error) {
	start := time.Now()
	var stats domain.Stats
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			if err := scanReview(tx.QueryRow(
				ctx,
				`WITH r AS (
				     INSERT INTO reviews (id, user_id, rating, comment)
				     VALUES ($1, $2, $3, $4)
				     RETURNING id, user_id, rating, comment, created_at, updated_at
				 )
				 SELECT `+reviewColumns+`
				 FROM r
				 JOIN users u ON u.id = r.user_id`,
				string(review.ID),
				review.UserID,
				review.Rating,
				review.Comment,
			), &review); err != nil {
				return err
			}

			var err error
			stats, err = applyStatsDelta(ctx, tx, 1, int64(review.Rating))
			return err
		})
	})
	if _, ok := db.UniqueViolation(err); ok {
		db.MeasureQueryDuration("create review", start)
		return domain.Review{}, domain.Stats{}, domain.ErrReviewExists.WithCause(err)
	}
	if db.ForeignKeyViolation(err) {
		// the token outlived its user
		db.MeasureQueryDuration("create review", start)
		return domain.Review{}, domain.Stats{}, userdomain.ErrUserNotFound.WithCause(err)
	}
	if err := db.HandleExecError(err, "create review", start); err != nil {
		return domain.Review{}, domain.Stats{}, err
	}
	return review, stats, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, userID string, rating int, comment string) (domain.Review, domain.Stats, error) {
	start := time.Now()
	var (
		review domain.Review
		stats  domain.Stats
	)
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			var oldRating int
			if err := tx.QueryRow(
				ctx,
				`SELECT rating FROM reviews WHERE id = $1 AND user_id = $2 FOR UPDATE`,
				string(id),
				userID,
			).Scan(&oldRating); err != nil {
				return err
			}

			if err := scanReview(tx.QueryRow(
				ctx,
				`WITH r AS (
				     UPDATE reviews
				     SET rating = $3, comment = $4, updated_at = NOW()
				     WHERE id = $1 AND user_id = $2
				     RETURNING id, user_id, rating, comment, created_at, updated_at
				 )
				 SELECT `+reviewColumns+`
				 FROM r
				 JOIN users u ON u.id = r.user_id`,
				string(id),
				userID,
				rating,
				comment,
			), &review); err != nil {
				return err
			}

			var err error
			stats, err = applyStatsDelta(ctx, tx, 0, int64(rating-oldRating))
			return err
		})
	})
	if err := db.HandleQueryError(err, domain.ErrReviewNotFound, "update review", start); err != nil {
		return domain.Review{}, domain.Stats{}, err
	}
	return review, stats, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID, userID string) (domain.Stats, error) {
	start := time.Now()
	var stats domain.Stats
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			var oldRating int
			if err := tx.QueryRow(
				ctx,
				`DELETE FROM reviews WHERE id = $1 AND user_id = $2 RETURNING rating`,
				string(id),
				userID,
			).Scan(&oldRating); err != nil {
				return err
			}

			var err error
			stats, err = applyStatsDelta(ctx, tx, -1, -int64(oldRating))
			return err
		})
	})
	if err := db.HandleQueryError(err, domain.ErrReviewNotFound, "delete review", start); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (r *PgRepository) Stats(ctx context.Context) (domain.Stats, error) {
	start := time.Now()
	var stats domain.Stats
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(
			ctx,
			`SELECT total_reviews, rating_sum, updated_at FROM movie_stats WHERE id = 1`,
		).Scan(&stats.TotalReviews, &stats.RatingSum, &stats.UpdatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// seeded by the first migration; an empty table only happens if someone deleted the row
		db.MeasureQueryDuration("get stats", start)
		return domain.Stats{}, nil
	}
	if err := db.HandleQueryError(err, nil, "get stats", start); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// applyStatsDelta locks the single stats row for the rest of the transaction,
// so concurrent mutations apply their deltas one after another.
func applyStatsDelta(ctx context.Context, tx pgx.Tx, countDelta, sumDelta int64) (domain.Stats, error) {
	var stats domain.Stats
	err := tx.QueryRow(
		ctx,
		`UPDATE movie_stats
		 SET total_reviews = total_reviews + $1,
		     rating_sum = rating_sum + $2,
		     updated_at = NOW()
		 WHERE id = 1
		 RETURNING total_reviews, rating_sum, updated_at`,
		countDelta,
		sumDelta,
	).Scan(&stats.TotalReviews, &stats.RatingSum, &stats.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Stats{}, errStatsRowMissing
	}
	return stats, err
}

var errStatsRowMissing = errors.New("movie_stats row is missing")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner, review *domain.Review) error {
	var id string
	if err := row.Scan(
		&id,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.Username,
		&review.FullName,
	); err != nil {
		return err
	}
	review.ID = domain.ID(id)
	return nil
}
