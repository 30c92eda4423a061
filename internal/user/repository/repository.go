package repository

import (
	"context"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/db"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// FindByLogin matches the identifier against username, or against email
	// case-insensitively since emails are stored lower-cased.
	FindByLogin(ctx context.Context, identifier string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool    db.Conn
	breaker *db.DBCircuitBreaker
}

func NewPgRepository(pool db.Conn, breaker *db.DBCircuitBreaker) *PgRepository {
	return &PgRepository{pool: pool, breaker: breaker}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO users (id, username, email, password_hash, full_name)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING created_at`,
			string(user.ID),
			user.Username,
			user.Email,
			user.PasswordHash,
			user.FullName,
		).Scan(&user.CreatedAt)
	})
	if _, ok := db.UniqueViolation(err); ok {
		db.MeasureQueryDuration("create user", start)
		return domain.User{}, domain.ErrUserAlreadyExists.WithCause(err)
	}
	if err := db.HandleExecError(err, "create user", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	start := time.Now()
	var exists bool
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
			username,
			email,
		).Scan(&exists)
	})
	if err := db.HandleQueryError(err, nil, "check user exists", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) FindByLogin(ctx context.Context, identifier string) (domain.User, error) {
	start := time.Now()
	var user domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`SELECT id, username, email, password_hash, full_name, created_at
			 FROM users
			 WHERE username = $1 OR email = LOWER($1)
			 ORDER BY (username = $1) DESC
			 LIMIT 1`,
			identifier,
		), &user)
	})
	if err := db.HandleQueryError(err, domain.ErrUserNotFound, "find user by login", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	var user domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE id = $1`,
			string(id),
		), &user)
	})
	if err := db.HandleQueryError(err, domain.ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *domain.User) error {
	var id string
	if err := row.Scan(&id, &user.Username, &user.Email, &user.PasswordHash, &user.FullName, &user.CreatedAt); err != nil {
		return err
	}
	user.ID = domain.ID(id)
	return nil
}
