package domain

import (
	"time"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
)

type ID string

// User is a stored account. PasswordHash never leaves the auth service.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

var (
	ErrUserNotFound = commonerrors.NewNotFoundError(
		"USER_NOT_FOUND",
		"user not found",
	)

	ErrUserAlreadyExists = commonerrors.NewConflictError(
		"USER_ALREADY_EXISTS",
		"username or email is already in use",
	)
)
