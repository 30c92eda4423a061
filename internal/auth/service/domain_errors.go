package service

import (
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password so callers cannot probe which accounts exist.
var ErrInvalidCredentials = commonerrors.NewAuthError(
	"INVALID_CREDENTIALS",
	"invalid username/email or password",
)

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	return commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		500,
		message,
	).WithCause(cause)
}
