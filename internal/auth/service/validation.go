package service

import (
	"fmt"
	"strings"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/validation"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"max=100"`
}

type LoginInput struct {
	Identifier string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (in RegisterInput) normalize() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	return in
}

func validateRegister(in RegisterInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	// bcrypt only looks at the first 72 bytes; the tag above counts runes.
	if len(in.Password) > constants.PasswordMaxBytes {
		return commonerrors.NewFieldValidationError(commonerrors.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at most %d bytes", constants.PasswordMaxBytes),
		})
	}
	return nil
}

func validateLogin(in LoginInput) error {
	return validation.Struct(in)
}
