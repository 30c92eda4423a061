package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	commoncrypto "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/crypto"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/mapper"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
	userrepo "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/repository"
)

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type AuthServiceConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clk),
		log:         deps.Log,
	}
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      dto.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	defer observeDuration("register", time.Now())

	input = input.normalize()

	if err := validateRegister(input); err != nil {
		recordRegistration("invalid")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "auth_register_validation_failed",
		}).Infof("register validation failed: %v", err)
		return AuthResult{}, err
	}

	if input.FullName == "" {
		input.FullName = input.Username
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		recordRegistration("error")
		return AuthResult{}, err
	}
	if exists {
		recordRegistration("conflict")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "auth_register_conflict",
		}).Info("register failed: username or email already in use")
		return AuthResult{}, userdomain.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		recordRegistration("error")
		return AuthResult{}, newInternalError("PASSWORD_HASH_FAILED", "failed to register user", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordRegistration("error")
		return AuthResult{}, newInternalError("ID_GENERATION_FAILED", "failed to register user", err)
	}

	// the unique constraints still decide a race between two identical registrations
	user, err := s.repo.Create(ctx, userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
	})
	if err != nil {
		if errors.Is(err, userdomain.ErrUserAlreadyExists) {
			recordRegistration("conflict")
		} else {
			recordRegistration("error")
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "auth_register_create_failed",
			}).Errorf("register failed: %v", err)
		}
		return AuthResult{}, err
	}

	result, err := s.issue(user)
	if err != nil {
		recordRegistration("error")
		return AuthResult{}, err
	}

	recordRegistration("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "auth_register_success",
	}).Info("register success")

	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	defer observeDuration("login", time.Now())

	input.Identifier = strings.TrimSpace(input.Identifier)

	if err := validateLogin(input); err != nil {
		recordLogin("invalid")
		return AuthResult{}, err
	}

	user, err := s.repo.FindByLogin(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			_ = s.hasher.Compare("", input.Password)
			recordLogin("failed")
			s.log.WithFields(ctx, logger.Fields{
				"action": "auth_login_failed",
			}).Info("login failed")
			return AuthResult{}, ErrInvalidCredentials
		}
		recordLogin("error")
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		recordLogin("failed")
		s.log.WithFields(ctx, logger.Fields{
			"action": "auth_login_failed",
		}).Info("login failed")
		return AuthResult{}, ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		recordLogin("error")
		return AuthResult{}, err
	}

	recordLogin("success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "auth_login_success",
	}).Info("login success")

	return result, nil
}

// Me returns the public projection of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (dto.User, error) {
	user, err := s.repo.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "auth_me_not_found",
			}).Warn("token refers to a user that no longer exists")
		}
		return dto.User{}, err
	}
	return mapper.UserToDTO(user), nil
}

func (s *AuthService) issue(user userdomain.User) (AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue session token", err)
	}
	return AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      mapper.UserToDTO(user),
	}, nil
}
