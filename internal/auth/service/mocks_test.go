package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/auth/service"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockUserRepo struct {
	createFunc                  func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	existsByUsernameOrEmailFunc func(ctx context.Context, username, email string) (bool, error)
	findByLoginFunc             func(ctx context.Context, identifier string) (userdomain.User, error)
	findByIDFunc                func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return user, nil
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.existsByUsernameOrEmailFunc != nil {
		return m.existsByUsernameOrEmailFunc(ctx, username, email)
	}
	return false, nil
}

func (m *mockUserRepo) FindByLogin(ctx context.Context, identifier string) (userdomain.User, error) {
	if m.findByLoginFunc != nil {
		return m.findByLoginFunc(ctx, identifier)
	}
	return userdomain.User{}, userdomain.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userdomain.ErrUserNotFound
}

// mockHasher stores "hashed:<password>" and records every comparison.
type mockHasher struct {
	hashErr      error
	compareCalls []string
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	m.compareCalls = append(m.compareCalls, hash)
	if hash == "" || !strings.HasPrefix(hash, "hashed:") || hash[len("hashed:"):] != password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	id  string
	err error
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.id, nil
}

type authFixture struct {
	svc    *service.AuthService
	repo   *mockUserRepo
	hasher *mockHasher
	idGen  *mockIDGenerator
	clock  *clock.MockClock
}

func setupAuthService(t *testing.T) authFixture {
	t.Helper()
	f := authFixture{
		repo:   &mockUserRepo{},
		hasher: &mockHasher{},
		idGen:  &mockIDGenerator{id: "6f1c2a8e-7d3b-4c55-9a0e-3b2d1f4e5a6b"},
		clock:  clock.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.svc = service.NewAuthService(service.AuthServiceDeps{
		Repo:        f.repo,
		Hasher:      f.hasher,
		IDGenerator: f.idGen,
		Clock:       f.clock,
		Log:         logger.NewWithWriter(io.Discard, "test", "error"),
	}, service.AuthServiceConfig{
		JWTSecret: testSecret,
		TokenTTL:  7 * 24 * time.Hour,
	})
	return f
}
