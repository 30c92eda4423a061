package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/auth/service"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/jwtverify"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "secret123",
		FullName: "Alice Liddell",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := setupAuthService(t)

	var created userdomain.User
	f.repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		created = user
		user.CreatedAt = f.clock.Now()
		return user, nil
	}

	result, err := f.svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.Email != "alice@example.com" {
		t.Errorf("expected lower-cased email, got %q", created.Email)
	}
	if created.PasswordHash != "hashed:secret123" {
		t.Errorf("expected hashed password to be stored, got %q", created.PasswordHash)
	}
	if string(created.ID) != f.idGen.id {
		t.Errorf("expected generated id, got %q", created.ID)
	}
	if result.User.Username != "alice" || result.User.FullName != "Alice Liddell" {
		t.Errorf("unexpected user projection: %+v", result.User)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if !result.ExpiresAt.Equal(f.clock.Now().Add(7 * 24 * time.Hour)) {
		t.Errorf("unexpected expiry %v", result.ExpiresAt)
	}

	claims, err := jwtverify.NewVerifier(testSecret, f.clock).Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.UserID != f.idGen.id || claims.Username != "alice" || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_DefaultsFullNameToUsername(t *testing.T) {
	f := setupAuthService(t)

	in := validRegisterInput()
	in.FullName = "   "

	result, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User.FullName != "alice" {
		t.Errorf("expected full name to default to username, got %q", result.User.FullName)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.RegisterInput)
		field  string
	}{
		{"short username", func(in *service.RegisterInput) { in.Username = "ab" }, "username"},
		{"username with symbols", func(in *service.RegisterInput) { in.Username = "al ice!" }, "username"},
		{"missing email", func(in *service.RegisterInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *service.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *service.RegisterInput) { in.Password = "12345" }, "password"},
		{"password over 72 bytes", func(in *service.RegisterInput) { in.Password = strings.Repeat("é", 40) }, "password"},
		{"long full name", func(in *service.RegisterInput) { in.FullName = strings.Repeat("x", 101) }, "full_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuthService(t)
			f.repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
				t.Fatal("create must not be called for invalid input")
				return userdomain.User{}, nil
			}

			in := validRegisterInput()
			tt.mutate(&in)

			_, err := f.svc.Register(context.Background(), in)

			var verr *commonerrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !verr.HasField(tt.field) {
				t.Errorf("expected error on field %s, got %+v", tt.field, verr.Fields)
			}
		})
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	f := setupAuthService(t)
	f.repo.existsByUsernameOrEmailFunc = func(ctx context.Context, username, email string) (bool, error) {
		if email != "alice@example.com" {
			t.Errorf("expected normalized email in lookup, got %q", email)
		}
		return true, nil
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, userdomain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
	de, _ := commonerrors.AsDomainError(err)
	if de.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", de.HTTPStatus())
	}
}

func TestAuthService_Register_ConflictOnInsertRace(t *testing.T) {
	f := setupAuthService(t)
	f.repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		return userdomain.User{}, userdomain.ErrUserAlreadyExists
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, userdomain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_StoreUnavailable(t *testing.T) {
	f := setupAuthService(t)
	f.repo.existsByUsernameOrEmailFunc = func(ctx context.Context, username, email string) (bool, error) {
		return false, commonerrors.ErrServiceUnavailable
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, commonerrors.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	f := setupAuthService(t)
	f.hasher.hashErr = errors.New("boom")

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Category() != commonerrors.CategoryInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func storedAlice() userdomain.User {
	return userdomain.User{
		ID:           "6f1c2a8e-7d3b-4c55-9a0e-3b2d1f4e5a6b",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:secret123",
		FullName:     "Alice Liddell",
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByLoginFunc = func(ctx context.Context, identifier string) (userdomain.User, error) {
		if identifier != "alice@example.com" {
			t.Errorf("expected trimmed identifier, got %q", identifier)
		}
		return storedAlice(), nil
	}

	result, err := f.svc.Login(context.Background(), service.LoginInput{
		Identifier: "  alice@example.com ",
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" || result.User.Email != "alice@example.com" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByLoginFunc = func(ctx context.Context, identifier string) (userdomain.User, error) {
		if identifier == "alice" {
			return storedAlice(), nil
		}
		return userdomain.User{}, userdomain.ErrUserNotFound
	}

	_, wrongPassword := f.svc.Login(context.Background(), service.LoginInput{Identifier: "alice", Password: "nope-nope"})
	_, unknownUser := f.svc.Login(context.Background(), service.LoginInput{Identifier: "bob", Password: "nope-nope"})

	for _, err := range []error{wrongPassword, unknownUser} {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword.Error(), unknownUser.Error())
	}
	if len(f.hasher.compareCalls) != 2 {
		t.Errorf("expected a hash comparison for both attempts, got %d", len(f.hasher.compareCalls))
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	f := setupAuthService(t)

	_, err := f.svc.Login(context.Background(), service.LoginInput{Identifier: " ", Password: ""})

	var verr *commonerrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.HasField("username") || !verr.HasField("password") {
		t.Errorf("expected username and password field errors, got %+v", verr.Fields)
	}
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByLoginFunc = func(ctx context.Context, identifier string) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrCircuitOpen
	}

	_, err := f.svc.Login(context.Background(), service.LoginInput{Identifier: "alice", Password: "secret123"})
	if !errors.Is(err, commonerrors.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		if id == storedAlice().ID {
			return storedAlice(), nil
		}
		return userdomain.User{}, userdomain.ErrUserNotFound
	}

	user, err := f.svc.Me(context.Background(), string(storedAlice().ID))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %q", user.Username)
	}

	_, err = f.svc.Me(context.Background(), "missing")
	if !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
