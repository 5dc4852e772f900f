package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/user"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/jwt"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/password"
)

type stubUsers struct {
	byEmail map[string]*user.User
	created []*user.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{byEmail: make(map[string]*user.User)}
}

func (s *stubUsers) Create(ctx context.Context, u *user.User) error {
	if _, exists := s.byEmail[u.Email]; exists {
		return user.ErrEmailAlreadyExists
	}
	s.byEmail[u.Email] = u
	s.created = append(s.created, u)
	return nil
}

func (s *stubUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func newTestService(users user.Repository) *Service {
	return NewService(users, jwt.NewService("test-secret", time.Hour))
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Bilal Ahmed",
		ShopName: "Bilal General Store",
		Email:    "bilal@example.com",
		Password: "strong-password",
		City:     "Lahore",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newStubUsers()
	svc := newTestService(users)

	u, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.PasswordHash == "strong-password" {
		t.Fatalf("password stored in plain text")
	}
	if !password.Verify("strong-password", u.PasswordHash) {
		t.Fatalf("stored hash does not match the password")
	}

	auth, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "bilal@example.com",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if auth.AccessToken == "" || auth.TokenType != "bearer" {
		t.Fatalf("unexpected auth response: %+v", auth)
	}
	if auth.User.ShopName != "Bilal General Store" {
		t.Fatalf("unexpected user payload: %+v", auth.User)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUsers()
	svc := newTestService(users)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected duplicate-email error, got %v", err)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	users := newStubUsers()
	svc := newTestService(users)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "  BILAL@example.com ",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("login with differently cased email failed: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUsers()
	svc := newTestService(users)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "bilal@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestService(newStubUsers())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must yield the same error as a bad password, got %v", err)
	}
}
