package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notekeeper/internal/domain"
)

type mockUserRepo struct {
	usersByID map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{usersByID: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	for _, u := range m.usersByID {
		if strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_idx"}
		}
	}
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.usersByID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := m.usersByID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, u := range m.usersByID {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_idx"}
		}
	}
	m.usersByID[user.ID] = user
	return nil
}

func registerAlice(t *testing.T, svc *UserService) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	user := registerAlice(t, svc)

	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice Again",
		Email:    "ALICE@X.COM",
		Password: "secret2",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	cases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret1"}, "name"},
		{"short name", RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"}, "name"},
		{"long name", RegisterInput{Name: strings.Repeat("a", 51), Email: "a@x.com", Password: "secret1"}, "name"},
		{"missing email", RegisterInput{Name: "Alice", Password: "secret1"}, "email"},
		{"bad email", RegisterInput{Name: "Alice", Email: "not-an-email", Password: "secret1"}, "email"},
		{"missing password", RegisterInput{Name: "Alice", Email: "a@x.com"}, "password"},
		{"short password", RegisterInput{Name: "Alice", Email: "a@x.com", Password: "12345"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestUserService_AuthenticateUniformFailure(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	registerAlice(t, svc)

	_, wrongPass := svc.Authenticate(context.Background(), "alice@x.com", "wrongpass")
	_, unknownEmail := svc.Authenticate(context.Background(), "nobody@x.com", "secret1")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical failure messages, got %q vs %q", wrongPass, unknownEmail)
	}
}

func TestUserService_AuthenticateSuccess(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	registered := registerAlice(t, svc)

	user, err := svc.Authenticate(context.Background(), "Alice@X.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %q, got %q", registered.ID, user.ID)
	}
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateKeepsHashWithoutPassword(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	user := registerAlice(t, svc)

	name := "Alice Cooper"
	updated, err := svc.Update(context.Background(), user.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alice Cooper" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.PasswordHash != user.PasswordHash {
		t.Fatalf("hash must not change on unrelated updates")
	}
	if !CheckPassword("secret1", updated.PasswordHash) {
		t.Fatalf("old password must still verify")
	}
}

func TestUserService_UpdateRehashesWhenPasswordSupplied(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	user := registerAlice(t, svc)

	password := "newsecret"
	updated, err := svc.Update(context.Background(), user.ID, UpdateInput{Password: &password})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PasswordHash == user.PasswordHash {
		t.Fatalf("expected hash to change when password supplied")
	}
	if _, err := svc.Authenticate(context.Background(), "alice@x.com", "newsecret"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestUserService_UpdateDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)
	registerAlice(t, svc)
	bob, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@x.com",
		Password: "secret2",
	})
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	email := "Alice@x.com"
	if _, err := svc.Update(context.Background(), bob.ID, UpdateInput{Email: &email}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
