package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"mini-tracker-go/internal/db/dbtest"
	domain "mini-tracker-go/internal/domain/user"
)

func newService(t *testing.T) (*domain.Service, *PostgresRepository) {
	t.Helper()
	repo := NewPostgres(dbtest.Open(t))
	return domain.NewService(repo, domain.Options{BcryptCost: bcrypt.MinCost, SessionTTL: time.Hour}), repo
}

func TestRegisterLoginAndSession(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterInput{Username: "painter", Email: "painter@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(ctx, domain.RegisterInput{Username: "Painter", Email: "x@example.com", Password: "correct horse"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}

	user, err := service.Authenticate(ctx, "painter", "correct horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	token, _, err := service.CreateSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	resolved, err := service.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatalf("expected %s, got %s", registered.ID, resolved.ID)
	}

	if err := service.DeleteSession(ctx, token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := repo.GetSessionByTokenHash(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
	if _, err := service.ResolveSession(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected logged out, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	_, repo := newService(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	user := &domain.User{ID: "cccccccc-0000-0000-0000-000000000001", Username: "painter", Email: "p@example.com", PasswordHash: "x"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	sessions := []*domain.Session{
		{ID: "cccccccc-0000-0000-0000-000000000002", UserID: user.ID, TokenHash: "expired", ExpiresAt: now.Add(-time.Minute)},
		{ID: "cccccccc-0000-0000-0000-000000000003", UserID: user.ID, TokenHash: "live", ExpiresAt: now.Add(time.Minute)},
	}
	for _, session := range sessions {
		if err := repo.CreateSession(ctx, session); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	deleted, err := repo.DeleteExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}
	if _, err := repo.GetSessionByTokenHash(ctx, "live"); err != nil {
		t.Fatalf("expected live session kept, got %v", err)
	}
}

func TestSetAdminUnknownUser(t *testing.T) {
	_, repo := newService(t)
	if err := repo.SetAdmin(context.Background(), "cccccccc-0000-0000-0000-0000000000ff", true); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUniqueIndexViolationsReturnErrDuplicate(t *testing.T) {
	_, repo := newService(t)
	ctx := context.Background()

	first := &domain.User{ID: "u1", Username: "painter", Email: "painter@example.com", PasswordHash: "x"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := &domain.User{ID: "u2", Username: "painter", Email: "other@example.com", PasswordHash: "x"}
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate on username, got %v", err)
	}

	second.Username = "sculptor"
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := repo.UpdateEmail(ctx, second.ID, "painter@example.com"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate on email, got %v", err)
	}
}
