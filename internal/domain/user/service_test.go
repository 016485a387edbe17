package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"mini-tracker-go/internal/domain/validation"
)

type fakeUserRepo struct {
	users    map[string]*User
	sessions map[string]*Session
	// concurrent is stored just before the next Create or UpdateEmail,
	// which then fails the way a unique index would.
	concurrent *User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

func (r *fakeUserRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) insertConcurrent() bool {
	if r.concurrent == nil {
		return false
	}
	r.users[r.concurrent.ID] = r.concurrent
	r.concurrent = nil
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if r.insertConcurrent() {
		return ErrDuplicate
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateEmail(ctx context.Context, userID, email string) error {
	if r.insertConcurrent() {
		return ErrDuplicate
	}
	r.users[userID].Email = email
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	r.users[userID].PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	r.users[userID].IsAdmin = isAdmin
	return nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, session *Session) error {
	copied := *session
	r.sessions[session.TokenHash] = &copied
	return nil
}

func (r *fakeUserRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeUserRepo) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeUserRepo) DeleteUserSessionsExcept(ctx context.Context, userID, keepTokenHash string) error {
	for hash, session := range r.sessions {
		if session.UserID == userID && hash != keepTokenHash {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeUserRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64
	for hash, session := range r.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(r.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, Options{BcryptCost: bcrypt.MinCost, SessionTTL: time.Hour}), repo
}

func register(t *testing.T, service *Service, username string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	service, repo := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: " painter ",
		Email:    " Painter@Example.COM ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "painter" || user.Email != "painter@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	stored := repo.users[user.ID]
	if stored.PasswordHash == "correct horse" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if stored.IsAdmin {
		t.Fatalf("new users must not be admins")
	}
}

func TestRegisterRejectsTakenNames(t *testing.T) {
	service, _ := newTestService()
	register(t, service, "painter")

	_, err := service.Register(context.Background(), RegisterInput{Username: "painter", Email: "other@example.com", Password: "correct horse"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}

	_, err = service.Register(context.Background(), RegisterInput{Username: "other", Email: "PAINTER@example.com", Password: "correct horse"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestRegisterLosingConcurrentInsert(t *testing.T) {
	service, repo := newTestService()
	input := RegisterInput{Username: "painter", Email: "painter@example.com", Password: "correct horse"}

	repo.concurrent = &User{ID: "winner", Username: "painter", Email: "winner@example.com"}
	if _, err := service.Register(context.Background(), input); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}

	input.Username = "sculptor"
	repo.concurrent = &User{ID: "other", Username: "someone", Email: "painter@example.com"}
	if _, err := service.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
	if len(repo.users) != 2 {
		t.Fatalf("expected only the concurrent users stored, got %d", len(repo.users))
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newTestService()

	cases := []struct {
		input RegisterInput
		field string
	}{
		{RegisterInput{Username: "ab", Email: "a@b.c", Password: "correct horse"}, "username"},
		{RegisterInput{Username: "bad name", Email: "a@b.c", Password: "correct horse"}, "username"},
		{RegisterInput{Username: "painter", Email: "nope", Password: "correct horse"}, "email"},
		{RegisterInput{Username: "painter", Email: "a@b.c", Password: "short"}, "password"},
	}

	for _, tc := range cases {
		_, err := service.Register(context.Background(), tc.input)
		verr, ok := validation.As(err)
		if !ok || verr.Field != tc.field {
			t.Fatalf("expected %s validation error for %+v, got %v", tc.field, tc.input, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	service, _ := newTestService()
	registered := register(t, service, "painter")

	user, err := service.Authenticate(context.Background(), "painter", "correct horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected %s, got %s", registered.ID, user.ID)
	}

	if _, err := service.Authenticate(context.Background(), "painter", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "nobody", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	service, repo := newTestService()
	user := register(t, service, "painter")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	token, expiresAt, err := service.CreateSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}
	if _, ok := repo.sessions[token]; ok {
		t.Fatalf("raw token must not be stored")
	}

	resolved, err := service.ResolveSession(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, resolved.ID)
	}

	if err := service.DeleteSession(context.Background(), token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := service.ResolveSession(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestResolveSessionExpired(t *testing.T) {
	service, repo := newTestService()
	user := register(t, service, "painter")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	token, _, err := service.CreateSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := service.ResolveSession(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("expected expired session purged")
	}
}

func TestUpdatePasswordRevokesOtherSessions(t *testing.T) {
	service, repo := newTestService()
	user := register(t, service, "painter")

	keep, _, err := service.CreateSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, _, err := service.CreateSession(context.Background(), user.ID); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := service.UpdatePassword(context.Background(), user.ID, "wrong password", "new password", keep); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := service.UpdatePassword(context.Background(), user.ID, "correct horse", "new password", keep); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("expected only the current session to survive, got %d", len(repo.sessions))
	}
	if _, err := service.ResolveSession(context.Background(), keep); err != nil {
		t.Fatalf("expected current session kept, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "painter", "new password"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestUpdateEmail(t *testing.T) {
	service, _ := newTestService()
	first := register(t, service, "painter")
	register(t, service, "sculptor")

	if _, err := service.UpdateEmail(context.Background(), first.ID, "sculptor@example.com"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}

	updated, err := service.UpdateEmail(context.Background(), first.ID, "Painter@Example.com")
	if err != nil {
		t.Fatalf("update own email: %v", err)
	}
	if updated.Email != "painter@example.com" {
		t.Fatalf("unexpected email %q", updated.Email)
	}
}

func TestUpdateEmailLosingConcurrentUpdate(t *testing.T) {
	service, repo := newTestService()
	user := register(t, service, "painter")

	repo.concurrent = &User{ID: "other", Username: "sculptor", Email: "new@example.com"}
	if _, err := service.UpdateEmail(context.Background(), user.ID, "new@example.com"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
	if repo.users[user.ID].Email != "painter@example.com" {
		t.Fatalf("email must not change, got %q", repo.users[user.ID].Email)
	}
}

func TestSetAdmin(t *testing.T) {
	service, repo := newTestService()
	user := register(t, service, "painter")

	if _, err := service.SetAdmin(context.Background(), "painter", true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	if !repo.users[user.ID].IsAdmin {
		t.Fatalf("expected admin flag set")
	}
	if _, err := service.SetAdmin(context.Background(), "nobody", true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
