package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"mini-tracker-go/internal/domain/validation"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	MaxPasswordLength = 72
	sessionTokenBytes = 32
	defaultSessionTTL = 7 * 24 * time.Hour
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Service struct {
	repo       Repository
	bcryptCost int
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Service{
		repo:       repo,
		bcryptCost: opts.BcryptCost,
		sessionTTL: ttl,
		now:        time.Now,
	}
}

func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword("password", input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		taken, err = tx.EmailExists(ctx, email, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		return tx.Create(ctx, &user)
	})
	if errors.Is(err, ErrDuplicate) {
		err = s.duplicateCause(ctx, username)
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// duplicateCause tells which unique field a concurrent registration won.
func (s *Service) duplicateCause(ctx context.Context, username string) error {
	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession issues a new opaque token for the user and returns it with
// its expiry. Expired sessions are purged on the way.
func (s *Service) CreateSession(ctx context.Context, userID string) (string, time.Time, error) {
	now := s.now().UTC()
	if _, err := s.repo.DeleteExpiredSessions(ctx, now); err != nil {
		return "", time.Time{}, err
	}

	token, err := newSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return "", time.Time{}, err
	}

	return token, session.ExpiresAt, nil
}

func (s *Service) ResolveSession(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	tokenHash := hashToken(token)
	session, err := s.repo.GetSessionByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !s.now().UTC().Before(session.ExpiresAt) {
		if err := s.repo.DeleteSessionByTokenHash(ctx, tokenHash); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotFound
	}

	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSessionByTokenHash(ctx, hashToken(token))
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateEmail(ctx context.Context, userID, email string) (*User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	var user *User
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		taken, err := tx.EmailExists(ctx, normalized, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		if err := tx.UpdateEmail(ctx, userID, normalized); err != nil {
			return err
		}
		current.Email = normalized
		user = current
		return nil
	})
	if errors.Is(err, ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password, stores the new hash and
// revokes every other session of the user. keepToken is the caller's own
// session token and survives.
func (s *Service) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword, keepToken string) error {
	if err := validatePassword("newPassword", newPassword); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	keepHash := ""
	if keepToken != "" {
		keepHash = hashToken(keepToken)
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
			return err
		}
		return tx.DeleteUserSessionsExcept(ctx, userID, keepHash)
	})
}

func (s *Service) SetAdmin(ctx context.Context, username string, isAdmin bool) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func normalizeUsername(value string) (string, error) {
	username := strings.TrimSpace(value)
	length := utf8.RuneCountInString(username)
	if length < MinUsernameLength || length > MaxUsernameLength {
		return "", validation.Newf("username", "username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return "", validation.New("username", "username may only contain letters, digits, '_' and '-'")
	}
	return username, nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", validation.New("email", "email must be a valid address")
	}
	return email, nil
}

func validatePassword(field, password string) error {
	if len(password) < MinPasswordLength {
		return validation.Newf(field, "%s must be at least %d characters", field, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return validation.Newf(field, "%s must be at most %d bytes", field, MaxPasswordLength)
	}
	return nil
}

func newSessionToken() (string, error) {
	var b [sessionTokenBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
