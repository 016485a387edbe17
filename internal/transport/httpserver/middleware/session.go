package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mini-tracker-go/internal/config"
	userdomain "mini-tracker-go/internal/domain/user"
	"mini-tracker-go/pkg/logger"
)

type contextKey int

const (
	userKey contextKey = iota
	sessionTokenKey
)

type User struct {
	ID       string
	Username string
	Email    string
	IsAdmin  bool
}

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*userdomain.User, error)
}

// Sessions resolves the session cookie into a User on the request context.
// Requests without a valid cookie continue anonymously.
type Sessions struct {
	resolver SessionResolver
	cfg      config.SessionConfig
	log      logger.Logger
}

func NewSessions(resolver SessionResolver, cfg config.SessionConfig, log logger.Logger) *Sessions {
	return &Sessions{resolver: resolver, cfg: cfg, log: log}
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.Token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		account, err := s.resolver.ResolveSession(r.Context(), token)
		if err != nil {
			if errors.Is(err, userdomain.ErrSessionNotFound) {
				s.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			s.log.InternalError("session: resolve failed", err, "path", r.URL.Path)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithUser(r.Context(), User{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
			IsAdmin:  account.IsAdmin,
		})
		ctx = context.WithValue(ctx, sessionTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Sessions) Token(r *http.Request) string {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Sessions) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin_required", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
