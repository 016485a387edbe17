package auth

import (
	"errors"
	"net/http"
	"time"

	userdomain "mini-tracker-go/internal/domain/user"
	"mini-tracker-go/internal/domain/validation"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
	"mini-tracker-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	User      userResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "auth.register", err)
		return
	}

	user, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, "auth.register", err, "username", req.Username)
		return
	}

	h.startSession(w, r, "auth.register", http.StatusCreated, user)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "auth.login", err)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, "auth.login", err, "username", req.Username)
		return
	}

	h.startSession(w, r, "auth.login", http.StatusOK, user)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, op string, status int, user *userdomain.User) {
	token, expiresAt, err := h.Users.CreateSession(r.Context(), user.ID)
	if err != nil {
		h.fail(w, op, err, "user_id", user.ID)
		return
	}

	h.Sessions.SetCookie(w, token, expiresAt)
	h.log.Info(op+": session started", "user_id", user.ID)
	writeData(w, status, sessionResponse{
		User:      toUserResponse(*user),
		ExpiresAt: expiresAt,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.Token(r)
	if err := h.Users.DeleteSession(r.Context(), token); err != nil {
		h.fail(w, "auth.logout", err)
		return
	}

	h.Sessions.ClearCookie(w)
	writeData(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	user, err := h.Users.GetByID(r.Context(), current.ID)
	if err != nil {
		h.fail(w, "auth.me", err, "user_id", current.ID)
		return
	}

	writeData(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	var req updateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "users.update_email", err, "user_id", current.ID)
		return
	}

	user, err := h.Users.UpdateEmail(r.Context(), current.ID, req.Email)
	if err != nil {
		h.fail(w, "users.update_email", err, "user_id", current.ID)
		return
	}

	writeData(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w)
		return
	}
	if err := commonhandler.Validate(req); err != nil {
		h.fail(w, "users.update_password", err, "user_id", current.ID)
		return
	}

	err := h.Users.UpdatePassword(r.Context(), current.ID, req.CurrentPassword, req.NewPassword, middleware.SessionTokenFromContext(r.Context()))
	if err != nil {
		// A wrong current password must not look like an expired session.
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			err = validation.New("currentPassword", "current password is incorrect")
		}
		h.fail(w, "users.update_password", err, "user_id", current.ID)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"updated": true})
}

func toUserResponse(user userdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
