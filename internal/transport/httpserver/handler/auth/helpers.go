package auth

import (
	"net/http"

	userdomain "mini-tracker-go/internal/domain/user"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
)

var errorMappings = []commonhandler.ErrorMapping{
	{Err: userdomain.ErrUserNotFound, Status: http.StatusNotFound, Code: "user_not_found"},
	{Err: userdomain.ErrUsernameTaken, Status: http.StatusConflict, Code: "username_taken"},
	{Err: userdomain.ErrEmailTaken, Status: http.StatusConflict, Code: "email_taken"},
	{Err: userdomain.ErrInvalidCredentials, Status: http.StatusUnauthorized, Code: "invalid_credentials"},
	{Err: userdomain.ErrSessionNotFound, Status: http.StatusUnauthorized, Code: "unauthorized"},
}

func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	commonhandler.Fail(w, h.log, op, err, errorMappings, args...)
}

func writeData(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteData(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}
