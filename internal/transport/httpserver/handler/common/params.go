package common

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"mini-tracker-go/internal/domain/validation"
)

// PathID returns the named URL parameter after checking it is a UUID.
func PathID(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if _, err := uuid.Parse(value); err != nil {
		return "", validation.New(name, name+" must be a valid id")
	}
	return value, nil
}

func ParseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

// ParsePage reads page and limit. Zero means unset; range clamping is the
// caller's concern.
func ParsePage(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	page, err := ParseIntParam(query.Get("page"), 0)
	if err != nil {
		return 0, 0, validation.New("page", "page must be an integer")
	}
	limit, err := ParseIntParam(query.Get("limit"), 0)
	if err != nil {
		return 0, 0, validation.New("limit", "limit must be an integer")
	}
	return page, limit, nil
}
