package common

import (
	"errors"
	"net/http"

	"mini-tracker-go/internal/domain/validation"
	"mini-tracker-go/pkg/logger"
)

// ErrorMapping ties a domain sentinel to its HTTP status and error code.
type ErrorMapping struct {
	Err    error
	Status int
	Code   string
}

// Fail writes the response for err. Validation errors and mapped sentinels are
// business failures; anything else is logged as internal and hidden.
func Fail(w http.ResponseWriter, log logger.Logger, op string, err error, mappings []ErrorMapping, args ...any) {
	if verr, ok := validation.As(err); ok {
		log.BusinessError(op+": invalid input", err, args...)
		WriteFieldError(w, http.StatusBadRequest, "validation_error", verr.Message, verr.Field)
		return
	}

	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			log.BusinessError(op+": "+m.Code, err, args...)
			WriteError(w, m.Status, m.Code, m.Err.Error())
			return
		}
	}

	log.InternalError(op+": failed", err, args...)
	WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
