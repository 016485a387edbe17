package common

import (
	"context"
	"net/http"
	"time"

	"mini-tracker-go/pkg/logger"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	db  Pinger
	log logger.Logger
}

func New(db Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		db:  db,
		log: log,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.InternalError("health: db ping failed", err)
		WriteJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Data:    healthResponse{Status: "degraded", Database: "unreachable"},
			Error:   &errorBody{Code: "db_unavailable", Message: "database unreachable"},
		})
		return
	}

	WriteData(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
