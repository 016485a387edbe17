package auth

import (
	userdomain "mini-tracker-go/internal/domain/user"
	"mini-tracker-go/internal/transport/httpserver/middleware"
	"mini-tracker-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Sessions *middleware.Sessions
	log      logger.Logger
}

func New(users *userdomain.Service, sessions *middleware.Sessions, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Sessions: sessions,
		log:      log,
	}
}
