package handler

import (
	catalogdomain "mini-tracker-go/internal/domain/catalog"
	listsdomain "mini-tracker-go/internal/domain/lists"
	userdomain "mini-tracker-go/internal/domain/user"
	authhandler "mini-tracker-go/internal/transport/httpserver/handler/auth"
	cataloghandler "mini-tracker-go/internal/transport/httpserver/handler/catalog"
	commonhandler "mini-tracker-go/internal/transport/httpserver/handler/common"
	listshandler "mini-tracker-go/internal/transport/httpserver/handler/lists"
	"mini-tracker-go/internal/transport/httpserver/middleware"
	"mini-tracker-go/pkg/logger"
)

type Services struct {
	Users   *userdomain.Service
	Catalog *catalogdomain.Service
	Lists   *listsdomain.Service
}

type Handlers struct {
	Common  *commonhandler.Handlers
	Auth    *authhandler.Handlers
	Catalog *cataloghandler.Handlers
	Lists   *listshandler.Handlers
}

func New(db commonhandler.Pinger, services Services, sessions *middleware.Sessions, log logger.Logger) *Handlers {
	return &Handlers{
		Common:  commonhandler.New(db, log),
		Auth:    authhandler.New(services.Users, sessions, log),
		Catalog: cataloghandler.New(services.Catalog, log),
		Lists:   listshandler.New(services.Lists, log),
	}
}
