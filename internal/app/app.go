package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"
	"mini-tracker-go/internal/config"
	"mini-tracker-go/internal/db"
	catalogdomain "mini-tracker-go/internal/domain/catalog"
	listsdomain "mini-tracker-go/internal/domain/lists"
	userdomain "mini-tracker-go/internal/domain/user"
	catalogrepo "mini-tracker-go/internal/repository/postgres/catalog"
	listsrepo "mini-tracker-go/internal/repository/postgres/lists"
	userrepo "mini-tracker-go/internal/repository/postgres/user"
	"mini-tracker-go/internal/transport/httpserver"
	"mini-tracker-go/internal/transport/httpserver/handler"
	"mini-tracker-go/internal/transport/httpserver/middleware"
	"mini-tracker-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	services   handler.Services
	httpServer *http.Server
}

// Open loads config, connects to the database, applies migrations and builds
// the domain services. It does not build the HTTP server.
func Open(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, log); err != nil {
		closeDB(dbConn)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &App{
		cfg:      cfg,
		log:      log,
		db:       dbConn,
		services: newServices(cfg, dbConn),
	}, nil
}

// New is Open plus the router and HTTP server.
func New(log logger.Logger) (*App, error) {
	a, err := Open(log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	sessions := middleware.NewSessions(a.services.Users, a.cfg.Session, log)
	handlers := handler.New(sqlDB, a.services, sessions, log)
	router := httpserver.NewRouter(a.cfg, handlers, sessions, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(a.cfg, router)
	return a, nil
}

func newServices(cfg config.Config, dbConn *gorm.DB) handler.Services {
	return handler.Services{
		Users: userdomain.NewService(userrepo.NewPostgres(dbConn), userdomain.Options{
			BcryptCost: cfg.Auth.BcryptCost,
			SessionTTL: cfg.Session.TTL,
		}),
		Catalog: catalogdomain.NewService(catalogrepo.NewPostgres(dbConn)),
		Lists:   listsdomain.NewService(listsrepo.NewPostgres(dbConn)),
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Users() *userdomain.Service {
	return a.services.Users
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
