package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"mini-tracker-go/internal/config"
	"mini-tracker-go/internal/transport/httpserver/handler"
	"mini-tracker-go/internal/transport/httpserver/middleware"
	"mini-tracker-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions *middleware.Sessions, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Middleware)

			r.Post("/auth/register", handlers.Auth.Register)
			r.Post("/auth/login", handlers.Auth.Login)
			r.Post("/auth/logout", handlers.Auth.Logout)

			r.Get("/factions", handlers.Catalog.ListFactions)
			r.Get("/factions/{id}", handlers.Catalog.GetFaction)
			r.Get("/unit-types", handlers.Catalog.ListUnitTypes)
			r.Get("/unit-types/{id}", handlers.Catalog.GetUnitType)
			r.Get("/miniatures", handlers.Catalog.ListMiniatures)
			r.Get("/miniatures/{id}", handlers.Catalog.GetMiniature)

			r.Get("/lists/public", handlers.Lists.ListPublic)
			r.Get("/lists/{id}", handlers.Lists.GetList)
			r.Get("/list-items/{id}", handlers.Lists.GetItem)
			r.Get("/list-items/{id}/metadata", handlers.Lists.GetMetadata)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)

				r.Get("/auth/me", handlers.Auth.Me)
				r.Put("/users/me/email", handlers.Auth.UpdateEmail)
				r.Put("/users/me/password", handlers.Auth.UpdatePassword)

				r.Get("/lists", handlers.Lists.ListMine)
				r.Post("/lists", handlers.Lists.CreateList)
				r.Put("/lists/{id}", handlers.Lists.UpdateList)
				r.Delete("/lists/{id}", handlers.Lists.DeleteList)
				r.Post("/lists/{id}/items", handlers.Lists.AddItem)

				r.Put("/list-items/{id}", handlers.Lists.UpdateItem)
				r.Delete("/list-items/{id}", handlers.Lists.DeleteItem)
				r.Put("/list-items/{id}/metadata", handlers.Lists.UpsertMetadata)
				r.Delete("/list-items/{id}/metadata", handlers.Lists.DeleteMetadata)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/factions", handlers.Catalog.CreateFaction)
				r.Put("/factions/{id}", handlers.Catalog.UpdateFaction)
				r.Delete("/factions/{id}", handlers.Catalog.DeleteFaction)

				r.Post("/unit-types", handlers.Catalog.CreateUnitType)
				r.Put("/unit-types/{id}", handlers.Catalog.UpdateUnitType)
				r.Delete("/unit-types/{id}", handlers.Catalog.DeleteUnitType)

				r.Post("/miniatures", handlers.Catalog.CreateMiniature)
				r.Put("/miniatures/{id}", handlers.Catalog.UpdateMiniature)
				r.Delete("/miniatures/{id}", handlers.Catalog.DeleteMiniature)
			})
		})
	})

	return r
}
