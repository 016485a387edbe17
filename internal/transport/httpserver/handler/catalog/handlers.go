package catalog

import (
	catalogdomain "mini-tracker-go/internal/domain/catalog"
	"mini-tracker-go/pkg/logger"
)

type Handlers struct {
	Catalog *catalogdomain.Service
	log     logger.Logger
}

func New(catalog *catalogdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Catalog: catalog,
		log:     log,
	}
}
