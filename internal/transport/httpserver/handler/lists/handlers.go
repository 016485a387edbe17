package lists

import (
	listsdomain "mini-tracker-go/internal/domain/lists"
	"mini-tracker-go/pkg/logger"
)

type Handlers struct {
	Lists *listsdomain.Service
	log   logger.Logger
}

func New(lists *listsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Lists: lists,
		log:   log,
	}
}
