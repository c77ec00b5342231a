package handler

import (
	"go.uber.org/zap"

	"github.com/tomboulier/choix-stage-desar/internal/service"
)

// Handler aggregate of every handler
type Handler struct {
	Page       *PageHandler
	Rotation   *RotationHandler
	Intern     *InternHandler
	Assignment *AssignmentHandler
	Export     *ExportHandler
}

// NewHandler builds the aggregate
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Page:       NewPageHandler(svc.Rotation, svc.Intern, svc.Assignment, logger),
		Rotation:   NewRotationHandler(svc.Rotation),
		Intern:     NewInternHandler(svc.Intern),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Export:     NewExportHandler(svc.Export),
	}
}
