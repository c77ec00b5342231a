package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/service"
	"github.com/tomboulier/choix-stage-desar/pkg/response"
)

// RotationHandler rotation admin endpoints
type RotationHandler struct {
	rotationSvc service.RotationService
}

// NewRotationHandler creates a RotationHandler
func NewRotationHandler(rotationSvc service.RotationService) *RotationHandler {
	return &RotationHandler{rotationSvc: rotationSvc}
}

// ListRotations every rotation, or only those with a free slot
// GET /admin/api/v1/rotations?available=true
func (h *RotationHandler) ListRotations(c *gin.Context) {
	var req dto.RotationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	var (
		rotations []dto.RotationResponse
		err       error
	)
	if req.Available {
		rotations, err = h.rotationSvc.ListAvailable(c.Request.Context())
	} else {
		rotations, err = h.rotationSvc.ListAll(c.Request.Context())
	}
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rotations})
}

// GetRotation
// GET /admin/api/v1/rotations/:id
func (h *RotationHandler) GetRotation(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	rotation, err := h.rotationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, rotation)
}

// CreateRotation
// POST /admin/api/v1/rotations
func (h *RotationHandler) CreateRotation(c *gin.Context) {
	var req dto.CreateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	rotation, err := h.rotationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.Created(c, rotation)
}

// UpdateRotation
// PUT /admin/api/v1/rotations/:id
func (h *RotationHandler) UpdateRotation(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.UpdateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	rotation, err := h.rotationSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, rotation)
}

// DeleteRotation also removes the rotation's assignments
// DELETE /admin/api/v1/rotations/:id
func (h *RotationHandler) DeleteRotation(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.rotationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *RotationHandler) handleRotationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRotationNotFound):
		response.NotFound(c, 20001, "rotation not found")
	case errors.Is(err, service.ErrInvalidDuration):
		response.BadRequest(c, 10001, "duration must be quarter or half_year")
	case errors.Is(err, service.ErrNegativeSlots):
		response.BadRequest(c, 10001, "total_slots must not be negative")
	case errors.Is(err, service.ErrSlotsBelowAssigned):
		response.Conflict(c, 20002, "total_slots is below the number of current assignments")
	default:
		response.InternalError(c)
	}
}
