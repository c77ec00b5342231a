package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/service"
	"github.com/tomboulier/choix-stage-desar/pkg/response"
)

// AssignmentHandler assignment admin endpoints.
// Assignments are never edited in place; they go away with their intern
// or rotation.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// ListAssignments optionally filtered by intern or rotation
// GET /admin/api/v1/assignments?intern_id=&rotation_id=
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// CreateAssignment goes through the same capacity guard as the intern page
// POST /admin/api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	assignment, err := h.assignmentSvc.Assign(c.Request.Context(), req.InternID, req.RotationID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	var capErr *service.CapacityExceededError
	switch {
	case errors.As(err, &capErr):
		response.Conflict(c, 22001, capErr.Error())
	case errors.Is(err, service.ErrCapacityExceeded):
		response.Conflict(c, 22001, "rotation has no slot left")
	case errors.Is(err, service.ErrAlreadyAssigned):
		response.Conflict(c, 22002, "intern already assigned to this rotation")
	case errors.Is(err, service.ErrInternNotFound):
		response.NotFound(c, 22003, "intern not found")
	case errors.Is(err, service.ErrRotationNotFound):
		response.NotFound(c, 20001, "rotation not found")
	default:
		response.InternalError(c)
	}
}
