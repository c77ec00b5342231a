package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/service"
	"github.com/tomboulier/choix-stage-desar/pkg/response"
)

// InternHandler intern admin endpoints
type InternHandler struct {
	internSvc service.InternService
}

// NewInternHandler creates an InternHandler
func NewInternHandler(internSvc service.InternService) *InternHandler {
	return &InternHandler{internSvc: internSvc}
}

// ListInterns paginated, ordered by name
// GET /admin/api/v1/interns?page=1&page_size=20
func (h *InternHandler) ListInterns(c *gin.Context) {
	var req dto.InternListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	interns, total, err := h.internSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OKPage(c, interns, total, req.GetPage(), req.GetPageSize())
}

// GetIntern
// GET /admin/api/v1/interns/:id
func (h *InternHandler) GetIntern(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	intern, err := h.internSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, intern)
}

// CreateIntern generates the intern's lookup token
// POST /admin/api/v1/interns
func (h *InternHandler) CreateIntern(c *gin.Context) {
	var req dto.CreateInternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	intern, err := h.internSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.Created(c, intern)
}

// UpdateIntern identity fields only; the lookup token never changes
// PUT /admin/api/v1/interns/:id
func (h *InternHandler) UpdateIntern(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.UpdateInternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	intern, err := h.internSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, intern)
}

// DeleteIntern also removes the intern's assignments
// DELETE /admin/api/v1/interns/:id
func (h *InternHandler) DeleteIntern(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.internSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *InternHandler) handleInternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternNotFound):
		response.NotFound(c, 21001, "intern not found")
	case errors.Is(err, service.ErrAmbiguousLookup):
		response.Conflict(c, 21002, "multiple interns share this identifier")
	default:
		response.InternalError(c)
	}
}
