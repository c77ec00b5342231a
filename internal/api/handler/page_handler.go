package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/service"
	"github.com/tomboulier/choix-stage-desar/internal/web"
)

// ── banners ──

const (
	bannerInternNotFound = "Aucun interne ne correspond à ce lien."
	bannerAmbiguous      = "Erreur : plusieurs internes ont le même identifiant unique."
	bannerAlreadyChosen  = "Vous avez déjà choisi ce stage."
	bannerRotationGone   = "Ce stage n'existe pas ou plus."
	bannerPickRotation   = "Merci de choisir un stage dans la liste."
)

// pageData everything the templates read
type pageData struct {
	Title     string
	Banner    string
	Rotations []dto.RotationResponse
	Intern    *dto.InternResponse
	Choices   []dto.AssignmentResponse
}

// PageHandler server-rendered pages used by interns
type PageHandler struct {
	rotationSvc   service.RotationService
	internSvc     service.InternService
	assignmentSvc service.AssignmentService
	logger        *zap.Logger
}

// NewPageHandler creates a PageHandler
func NewPageHandler(
	rotationSvc service.RotationService,
	internSvc service.InternService,
	assignmentSvc service.AssignmentService,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{
		rotationSvc:   rotationSvc,
		internSvc:     internSvc,
		assignmentSvc: assignmentSvc,
		logger:        logger,
	}
}

// Index every rotation with its remaining slots
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, "")
}

// InternPage the rotations an intern can still pick, and their choices so far
// GET /:token
func (h *PageHandler) InternPage(c *gin.Context) {
	intern, ok := h.resolve(c)
	if !ok {
		return
	}
	h.renderIntern(c, http.StatusOK, intern, "")
}

// Choose records the intern's pick and sends them back to their page
// POST /:token/choices
func (h *PageHandler) Choose(c *gin.Context) {
	intern, ok := h.resolve(c)
	if !ok {
		return
	}

	var form dto.ChooseRotationForm
	if err := c.ShouldBind(&form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = c.Error(err)
			return
		}
		h.renderIntern(c, http.StatusBadRequest, intern, bannerPickRotation)
		return
	}

	_, err := h.assignmentSvc.Assign(c.Request.Context(), intern.ID, form.RotationID)
	var capErr *service.CapacityExceededError
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/"+intern.LookupToken)
	case errors.As(err, &capErr):
		h.renderIntern(c, http.StatusConflict, intern,
			fmt.Sprintf("Le stage « %s » n'a plus de poste disponible.", capErr.Title))
	case errors.Is(err, service.ErrAlreadyAssigned):
		h.renderIntern(c, http.StatusConflict, intern, bannerAlreadyChosen)
	case errors.Is(err, service.ErrRotationNotFound):
		h.renderIntern(c, http.StatusNotFound, intern, bannerRotationGone)
	case errors.Is(err, service.ErrInternNotFound):
		h.renderIndex(c, http.StatusNotFound, bannerInternNotFound)
	default:
		h.renderError(c, err)
	}
}

// ── helpers ──

// resolve maps the :token parameter to an intern. When it cannot, the
// listing page has already been written and ok is false.
func (h *PageHandler) resolve(c *gin.Context) (*dto.InternResponse, bool) {
	intern, err := h.internSvc.Resolve(c.Request.Context(), c.Param("token"))
	switch {
	case err == nil:
		return intern, true
	case errors.Is(err, service.ErrInternNotFound):
		h.renderIndex(c, http.StatusNotFound, bannerInternNotFound)
	case errors.Is(err, service.ErrAmbiguousLookup):
		h.renderIndex(c, http.StatusConflict, bannerAmbiguous)
	default:
		h.renderError(c, err)
	}
	return nil, false
}

func (h *PageHandler) renderIndex(c *gin.Context, status int, banner string) {
	rotations, err := h.rotationSvc.ListAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(status, web.IndexPage, pageData{
		Title:     "Liste des stages",
		Banner:    banner,
		Rotations: rotations,
	})
}

func (h *PageHandler) renderIntern(c *gin.Context, status int, intern *dto.InternResponse, banner string) {
	rotations, err := h.rotationSvc.ListAvailable(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	choices, err := h.assignmentSvc.List(c.Request.Context(), &dto.AssignmentListRequest{InternID: intern.ID})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(status, web.InternPage, pageData{
		Title:     "Choix de stage",
		Banner:    banner,
		Rotations: rotations,
		Intern:    intern,
		Choices:   choices,
	})
}

// renderError answers 500; the cause is logged, never shown
func (h *PageHandler) renderError(c *gin.Context, err error) {
	h.logger.Error("page rendering failed",
		zap.String("route", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.HTML(http.StatusInternalServerError, web.ErrorPage, pageData{Title: "Erreur"})
}
