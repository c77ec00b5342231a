package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/config"
	"github.com/tomboulier/choix-stage-desar/internal/api/handler"
	"github.com/tomboulier/choix-stage-desar/internal/api/middleware"
	"github.com/tomboulier/choix-stage-desar/internal/api/validation"
	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/web"
	"github.com/tomboulier/choix-stage-desar/pkg/metrics"
)

const adminPrefix = "/admin/api/v1"

// adminResources every entity the admin API exposes. Adding an entity to
// the admin surface means adding it here and mounting its routes below.
var adminResources = []dto.AdminResourceResponse{
	{Name: "rotations", Path: adminPrefix + "/rotations"},
	{Name: "interns", Path: adminPrefix + "/interns"},
	{Name: "assignments", Path: adminPrefix + "/assignments"},
}

// Setup builds the gin engine.
// db, limiter and collector may be nil: health then skips the database
// ping, the token routes are not rate limited, and /metrics is not served.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	db *gorm.DB,
	limiter middleware.RateLimiter,
	collector *metrics.Collector,
	logger *zap.Logger,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if collector != nil {
		r.Use(middleware.Metrics(collector))
	}

	// ── health / metrics ──
	r.GET("/health", health(db))
	if collector != nil {
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	// ── admin API ──
	if cfg.Admin.Enabled {
		admin := r.Group(adminPrefix)
		admin.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
		{
			admin.GET("", handler.ListResources(adminResources))

			rotations := admin.Group("/rotations")
			{
				rotations.GET("", h.Rotation.ListRotations)
				rotations.GET("/:id", h.Rotation.GetRotation)
				rotations.POST("", h.Rotation.CreateRotation)
				rotations.PUT("/:id", h.Rotation.UpdateRotation)
				rotations.DELETE("/:id", h.Rotation.DeleteRotation)
			}

			interns := admin.Group("/interns")
			{
				interns.GET("", h.Intern.ListInterns)
				interns.GET("/:id", h.Intern.GetIntern)
				interns.POST("", h.Intern.CreateIntern)
				interns.PUT("/:id", h.Intern.UpdateIntern)
				interns.DELETE("/:id", h.Intern.DeleteIntern)
			}

			assignments := admin.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.POST("", h.Assignment.CreateAssignment)
			}

			admin.GET("/export/rotations", h.Export.ExportRotations)
		}
	}

	// ── intern pages ──
	r.GET("/", h.Page.Index)

	tokenRoutes := r.Group("/:token")
	if cfg.RateLimit.Enabled {
		tokenRoutes.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	}
	{
		tokenRoutes.GET("", h.Page.InternPage)
		tokenRoutes.POST("/choices", h.Page.Choose)
	}

	return r, nil
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
