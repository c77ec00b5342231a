package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/pkg/response"
)

// ListResources answers with the entities the admin API exposes
// GET /admin/api/v1
func ListResources(resources []dto.AdminResourceResponse) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, gin.H{"list": resources})
	}
}
