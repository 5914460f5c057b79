package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/dto"
)

// Version é a versão da API exposta no health check
const Version = "1.0.0"

// SetupHealthRoutes configura o health check, que não exige loja
func SetupHealthRoutes(router *gin.RouterGroup, storage string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:  "ok",
			Version: Version,
			Storage: storage,
		})
	})
}
