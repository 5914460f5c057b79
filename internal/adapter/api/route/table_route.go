package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/controller"
)

// SetupTableRoutes configura as rotas do mapa de mesas. O grupo recebido já
// deve exigir o cabeçalho store-id.
func SetupTableRoutes(router *gin.RouterGroup, tableController *controller.TableController) {
	tableRouter := router.Group("/tables")
	{
		tableRouter.GET("", tableController.List)
		tableRouter.POST("", tableController.Create)
		tableRouter.GET("/:id", tableController.GetByID)
		tableRouter.DELETE("/:id", tableController.Deactivate)

		// Ciclo de vida da mesa
		tableRouter.POST("/:id/sales", tableController.OpenSale)
		tableRouter.POST("/:id/bill", tableController.RequestBill)
		tableRouter.POST("/:id/clean", tableController.MarkClean)
		tableRouter.POST("/:id/free", tableController.MarkFree)
	}
}
