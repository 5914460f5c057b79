package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/controller"
)

// SetupSaleRoutes configura as rotas das vendas de mesa
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	{
		saleRouter.POST("/reconcile", saleController.ReconcileStore)
		saleRouter.GET("/:id", saleController.GetByID)

		// Itens
		saleRouter.POST("/:id/items", saleController.CommitItems)
		saleRouter.PATCH("/:id/items/:itemId", saleController.UpdateItem)
		saleRouter.DELETE("/:id/items/:itemId", saleController.RemoveItem)

		saleRouter.PATCH("/:id/discount", saleController.SetDiscount)
		saleRouter.POST("/:id/close", saleController.Close)
		saleRouter.POST("/:id/reconcile", saleController.Reconcile)
	}
}
