package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/usecase/tablesale"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
)

// SaleController gerencia as requisições relacionadas às vendas de mesa
type SaleController struct {
	service *tablesale.Service
	logger  logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(service *tablesale.Service, log logger.Logger) *SaleController {
	return &SaleController{service: service, logger: log}
}

// GetByID busca uma venda com seus itens
// @Summary Busca uma venda
// @Tags sales
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) GetByID(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	sl, err := c.service.GetSale(ctx.Request.Context(), storeID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "Erro ao buscar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// CommitItems confirma o carrinho na venda
// @Summary Confirma o carrinho
// @Description Grava os itens do carrinho na venda e recalcula os totais em uma única transação
// @Tags sales
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Param cart body dto.CommitCartRequest true "Itens do carrinho"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sales/{id}/items [post]
func (c *SaleController) CommitItems(ctx *gin.Context) {
	var request dto.CommitCartRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	staged, err := request.ToCart()
	if err != nil {
		respondError(ctx, c.logger, "Carrinho inválido", err)
		return
	}

	sl, err := c.service.CommitCart(ctx.Request.Context(), storeID, ctx.Param("id"), staged)
	if err != nil {
		respondError(ctx, c.logger, "Erro ao confirmar itens", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// UpdateItem altera a quantidade de um item
// @Summary Altera a quantidade de um item
// @Description Quantidade zero remove o item. Os totais da venda são recalculados.
// @Tags sales
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Param itemId path string true "ID do item"
// @Param item body dto.UpdateItemRequest true "Nova quantidade"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id}/items/{itemId} [patch]
func (c *SaleController) UpdateItem(ctx *gin.Context) {
	var request dto.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	sl, err := c.service.SetLineItemQuantity(ctx.Request.Context(), storeID, ctx.Param("id"), ctx.Param("itemId"), *request.Quantity)
	if err != nil {
		respondError(ctx, c.logger, "Erro ao alterar item", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// RemoveItem remove um item da venda
// @Summary Remove um item
// @Tags sales
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Param itemId path string true "ID do item"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id}/items/{itemId} [delete]
func (c *SaleController) RemoveItem(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	sl, err := c.service.RemoveLineItem(ctx.Request.Context(), storeID, ctx.Param("id"), ctx.Param("itemId"))
	if err != nil {
		respondError(ctx, c.logger, "Erro ao remover item", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// SetDiscount define o desconto da venda
// @Summary Define o desconto da venda
// @Tags sales
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Param discount body dto.DiscountRequest true "Desconto"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id}/discount [patch]
func (c *SaleController) SetDiscount(ctx *gin.Context) {
	var request dto.DiscountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	discount, err := money.ParseNonNegative(request.DiscountAmount)
	if err != nil {
		respondError(ctx, c.logger, "Desconto inválido", apperror.Validation("discount_amount", "%v", err))
		return
	}

	sl, err := c.service.SetDiscount(ctx.Request.Context(), storeID, ctx.Param("id"), discount)
	if err != nil {
		respondError(ctx, c.logger, "Erro ao aplicar desconto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// Close fecha a conta da mesa
// @Summary Fecha a conta
// @Description Registra o pagamento, calcula o troco e libera a mesa conforme a política da casa
// @Tags sales
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Param payment body dto.CloseSaleRequest true "Dados do pagamento"
// @Success 200 {object} dto.CloseSaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sales/{id}/close [post]
func (c *SaleController) Close(ctx *gin.Context) {
	var request dto.CloseSaleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	tendered, err := request.ParseTendered()
	if err != nil {
		respondError(ctx, c.logger, "Valor entregue inválido", err)
		return
	}

	result, err := c.service.CloseSale(ctx.Request.Context(), tablesale.CloseSaleInput{
		StoreID:         storeID,
		SaleID:          ctx.Param("id"),
		PaymentType:     request.PaymentType,
		Tendered:        tendered,
		RequestCleaning: request.RequestCleaning,
		Notes:           request.Notes,
	})
	if err != nil {
		respondError(ctx, c.logger, "Erro ao fechar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CloseSaleResponse{
		Sale:   dto.ToSaleResponse(result.Sale),
		Table:  dto.ToTableResponse(result.Table),
		Change: dto.ToChangeResponse(result.Change),
	})
}

// Reconcile recalcula os totais de uma venda a partir dos itens
// @Summary Reconcilia uma venda
// @Tags sales
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id}/reconcile [post]
func (c *SaleController) Reconcile(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	result, err := c.service.ReconcileSale(ctx.Request.Context(), storeID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "Erro ao reconciliar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReconcileResponse{
		Sale:          dto.ToSaleResponse(result.Sale),
		Drifted:       result.Drifted,
		PreviousTotal: result.Previous.Total.String(),
	})
}

// ReconcileStore reconcilia todas as vendas abertas da loja
// @Summary Reconcilia as vendas abertas da loja
// @Tags sales
// @Produce json
// @Param store-id header string true "ID da loja"
// @Success 200 {object} dto.ReconcileStoreResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sales/reconcile [post]
func (c *SaleController) ReconcileStore(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	results, err := c.service.ReconcileStore(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, c.logger, "Erro ao reconciliar vendas", err)
		return
	}

	resp := dto.ReconcileStoreResponse{Checked: len(results), SaleIDs: []string{}}
	for _, r := range results {
		if r.Drifted {
			resp.Repaired++
			resp.SaleIDs = append(resp.SaleIDs, r.Sale.ID)
		}
	}
	ctx.JSON(http.StatusOK, resp)
}
