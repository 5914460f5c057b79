package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/internal/usecase/tablesale"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
)

// TableController gerencia as requisições relacionadas a mesas
type TableController struct {
	service *tablesale.Service
	logger  logger.Logger
}

// NewTableController cria uma nova instância de TableController
func NewTableController(service *tablesale.Service, log logger.Logger) *TableController {
	return &TableController{service: service, logger: log}
}

// List lista as mesas da loja
// @Summary Lista as mesas
// @Description Lista as mesas ativas da loja ordenadas pelo número, com a venda aberta de cada uma
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param search query string false "Filtro por número, nome ou local"
// @Success 200 {object} dto.TableListResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /tables [get]
func (c *TableController) List(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	tables, err := c.service.ListTables(ctx.Request.Context(), storeID, ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.logger, "Erro ao listar mesas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTableListResponse(tables))
}

// Create cadastra uma nova mesa
// @Summary Cadastra uma mesa
// @Description Cadastra uma mesa livre na loja
// @Tags tables
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param table body dto.CreateTableRequest true "Dados da mesa"
// @Success 201 {object} dto.TableResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables [post]
func (c *TableController) Create(ctx *gin.Context) {
	var request dto.CreateTableRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	t, err := c.service.CreateTable(ctx.Request.Context(), tablesale.CreateTableInput{
		StoreID:  storeID,
		Number:   request.Number,
		Name:     request.Name,
		Capacity: request.Capacity,
		Location: request.Location,
	})
	if err != nil {
		respondError(ctx, c.logger, "Erro ao cadastrar mesa", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTableResponse(t))
}

// GetByID busca uma mesa com a venda vinculada
// @Summary Busca uma mesa
// @Description Busca uma mesa ativa pelo ID, com o resumo da venda aberta
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Success 200 {object} dto.TableResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tables/{id} [get]
func (c *TableController) GetByID(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	t, err := c.service.GetTable(ctx.Request.Context(), storeID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "Erro ao buscar mesa", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTableWithSaleResponse(*t))
}

// Deactivate desativa uma mesa sem venda vinculada
// @Summary Desativa uma mesa
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id} [delete]
func (c *TableController) Deactivate(ctx *gin.Context) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	if err := c.service.DeactivateTable(ctx.Request.Context(), storeID, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "Erro ao desativar mesa", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Mesa desativada com sucesso", nil))
}

// OpenSale abre a venda da mesa
// @Summary Abre uma venda
// @Description Abre a venda de uma mesa livre e marca a mesa como ocupada
// @Tags tables
// @Accept json
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Param sale body dto.OpenSaleRequest true "Dados da abertura"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id}/sales [post]
func (c *TableController) OpenSale(ctx *gin.Context) {
	var request dto.OpenSaleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	sl, err := c.service.OpenSale(ctx.Request.Context(), tablesale.OpenSaleInput{
		StoreID:       storeID,
		TableID:       ctx.Param("id"),
		OperatorName:  request.OperatorName,
		CustomerName:  request.CustomerName,
		CustomerCount: request.CustomerCount,
	})
	if err != nil {
		respondError(ctx, c.logger, "Erro ao abrir venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(sl))
}

// RequestBill marca a mesa como aguardando pagamento
// @Summary Pede a conta
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Success 200 {object} dto.TableResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id}/bill [post]
func (c *TableController) RequestBill(ctx *gin.Context) {
	c.transition(ctx, "Erro ao pedir a conta", c.service.RequestBill)
}

// MarkClean envia a mesa para limpeza
// @Summary Envia a mesa para limpeza
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Success 200 {object} dto.TableResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id}/clean [post]
func (c *TableController) MarkClean(ctx *gin.Context) {
	c.transition(ctx, "Erro ao enviar mesa para limpeza", c.service.MarkClean)
}

// MarkFree libera a mesa
// @Summary Libera a mesa
// @Tags tables
// @Produce json
// @Param store-id header string true "ID da loja"
// @Param id path string true "ID da mesa"
// @Success 200 {object} dto.TableResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id}/free [post]
func (c *TableController) MarkFree(ctx *gin.Context) {
	c.transition(ctx, "Erro ao liberar mesa", c.service.MarkFree)
}

func (c *TableController) transition(ctx *gin.Context, message string,
	apply func(ctx context.Context, storeID, tableID string) (*table.Table, error)) {
	storeID, ok := requireStore(ctx)
	if !ok {
		return
	}

	t, err := apply(ctx.Request.Context(), storeID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, message, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTableResponse(t))
}
