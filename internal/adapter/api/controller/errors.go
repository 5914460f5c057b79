package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
	"github.com/hugohenrick/pdv-mesas/pkg/store"
)

// respondError traduz os erros da aplicação para o status HTTP correspondente
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrPersistence):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		log.Error(message, "path", ctx.FullPath(), "error", err)
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
}

// requireStore obtém a loja validada pelo middleware
func requireStore(ctx *gin.Context) (string, bool) {
	id := store.GetStoreID(ctx)
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Loja não encontrada", "O cabeçalho 'store-id' é obrigatório"))
		return "", false
	}
	return id, true
}
