package store

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/dto"
)

// Validator define a interface para validação da loja informada
type Validator interface {
	Validate(ctx context.Context, storeID string) error
}

// Middleware cria um middleware que exige o cabeçalho store-id e valida a loja
func Middleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.GetHeader(HeaderName)
		if storeID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Loja não informada",
				"O cabeçalho 'store-id' é obrigatório",
			))
			return
		}

		if err := validator.Validate(c.Request.Context(), storeID); err != nil {
			switch {
			case errors.Is(err, ErrStoreNotFound), errors.Is(err, ErrStoreNotActive):
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
					http.StatusForbidden,
					"Loja inválida",
					err.Error(),
				))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
					http.StatusInternalServerError,
					"Erro ao validar loja",
					err.Error(),
				))
			}
			return
		}

		// Armazenar o ID da loja no contexto
		c.Set(string(storeIDKey), storeID)
		c.Request = c.Request.WithContext(SetStoreIDContext(c.Request.Context(), storeID))

		c.Next()
	}
}
