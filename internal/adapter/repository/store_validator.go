package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	pkgstore "github.com/hugohenrick/pdv-mesas/pkg/store"
)

// StoreValidator implementa a validação da loja informada no cabeçalho
type StoreValidator struct {
	repository store.Repository
}

// NewStoreValidator cria uma nova instância de StoreValidator
func NewStoreValidator(repository store.Repository) pkgstore.Validator {
	return &StoreValidator{
		repository: repository,
	}
}

// Validate verifica se a loja existe e está ativa
func (v *StoreValidator) Validate(ctx context.Context, storeID string) error {
	if storeID == "" {
		return pkgstore.ErrStoreNotSpecified
	}

	s, err := v.repository.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return pkgstore.ErrStoreNotFound
		}
		return fmt.Errorf("erro ao buscar loja: %w", err)
	}

	if !s.IsActive() {
		return pkgstore.ErrStoreNotActive
	}

	return nil
}
