package store

import (
	"context"
)

// Repository define a interface para operações de repositório de lojas
type Repository interface {
	// FindByID busca uma loja pelo ID
	FindByID(ctx context.Context, id string) (*Store, error)

	// List lista as lojas cadastradas
	List(ctx context.Context) ([]*Store, error)
}
