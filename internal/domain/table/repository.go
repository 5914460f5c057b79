package table

import (
	"context"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
)

// CurrentSale é o resumo da venda aberta exibido junto com a mesa
type CurrentSale struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerCount int         `json:"customer_count"`
	TotalAmount   money.Money `json:"total_amount"`
	OpenedAt      time.Time   `json:"opened_at"`
}

// WithSale é uma mesa acompanhada da venda vinculada, quando houver
type WithSale struct {
	Table
	CurrentSale *CurrentSale `json:"current_sale,omitempty"`
}

// Repository define as operações de persistência para mesas
type Repository interface {
	// Create persiste uma nova mesa
	Create(ctx context.Context, t *Table) error

	// FindByID busca uma mesa pelo ID
	FindByID(ctx context.Context, id string) (*Table, error)

	// FetchByStore lista as mesas ativas da loja, ordenadas pelo número,
	// com a venda vinculada de cada uma
	FetchByStore(ctx context.Context, storeID string) ([]WithSale, error)

	// Update grava status, venda vinculada e dados cadastrais se a versão
	// persistida ainda for expectedVersion. Caso contrário retorna ErrStaleVersion.
	Update(ctx context.Context, t *Table, expectedVersion int64) (*Table, error)
}
