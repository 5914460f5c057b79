package sale

import (
	"context"
)

// Repository define as operações de persistência para vendas e seus itens
type Repository interface {
	// Create persiste uma nova venda aberta com totais zerados
	Create(ctx context.Context, s *Sale) (*Sale, error)

	// FindByID busca uma venda pelo ID (sem itens)
	FindByID(ctx context.Context, id string) (*Sale, error)

	// ListOpen lista as vendas abertas de uma loja
	ListOpen(ctx context.Context, storeID string) ([]*Sale, error)

	// ListItems retorna todos os itens de uma venda
	ListItems(ctx context.Context, saleID string) ([]LineItem, error)

	// InsertItem persiste um item na venda
	InsertItem(ctx context.Context, saleID string, item *LineItem) (*LineItem, error)

	// UpdateItem atualiza quantidade, desconto e subtotal de um item
	UpdateItem(ctx context.Context, item *LineItem) error

	// DeleteItem remove um item da venda
	DeleteItem(ctx context.Context, saleID, itemID string) error

	// UpdateTotals grava subtotal, desconto e total recalculados
	UpdateTotals(ctx context.Context, saleID string, totals Totals) (*Sale, error)

	// Close grava forma de pagamento, troco e data de fechamento
	Close(ctx context.Context, s *Sale) (*Sale, error)
}
