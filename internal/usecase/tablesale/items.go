package tablesale

import (
	"context"
	"errors"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// ReconcileResult descreve o resultado da verificação de uma venda
type ReconcileResult struct {
	Sale     *sale.Sale  `json:"sale"`
	Drifted  bool        `json:"drifted"`
	Previous sale.Totals `json:"previous"`
}

// SetLineItemQuantity altera a quantidade de um item confirmado. Quantidade
// zero remove o item em vez de gravar uma linha zerada.
func (s *Service) SetLineItemQuantity(ctx context.Context, storeID, saleID, itemID string, quantity int) (*sale.Sale, error) {
	if quantity < 0 {
		return nil, apperror.Validation("quantity", "quantidade não pode ser negativa")
	}
	return s.mutateItems(ctx, storeID, saleID, "alterar item", func(ctx context.Context, sales sale.Repository, items []sale.LineItem) error {
		item, err := findItem(items, itemID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			return sales.DeleteItem(ctx, saleID, item.ID)
		}
		if err := item.SetQuantity(quantity); err != nil {
			return err
		}
		return sales.UpdateItem(ctx, item)
	})
}

// RemoveLineItem remove um item confirmado, inclusive itens vendidos a peso
func (s *Service) RemoveLineItem(ctx context.Context, storeID, saleID, itemID string) (*sale.Sale, error) {
	return s.mutateItems(ctx, storeID, saleID, "remover item", func(ctx context.Context, sales sale.Repository, items []sale.LineItem) error {
		item, err := findItem(items, itemID)
		if err != nil {
			return err
		}
		return sales.DeleteItem(ctx, saleID, item.ID)
	})
}

// SetDiscount define o desconto da venda. O total nunca fica negativo.
func (s *Service) SetDiscount(ctx context.Context, storeID, saleID string, discount money.Money) (*sale.Sale, error) {
	if discount.IsNegative() {
		return nil, apperror.Validation("discount_amount", "desconto não pode ser negativo")
	}

	ctx, cancel := s.begin(ctx)
	defer cancel()

	var result *sale.Sale
	err := s.withSale(ctx, storeID, saleID, func() error {
		return s.uow.WithinTx(ctx, func(_ table.Repository, sales sale.Repository) error {
			sl, err := loadSale(ctx, sales, storeID, saleID)
			if err != nil {
				return err
			}
			if err := sl.EnsureOpen(); err != nil {
				return err
			}
			sl.DiscountAmount = discount
			result, err = recomputeTotals(ctx, sales, sl)
			return err
		})
	})
	if err != nil {
		return nil, apperror.Persistence("aplicar desconto", err)
	}
	return result, nil
}

// ReconcileSale recalcula os totais a partir dos itens e corrige subtotais de
// itens divergentes. Pode ser chamada quantas vezes for preciso.
func (s *Service) ReconcileSale(ctx context.Context, storeID, saleID string) (*ReconcileResult, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	result := &ReconcileResult{}
	err := s.withSale(ctx, storeID, saleID, func() error {
		return s.uow.WithinTx(ctx, func(_ table.Repository, sales sale.Repository) error {
			sl, err := loadSale(ctx, sales, storeID, saleID)
			if err != nil {
				return err
			}
			if err := sl.EnsureOpen(); err != nil {
				return err
			}
			items, err := sales.ListItems(ctx, saleID)
			if err != nil {
				return err
			}

			result.Previous = sale.Totals{Subtotal: sl.Subtotal, Discount: sl.DiscountAmount, Total: sl.TotalAmount}
			totals, drifted := sale.Verify(sl, items)
			result.Drifted = drifted
			if !drifted {
				sl.Items = items
				result.Sale = sl
				return nil
			}

			for i := range items {
				if items[i].IsConsistent() {
					continue
				}
				items[i].Subtotal = items[i].ComputeSubtotal()
				if err := sales.UpdateItem(ctx, &items[i]); err != nil {
					return err
				}
			}
			updated, err := sales.UpdateTotals(ctx, saleID, sale.Recompute(items, sl.DiscountAmount))
			if err != nil {
				return err
			}
			updated.Items = items
			result.Sale = updated
			s.logger.Warn("venda reconciliada", "sale_id", saleID, "stored", result.Previous.Total.String(), "expected", totals.Total.String())
			return nil
		})
	})
	if err != nil {
		return nil, apperror.Persistence("reconciliar venda", err)
	}
	return result, nil
}

// ReconcileStore percorre as vendas abertas da loja e corrige as divergentes.
// Cada venda é reconciliada em sua própria transação.
func (s *Service) ReconcileStore(ctx context.Context, storeID string) ([]ReconcileResult, error) {
	listCtx, cancel := s.begin(ctx)
	open, err := s.uow.Sales().ListOpen(listCtx, storeID)
	cancel()
	if err != nil {
		return nil, apperror.Persistence("listar vendas abertas", err)
	}

	results := make([]ReconcileResult, 0, len(open))
	for _, sl := range open {
		r, err := s.ReconcileSale(ctx, storeID, sl.ID)
		if err != nil {
			// venda fechada entre a listagem e a reconciliação
			if errors.Is(err, apperror.ErrStateConflict) {
				continue
			}
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// mutateItems aplica fn sobre os itens da venda aberta e recalcula os totais
func (s *Service) mutateItems(ctx context.Context, storeID, saleID, op string,
	fn func(ctx context.Context, sales sale.Repository, items []sale.LineItem) error) (*sale.Sale, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	var result *sale.Sale
	err := s.withSale(ctx, storeID, saleID, func() error {
		return s.uow.WithinTx(ctx, func(_ table.Repository, sales sale.Repository) error {
			sl, err := loadSale(ctx, sales, storeID, saleID)
			if err != nil {
				return err
			}
			if err := sl.EnsureOpen(); err != nil {
				return err
			}
			items, err := sales.ListItems(ctx, saleID)
			if err != nil {
				return err
			}
			if err := fn(ctx, sales, items); err != nil {
				return err
			}
			result, err = recomputeTotals(ctx, sales, sl)
			return err
		})
	})
	if err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return result, nil
}

func findItem(items []sale.LineItem, itemID string) (*sale.LineItem, error) {
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}
	return nil, apperror.NotFound("item", itemID)
}
