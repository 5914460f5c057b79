package tablesale

import (
	"context"

	"github.com/hugohenrick/pdv-mesas/internal/domain/cart"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/queue"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// OpenSaleInput são os dados para abrir uma venda em uma mesa livre
type OpenSaleInput struct {
	StoreID       string
	TableID       string
	OperatorName  string
	CustomerName  string
	CustomerCount int
}

// CloseSaleInput são os dados do fechamento da conta
type CloseSaleInput struct {
	StoreID     string
	SaleID      string
	PaymentType string
	// Tendered é o valor entregue em dinheiro ("troco para"); nil quando não informado
	Tendered *money.Money
	// RequestCleaning envia a mesa para limpeza independente da política
	RequestCleaning bool
	Notes           string
}

// CloseSaleResult traz a venda fechada, a mesa liberada e o troco calculado
type CloseSaleResult struct {
	Sale   *sale.Sale
	Table  *table.Table
	Change sale.Change
}

// OpenSale cria a venda com totais zerados e ocupa a mesa na mesma transação
func (s *Service) OpenSale(ctx context.Context, in OpenSaleInput) (*sale.Sale, error) {
	if in.StoreID == "" {
		return nil, table.ErrEmptyStoreID
	}
	if in.CustomerCount < 1 {
		return nil, apperror.Validation("customer_count", "quantidade de pessoas deve ser maior que zero")
	}

	ctx, cancel := s.begin(ctx)
	defer cancel()

	var opened *sale.Sale
	var occupied *table.Table
	err := s.withTable(ctx, in.TableID, func() error {
		return s.uow.WithinTx(ctx, func(tables table.Repository, sales sale.Repository) error {
			t, err := loadTable(ctx, tables, in.StoreID, in.TableID)
			if err != nil {
				return err
			}
			if in.CustomerCount > t.Capacity {
				return apperror.Validation("customer_count", "mesa %d comporta %d pessoas, informado %d", t.Number, t.Capacity, in.CustomerCount)
			}

			sl := sale.NewSale(in.StoreID, t.ID, in.OperatorName, in.CustomerName, in.CustomerCount)
			expected := t.Version
			if err := t.Open(sl.ID); err != nil {
				return err
			}

			created, err := sales.Create(ctx, sl)
			if err != nil {
				return err
			}
			updated, err := tables.Update(ctx, t, expected)
			if err != nil {
				return err
			}
			opened, occupied = created, updated
			return nil
		})
	})
	if err != nil {
		return nil, apperror.Persistence("abrir venda", err)
	}

	s.logger.Info("venda aberta", "sale_id", opened.ID, "table_id", occupied.ID, "table_number", occupied.Number, "customer_count", opened.CustomerCount)
	s.publish(ctx, queue.EventSaleOpened, opened, occupied)
	return opened, nil
}

// CommitCart grava cada entrada do carrinho como item da venda e recalcula os
// totais a partir do conjunto completo de itens. O carrinho é esvaziado quando
// a gravação é confirmada.
func (s *Service) CommitCart(ctx context.Context, storeID, saleID string, c *cart.Cart) (*sale.Sale, error) {
	if c == nil || c.IsEmpty() {
		return nil, apperror.Validation("items", "carrinho vazio")
	}
	items, err := c.LineItems(saleID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.begin(ctx)
	defer cancel()

	var result *sale.Sale
	err = s.withSale(ctx, storeID, saleID, func() error {
		return s.uow.WithinTx(ctx, func(_ table.Repository, sales sale.Repository) error {
			sl, err := loadSale(ctx, sales, storeID, saleID)
			if err != nil {
				return err
			}
			if err := sl.EnsureOpen(); err != nil {
				return err
			}
			for _, item := range items {
				if _, err := sales.InsertItem(ctx, saleID, item); err != nil {
					return err
				}
			}
			result, err = recomputeTotals(ctx, sales, sl)
			return err
		})
	})
	if err != nil {
		return nil, apperror.Persistence("confirmar itens", err)
	}

	c.Clear()
	s.logger.Info("itens confirmados", "sale_id", saleID, "items", len(items), "total", result.TotalAmount.String())
	return result, nil
}

// CloseSale registra o pagamento, fecha a venda e libera a mesa atomicamente
func (s *Service) CloseSale(ctx context.Context, in CloseSaleInput) (*CloseSaleResult, error) {
	payment, err := sale.ParsePaymentType(in.PaymentType)
	if err != nil {
		return nil, err
	}
	if in.Tendered != nil && in.Tendered.IsNegative() {
		return nil, apperror.Validation("tendered_amount", "valor entregue não pode ser negativo")
	}

	ctx, cancel := s.begin(ctx)
	defer cancel()

	result := &CloseSaleResult{}
	err = s.withSale(ctx, in.StoreID, in.SaleID, func() error {
		return s.uow.WithinTx(ctx, func(tables table.Repository, sales sale.Repository) error {
			sl, err := loadSale(ctx, sales, in.StoreID, in.SaleID)
			if err != nil {
				return err
			}
			if err := sl.EnsureOpen(); err != nil {
				return err
			}

			// Totais divergentes dos itens são corrigidos antes de cobrar
			items, err := sales.ListItems(ctx, sl.ID)
			if err != nil {
				return err
			}
			if totals, drifted := sale.Verify(sl, items); drifted {
				s.logger.Warn("totais divergentes corrigidos no fechamento", "sale_id", sl.ID, "stored", sl.TotalAmount.String(), "expected", totals.Total.String())
				if sl, err = sales.UpdateTotals(ctx, sl.ID, totals); err != nil {
					return err
				}
			}

			var tendered, change money.Money
			if payment == sale.PaymentCash && in.Tendered != nil && *in.Tendered > 0 {
				result.Change = sale.ChangeDue(sl.TotalAmount, *in.Tendered)
				if result.Change.Shortfall && s.policy.BlockCashShortfall {
					return apperror.Validation("tendered_amount", "valor entregue %s é menor que o total %s (faltam %s)",
						in.Tendered.String(), sl.TotalAmount.String(), result.Change.Missing.String())
				}
				tendered, change = *in.Tendered, result.Change.Amount
			}

			t, err := loadTable(ctx, tables, in.StoreID, sl.TableID)
			if err != nil {
				return err
			}
			next := s.policy.ReleaseStatus
			if in.RequestCleaning {
				next = table.StatusCleaning
			}
			expected := t.Version
			if err := t.Release(sl.ID, next); err != nil {
				return err
			}
			if err := sl.Close(payment, tendered, change, in.Notes); err != nil {
				return err
			}

			closed, err := sales.Close(ctx, sl)
			if err != nil {
				return err
			}
			released, err := tables.Update(ctx, t, expected)
			if err != nil {
				return err
			}
			closed.Items = items
			result.Sale, result.Table = closed, released
			return nil
		})
	})
	if err != nil {
		return nil, apperror.Persistence("fechar venda", err)
	}

	s.logger.Info("venda fechada", "sale_id", result.Sale.ID, "table_id", result.Table.ID, "payment_type", string(payment),
		"total", result.Sale.TotalAmount.String(), "change", result.Sale.ChangeAmount.String(), "table_status", string(result.Table.Status))
	s.publish(ctx, queue.EventSaleClosed, result.Sale, result.Table)
	return result, nil
}

// GetSale retorna a venda com seus itens
func (s *Service) GetSale(ctx context.Context, storeID, saleID string) (*sale.Sale, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	sl, err := loadSale(ctx, s.uow.Sales(), storeID, saleID)
	if err != nil {
		return nil, apperror.Persistence("buscar venda", err)
	}
	items, err := s.uow.Sales().ListItems(ctx, saleID)
	if err != nil {
		return nil, apperror.Persistence("listar itens", err)
	}
	sl.Items = items
	return sl, nil
}

// recomputeTotals deriva os totais dos itens persistidos e os grava
func recomputeTotals(ctx context.Context, sales sale.Repository, sl *sale.Sale) (*sale.Sale, error) {
	items, err := sales.ListItems(ctx, sl.ID)
	if err != nil {
		return nil, err
	}
	updated, err := sales.UpdateTotals(ctx, sl.ID, sale.Recompute(items, sl.DiscountAmount))
	if err != nil {
		return nil, err
	}
	updated.Items = items
	return updated, nil
}
