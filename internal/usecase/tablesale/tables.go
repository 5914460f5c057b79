package tablesale

import (
	"context"

	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// CreateTableInput são os dados cadastrais de uma nova mesa
type CreateTableInput struct {
	StoreID  string
	Number   int
	Name     string
	Capacity int
	Location string
}

// ListTables lista as mesas ativas da loja, ordenadas pelo número. O termo de
// busca compara com o nome (sem diferenciar maiúsculas) ou com o número.
func (s *Service) ListTables(ctx context.Context, storeID, search string) ([]table.WithSale, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	all, err := s.uow.Tables().FetchByStore(ctx, storeID)
	if err != nil {
		return nil, apperror.Persistence("listar mesas", err)
	}

	filtered := make([]table.WithSale, 0, len(all))
	for _, t := range all {
		if t.Matches(search) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetTable retorna uma mesa ativa com o resumo da venda vinculada
func (s *Service) GetTable(ctx context.Context, storeID, tableID string) (*table.WithSale, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	t, err := loadTable(ctx, s.uow.Tables(), storeID, tableID)
	if err != nil {
		return nil, apperror.Persistence("buscar mesa", err)
	}
	if !t.IsActive {
		return nil, apperror.NotFound("mesa", tableID)
	}

	result := &table.WithSale{Table: *t}
	if t.HasSale() {
		sl, err := s.uow.Sales().FindByID(ctx, t.CurrentSaleID)
		if err != nil {
			return nil, apperror.Persistence("buscar venda da mesa", err)
		}
		result.CurrentSale = summarize(sl)
	}
	return result, nil
}

// CreateTable cadastra uma mesa livre. O número é único entre as mesas ativas da loja.
func (s *Service) CreateTable(ctx context.Context, in CreateTableInput) (*table.Table, error) {
	t, err := table.NewTable(in.StoreID, in.Number, in.Name, in.Capacity, in.Location)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.begin(ctx)
	defer cancel()

	if err := s.uow.Tables().Create(ctx, t); err != nil {
		return nil, apperror.Persistence("criar mesa", err)
	}
	s.logger.Info("mesa criada", "table_id", t.ID, "store_id", t.StoreID, "number", t.Number)
	return t, nil
}

// DeactivateTable desativa a mesa. Mesas com venda aberta não podem ser desativadas.
func (s *Service) DeactivateTable(ctx context.Context, storeID, tableID string) error {
	_, err := s.transition(ctx, storeID, tableID, "desativar mesa", (*table.Table).Deactivate)
	return err
}

// RequestBill marca a mesa ocupada como aguardando conta
func (s *Service) RequestBill(ctx context.Context, storeID, tableID string) (*table.Table, error) {
	return s.transition(ctx, storeID, tableID, "pedir conta", (*table.Table).RequestBill)
}

// MarkClean coloca a mesa em limpeza
func (s *Service) MarkClean(ctx context.Context, storeID, tableID string) (*table.Table, error) {
	return s.transition(ctx, storeID, tableID, "marcar limpeza", (*table.Table).MarkClean)
}

// MarkFree libera a mesa manualmente
func (s *Service) MarkFree(ctx context.Context, storeID, tableID string) (*table.Table, error) {
	return s.transition(ctx, storeID, tableID, "liberar mesa", (*table.Table).MarkFree)
}

// transition aplica uma transição de estado e grava a mesa com verificação de versão
func (s *Service) transition(ctx context.Context, storeID, tableID, op string, apply func(*table.Table) error) (*table.Table, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	var result *table.Table
	err := s.withTable(ctx, tableID, func() error {
		return s.uow.WithinTx(ctx, func(tables table.Repository, _ sale.Repository) error {
			t, err := loadTable(ctx, tables, storeID, tableID)
			if err != nil {
				return err
			}
			expected := t.Version
			if err := apply(t); err != nil {
				return err
			}
			result, err = tables.Update(ctx, t, expected)
			return err
		})
	})
	if err != nil {
		return nil, apperror.Persistence(op, err)
	}

	s.logger.Info("mesa atualizada", "op", op, "table_id", result.ID, "status", string(result.Status))
	return result, nil
}

func summarize(sl *sale.Sale) *table.CurrentSale {
	return &table.CurrentSale{
		ID:            sl.ID,
		CustomerName:  sl.CustomerName,
		CustomerCount: sl.CustomerCount,
		TotalAmount:   sl.TotalAmount,
		OpenedAt:      sl.OpenedAt,
	}
}
