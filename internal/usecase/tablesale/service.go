// Package tablesale coordena o ciclo de vida das vendas de mesa: abertura,
// confirmação do carrinho, fechamento e as operações administrativas sobre
// mesas. Toda mutação de uma mesa roda sob o lock da mesa, dentro de uma
// transação e com verificação de versão no banco.
package tablesale

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/queue"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/hugohenrick/pdv-mesas/pkg/lock"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
)

// UnitOfWork dá acesso aos repositórios e executa fn atomicamente: ou todas
// as gravações feitas pelos repositórios recebidos são aplicadas, ou nenhuma.
type UnitOfWork interface {
	Tables() table.Repository
	Sales() sale.Repository
	WithinTx(ctx context.Context, fn func(tables table.Repository, sales sale.Repository) error) error
}

// EventPublisher publica eventos do ciclo de vida após o commit
type EventPublisher interface {
	Publish(ctx context.Context, event queue.SaleEvent) error
}

// Policy reúne as decisões de operação da casa
type Policy struct {
	// ReleaseStatus é o status da mesa após o fechamento da venda
	ReleaseStatus table.Status
	// BlockCashShortfall impede fechar em dinheiro com valor entregue menor que o total
	BlockCashShortfall bool
	// OperationTimeout limita cada operação, incluindo a espera pelo lock
	OperationTimeout time.Duration
}

// DefaultPolicy libera a mesa direto para livre e bloqueia troco negativo
func DefaultPolicy() Policy {
	return Policy{
		ReleaseStatus:      table.StatusFree,
		BlockCashShortfall: true,
		OperationTimeout:   5 * time.Second,
	}
}

// Service implementa as operações de mesas e vendas
type Service struct {
	uow    UnitOfWork
	locker lock.Locker
	events EventPublisher
	logger logger.Logger
	policy Policy
}

// NewService cria uma nova instância de Service
func NewService(uow UnitOfWork, locker lock.Locker, events EventPublisher, log logger.Logger, policy Policy) *Service {
	if policy.OperationTimeout <= 0 {
		policy.OperationTimeout = DefaultPolicy().OperationTimeout
	}
	if policy.ReleaseStatus == "" {
		policy.ReleaseStatus = table.StatusFree
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{uow: uow, locker: locker, events: events, logger: log, policy: policy}
}

// Policy retorna a política em uso
func (s *Service) Policy() Policy {
	return s.policy
}

func (s *Service) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.policy.OperationTimeout)
}

// withTable serializa fn com as demais operações sobre a mesma mesa
func (s *Service) withTable(ctx context.Context, tableID string, fn func() error) error {
	unlock, err := s.locker.Lock(ctx, "mesa:"+tableID)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return apperror.Conflict("mesa", tableID, "mesa em uso por outra operação, tente novamente")
		}
		return apperror.Persistence("lock da mesa", err)
	}
	defer unlock()
	return fn()
}

// withSale localiza a mesa da venda e executa fn sob o lock dessa mesa
func (s *Service) withSale(ctx context.Context, storeID, saleID string, fn func() error) error {
	sl, err := loadSale(ctx, s.uow.Sales(), storeID, saleID)
	if err != nil {
		return err
	}
	return s.withTable(ctx, sl.TableID, fn)
}

func loadTable(ctx context.Context, tables table.Repository, storeID, tableID string) (*table.Table, error) {
	t, err := tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t.StoreID != storeID {
		return nil, apperror.NotFound("mesa", tableID)
	}
	return t, nil
}

func loadSale(ctx context.Context, sales sale.Repository, storeID, saleID string) (*sale.Sale, error) {
	sl, err := sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sl.StoreID != storeID {
		return nil, apperror.NotFound("venda", saleID)
	}
	return sl, nil
}

// publish envia o evento sem afetar o resultado da operação já confirmada
func (s *Service) publish(ctx context.Context, eventType string, sl *sale.Sale, t *table.Table) {
	event := queue.SaleEvent{
		Type:          eventType,
		SaleID:        sl.ID,
		StoreID:       sl.StoreID,
		TableID:       sl.TableID,
		CustomerCount: sl.CustomerCount,
		SubtotalCents: sl.Subtotal.Cents(),
		DiscountCents: sl.DiscountAmount.Cents(),
		TotalCents:    sl.TotalAmount.Cents(),
		ChangeCents:   sl.ChangeAmount.Cents(),
		PaymentType:   string(sl.PaymentType),
		OccurredAt:    time.Now().UTC(),
	}
	if t != nil {
		event.TableNumber = t.Number
		event.TableStatus = string(t.Status)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.events.Publish(pubCtx, event); err != nil {
		s.logger.Warn("falha ao publicar evento", "type", eventType, "sale_id", sl.ID, "error", err)
	}
}
