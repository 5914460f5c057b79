package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// Operações do MemoryStore que aceitam falha injetada
const (
	OpTableCreate     = "tables.create"
	OpTableUpdate     = "tables.update"
	OpSaleCreate      = "sales.create"
	OpSaleInsertItem  = "sales.insert_item"
	OpSaleUpdateItem  = "sales.update_item"
	OpSaleDeleteItem  = "sales.delete_item"
	OpSaleUpdateTotal = "sales.update_totals"
	OpSaleClose       = "sales.close"
)

type memoryState struct {
	stores map[string]*store.Store
	tables map[string]*table.Table
	sales  map[string]*sale.Sale
	items  map[string][]sale.LineItem
}

func newMemoryState() *memoryState {
	return &memoryState{
		stores: make(map[string]*store.Store),
		tables: make(map[string]*table.Table),
		sales:  make(map[string]*sale.Sale),
		items:  make(map[string][]sale.LineItem),
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	for id, st := range s.stores {
		cp := *st
		c.stores[id] = &cp
	}
	for id, t := range s.tables {
		c.tables[id] = t.Clone()
	}
	for id, sl := range s.sales {
		c.sales[id] = sl.Clone()
	}
	for id, items := range s.items {
		c.items[id] = append([]sale.LineItem(nil), items...)
	}
	return c
}

// MemoryStore guarda lojas, mesas e vendas em memória. Implementa a mesma
// unidade de trabalho do PostgreSQL: WithinTx trabalha sobre uma cópia do
// estado e só a publica quando fn termina sem erro.
type MemoryStore struct {
	mu       sync.Mutex
	state    *memoryState
	failures map[string]error
}

// NewMemoryStore cria um armazenamento vazio
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state:    newMemoryState(),
		failures: make(map[string]error),
	}
}

// FailOn faz a próxima chamada da operação op falhar com err
func (m *MemoryStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// AddStore cadastra uma loja
func (m *MemoryStore) AddStore(s *store.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.state.stores[s.ID] = &cp
}

// WithinTx executa fn sobre uma cópia do estado, confirmando apenas em caso de sucesso
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(tables table.Repository, sales sale.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m, state: m.state.clone()}
	if err := fn(&memoryTableRepository{tx: tx}, &memorySaleRepository{tx: tx}); err != nil {
		return err
	}
	// commit falha se o prazo expirou durante a transação
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

// Tables retorna o repositório de mesas fora de transação
func (m *MemoryStore) Tables() table.Repository {
	return &memoryTableRepository{tx: &memoryTx{store: m}}
}

// Sales retorna o repositório de vendas fora de transação
func (m *MemoryStore) Sales() sale.Repository {
	return &memorySaleRepository{tx: &memoryTx{store: m}}
}

// Stores retorna o repositório de lojas
func (m *MemoryStore) Stores() store.Repository {
	return &memoryStoreRepository{store: m}
}

// memoryTx com state nil opera direto no estado confirmado, travando a cada chamada
type memoryTx struct {
	store *MemoryStore
	state *memoryState
}

func (tx *memoryTx) do(ctx context.Context, op string, fn func(st *memoryState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx.state == nil {
		tx.store.mu.Lock()
		defer tx.store.mu.Unlock()
	}
	if err, ok := tx.store.failures[op]; ok && op != "" {
		delete(tx.store.failures, op)
		return err
	}
	if tx.state != nil {
		return fn(tx.state)
	}
	return fn(tx.store.state)
}

type memoryTableRepository struct {
	tx *memoryTx
}

func (r *memoryTableRepository) Create(ctx context.Context, t *table.Table) error {
	return r.tx.do(ctx, OpTableCreate, func(st *memoryState) error {
		if _, ok := st.stores[t.StoreID]; !ok {
			return apperror.NotFound("loja", t.StoreID)
		}
		for _, other := range st.tables {
			if other.IsActive && other.StoreID == t.StoreID && other.Number == t.Number {
				return table.ErrDuplicateNumber
			}
		}
		st.tables[t.ID] = t.Clone()
		return nil
	})
}

func (r *memoryTableRepository) FindByID(ctx context.Context, id string) (*table.Table, error) {
	var found *table.Table
	err := r.tx.do(ctx, "", func(st *memoryState) error {
		t, ok := st.tables[id]
		if !ok {
			return apperror.NotFound("mesa", id)
		}
		found = t.Clone()
		return nil
	})
	return found, err
}

func (r *memoryTableRepository) FetchByStore(ctx context.Context, storeID string) ([]table.WithSale, error) {
	var result []table.WithSale
	err := r.tx.do(ctx, "", func(st *memoryState) error {
		for _, t := range st.tables {
			if t.StoreID != storeID || !t.IsActive {
				continue
			}
			ws := table.WithSale{Table: *t}
			if sl, ok := st.sales[t.CurrentSaleID]; ok && sl.IsOpen() {
				ws.CurrentSale = &table.CurrentSale{
					ID:            sl.ID,
					CustomerName:  sl.CustomerName,
					CustomerCount: sl.CustomerCount,
					TotalAmount:   sl.TotalAmount,
					OpenedAt:      sl.OpenedAt,
				}
			}
			result = append(result, ws)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, err
}

func (r *memoryTableRepository) Update(ctx context.Context, t *table.Table, expectedVersion int64) (*table.Table, error) {
	var updated *table.Table
	err := r.tx.do(ctx, OpTableUpdate, func(st *memoryState) error {
		current, ok := st.tables[t.ID]
		if !ok {
			return apperror.NotFound("mesa", t.ID)
		}
		if current.Version != expectedVersion {
			return table.ErrStaleVersion
		}
		next := t.Clone()
		next.StoreID = current.StoreID
		next.CreatedAt = current.CreatedAt
		next.Version = expectedVersion + 1
		next.UpdatedAt = time.Now()
		st.tables[t.ID] = next
		updated = next.Clone()
		return nil
	})
	return updated, err
}

type memorySaleRepository struct {
	tx *memoryTx
}

func (r *memorySaleRepository) Create(ctx context.Context, s *sale.Sale) (*sale.Sale, error) {
	var created *sale.Sale
	err := r.tx.do(ctx, OpSaleCreate, func(st *memoryState) error {
		if _, ok := st.tables[s.TableID]; !ok {
			return apperror.NotFound("mesa", s.TableID)
		}
		for _, other := range st.sales {
			if other.TableID == s.TableID && other.IsOpen() {
				return apperror.Conflict("mesa", s.TableID, "mesa já possui a venda aberta %s", other.ID)
			}
		}
		stored := s.Clone()
		stored.Items = nil
		st.sales[s.ID] = stored
		created = stored.Clone()
		return nil
	})
	return created, err
}

func (r *memorySaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	var found *sale.Sale
	err := r.tx.do(ctx, "", func(st *memoryState) error {
		sl, ok := st.sales[id]
		if !ok {
			return apperror.NotFound("venda", id)
		}
		found = sl.Clone()
		return nil
	})
	return found, err
}

func (r *memorySaleRepository) ListOpen(ctx context.Context, storeID string) ([]*sale.Sale, error) {
	var result []*sale.Sale
	err := r.tx.do(ctx, "", func(st *memoryState) error {
		for _, sl := range st.sales {
			if sl.StoreID == storeID && sl.IsOpen() {
				result = append(result, sl.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].OpenedAt.Before(result[j].OpenedAt) })
	return result, err
}

func (r *memorySaleRepository) ListItems(ctx context.Context, saleID string) ([]sale.LineItem, error) {
	var items []sale.LineItem
	err := r.tx.do(ctx, "", func(st *memoryState) error {
		if _, ok := st.sales[saleID]; !ok {
			return apperror.NotFound("venda", saleID)
		}
		items = append([]sale.LineItem{}, st.items[saleID]...)
		return nil
	})
	return items, err
}

func (r *memorySaleRepository) InsertItem(ctx context.Context, saleID string, item *sale.LineItem) (*sale.LineItem, error) {
	var inserted sale.LineItem
	err := r.tx.do(ctx, OpSaleInsertItem, func(st *memoryState) error {
		sl, ok := st.sales[saleID]
		if !ok {
			return apperror.NotFound("venda", saleID)
		}
		if err := sl.EnsureOpen(); err != nil {
			return err
		}
		inserted = *item
		inserted.SaleID = saleID
		st.items[saleID] = append(st.items[saleID], inserted)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *memorySaleRepository) UpdateItem(ctx context.Context, item *sale.LineItem) error {
	return r.tx.do(ctx, OpSaleUpdateItem, func(st *memoryState) error {
		items := st.items[item.SaleID]
		for i := range items {
			if items[i].ID == item.ID {
				items[i].Quantity = item.Quantity
				items[i].DiscountAmount = item.DiscountAmount
				items[i].Subtotal = item.Subtotal
				items[i].Notes = item.Notes
				return nil
			}
		}
		return apperror.NotFound("item", item.ID)
	})
}

func (r *memorySaleRepository) DeleteItem(ctx context.Context, saleID, itemID string) error {
	return r.tx.do(ctx, OpSaleDeleteItem, func(st *memoryState) error {
		items := st.items[saleID]
		for i := range items {
			if items[i].ID == itemID {
				st.items[saleID] = append(items[:i:i], items[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("item", itemID)
	})
}

func (r *memorySaleRepository) UpdateTotals(ctx context.Context, saleID string, totals sale.Totals) (*sale.Sale, error) {
	var updated *sale.Sale
	err := r.tx.do(ctx, OpSaleUpdateTotal, func(st *memoryState) error {
		sl, ok := st.sales[saleID]
		if !ok {
			return apperror.NotFound("venda", saleID)
		}
		if err := sl.EnsureOpen(); err != nil {
			return err
		}
		sl.ApplyTotals(totals)
		updated = sl.Clone()
		return nil
	})
	return updated, err
}

func (r *memorySaleRepository) Close(ctx context.Context, s *sale.Sale) (*sale.Sale, error) {
	var closed *sale.Sale
	err := r.tx.do(ctx, OpSaleClose, func(st *memoryState) error {
		current, ok := st.sales[s.ID]
		if !ok {
			return apperror.NotFound("venda", s.ID)
		}
		if err := current.EnsureOpen(); err != nil {
			return err
		}
		current.Status = sale.StatusClosed
		current.PaymentType = s.PaymentType
		current.TenderedAmount = s.TenderedAmount
		current.ChangeAmount = s.ChangeAmount
		current.Notes = s.Notes
		current.ClosedAt = s.ClosedAt
		current.UpdatedAt = s.UpdatedAt
		closed = current.Clone()
		return nil
	})
	return closed, err
}

type memoryStoreRepository struct {
	store *MemoryStore
}

func (r *memoryStoreRepository) FindByID(ctx context.Context, id string) (*store.Store, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.state.stores[id]
	if !ok {
		return nil, apperror.NotFound("loja", id)
	}
	cp := *s
	return &cp, nil
}

func (r *memoryStoreRepository) List(ctx context.Context) ([]*store.Store, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*store.Store, 0, len(r.store.state.stores))
	for _, s := range r.store.state.stores {
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
