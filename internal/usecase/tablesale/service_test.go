package tablesale

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/pdv-mesas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-mesas/internal/domain/cart"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/queue"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/hugohenrick/pdv-mesas/pkg/lock"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
)

const storeID = "loja-1"

type fixture struct {
	svc    *Service
	mem    *repository.MemoryStore
	events *queue.RecordingPublisher
	locker *lock.LocalLocker
	table  *table.Table
}

func newFixture(t *testing.T, policy Policy) *fixture {
	t.Helper()
	mem := repository.NewMemoryStore()
	mem.AddStore(&store.Store{ID: storeID, Name: "Loja 1", Status: store.StatusActive})

	f := &fixture{
		mem:    mem,
		events: &queue.RecordingPublisher{},
		locker: lock.NewLocalLocker(),
	}
	f.svc = NewService(mem, f.locker, f.events, logger.Nop{}, policy)

	tbl, err := f.svc.CreateTable(context.Background(), CreateTableInput{StoreID: storeID, Number: 1, Capacity: 4, Location: "Área interna"})
	require.NoError(t, err)
	f.table = tbl
	return f
}

func (f *fixture) open(t *testing.T, count int) *sale.Sale {
	t.Helper()
	s, err := f.svc.OpenSale(context.Background(), OpenSaleInput{StoreID: storeID, TableID: f.table.ID, OperatorName: "Ana", CustomerCount: count})
	require.NoError(t, err)
	return s
}

func (f *fixture) tableNow(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := f.mem.Tables().FindByID(context.Background(), f.table.ID)
	require.NoError(t, err)
	return tbl
}

func dinnerCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.Add("10", "X-Burger", money.MustParse("18.90")))
	require.NoError(t, c.Add("10", "X-Burger", money.MustParse("18.90")))
	require.NoError(t, c.Add("22", "Suco de laranja", money.MustParse("16.90")))
	return c
}

func tendered(s string) *money.Money {
	m := money.MustParse(s)
	return &m
}

func TestFullCycleWithCashChange(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()

	s := f.open(t, 3)
	assert.Equal(t, sale.StatusOpen, s.Status)
	assert.Equal(t, money.Zero, s.TotalAmount)

	occupied := f.tableNow(t)
	assert.Equal(t, table.StatusOccupied, occupied.Status)
	assert.Equal(t, s.ID, occupied.CurrentSaleID)

	c := dinnerCart(t)
	committed, err := f.svc.CommitCart(ctx, storeID, s.ID, c)
	require.NoError(t, err)
	assert.Equal(t, "54.70", committed.Subtotal.String())
	assert.Equal(t, "54.70", committed.TotalAmount.String())
	assert.Len(t, committed.Items, 2)
	assert.True(t, c.IsEmpty())

	result, err := f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "cash", Tendered: tendered("60.00")})
	require.NoError(t, err)
	assert.Equal(t, "5.30", result.Change.Amount.String())
	assert.Equal(t, "5.30", result.Sale.ChangeAmount.String())
	assert.Equal(t, "60.00", result.Sale.TenderedAmount.String())
	assert.Equal(t, sale.StatusClosed, result.Sale.Status)
	assert.NotNil(t, result.Sale.ClosedAt)

	released := f.tableNow(t)
	assert.Equal(t, table.StatusFree, released.Status)
	assert.Empty(t, released.CurrentSaleID)

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, queue.EventSaleOpened, events[0].Type)
	assert.Equal(t, queue.EventSaleClosed, events[1].Type)
	assert.Equal(t, int64(5470), events[1].TotalCents)
	assert.Equal(t, "free", events[1].TableStatus)
}

func TestOpenSaleRejectsCapacityViolation(t *testing.T) {
	f := newFixture(t, DefaultPolicy())

	_, err := f.svc.OpenSale(context.Background(), OpenSaleInput{StoreID: storeID, TableID: f.table.ID, CustomerCount: 5})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.OpenSale(context.Background(), OpenSaleInput{StoreID: storeID, TableID: f.table.ID, CustomerCount: 0})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	tbl := f.tableNow(t)
	assert.Equal(t, table.StatusFree, tbl.Status)
	assert.Empty(t, tbl.CurrentSaleID)
	assert.Empty(t, f.events.Events())
}

func TestConcurrentOpenOnlyOneSucceeds(t *testing.T) {
	f := newFixture(t, DefaultPolicy())

	const callers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, conflicts int

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.OpenSale(context.Background(), OpenSaleInput{StoreID: storeID, TableID: f.table.ID, CustomerCount: 2})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperror.ErrStateConflict):
				conflicts++
			default:
				t.Errorf("erro inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)

	open, err := f.mem.Sales().ListOpen(context.Background(), storeID)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestCloseSaleIsAtomic(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)
	_, err := f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)

	f.mem.FailOn(repository.OpTableUpdate, errors.New("conexão perdida"))
	_, err = f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "pix"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrPersistence)

	stored, err := f.svc.GetSale(ctx, storeID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.StatusOpen, stored.Status)
	assert.Empty(t, stored.PaymentType)

	tbl := f.tableNow(t)
	assert.Equal(t, table.StatusOccupied, tbl.Status)
	assert.Equal(t, s.ID, tbl.CurrentSaleID)

	// nova tentativa depois da falha
	_, err = f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "pix"})
	require.NoError(t, err)
}

func TestCommitCartRollsBackOnTotalsFailure(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)

	c := dinnerCart(t)
	f.mem.FailOn(repository.OpSaleUpdateTotal, errors.New("timeout"))
	_, err := f.svc.CommitCart(ctx, storeID, s.ID, c)
	require.ErrorIs(t, err, apperror.ErrPersistence)
	assert.Equal(t, 2, c.Len(), "carrinho preservado para nova tentativa")

	stored, err := f.svc.GetSale(ctx, storeID, s.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Equal(t, money.Zero, stored.TotalAmount)
}

func TestClosedSaleIsImmutable(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)
	committed, err := f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)
	_, err = f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "credit_card"})
	require.NoError(t, err)

	_, err = f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = f.svc.SetDiscount(ctx, storeID, s.ID, money.MustParse("1.00"))
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = f.svc.SetLineItemQuantity(ctx, storeID, s.ID, committed.Items[0].ID, 5)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "pix"})
	assert.ErrorIs(t, err, apperror.ErrStateConflict)
}

func TestCloseSaleValidation(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	s := f.open(t, 2)

	_, err := f.svc.CloseSale(context.Background(), CloseSaleInput{StoreID: storeID, SaleID: s.ID})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.CloseSale(context.Background(), CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "cheque"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.Equal(t, table.StatusOccupied, f.tableNow(t).Status)
}

func TestCashShortfallPolicy(t *testing.T) {
	ctx := context.Background()

	blocked := newFixture(t, DefaultPolicy())
	s := blocked.open(t, 2)
	_, err := blocked.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)
	_, err = blocked.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "cash", Tendered: tendered("50.00")})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "4.70")
	assert.Equal(t, table.StatusOccupied, blocked.tableNow(t).Status)

	policy := DefaultPolicy()
	policy.BlockCashShortfall = false
	allowed := newFixture(t, policy)
	s = allowed.open(t, 2)
	_, err = allowed.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)
	result, err := allowed.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "cash", Tendered: tendered("50.00")})
	require.NoError(t, err)
	assert.True(t, result.Change.Shortfall)
	assert.Equal(t, money.Zero, result.Sale.ChangeAmount)
}

func TestReleasePolicy(t *testing.T) {
	ctx := context.Background()

	policy := DefaultPolicy()
	policy.ReleaseStatus = table.StatusCleaning
	f := newFixture(t, policy)
	s := f.open(t, 1)
	result, err := f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "pix"})
	require.NoError(t, err)
	assert.Equal(t, table.StatusCleaning, result.Table.Status)

	_, err = f.svc.OpenSale(ctx, OpenSaleInput{StoreID: storeID, TableID: f.table.ID, CustomerCount: 1})
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	freed, err := f.svc.MarkFree(ctx, storeID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.StatusFree, freed.Status)

	g := newFixture(t, DefaultPolicy())
	s = g.open(t, 1)
	result, err = g.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "debit_card", RequestCleaning: true})
	require.NoError(t, err)
	assert.Equal(t, table.StatusCleaning, result.Table.Status)
}

func TestRequestBillThenClose(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)

	billed, err := f.svc.RequestBill(ctx, storeID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.StatusAwaitingPayment, billed.Status)
	assert.Equal(t, s.ID, billed.CurrentSaleID)

	_, err = f.svc.RequestBill(ctx, storeID, f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = f.svc.MarkClean(ctx, storeID, f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	result, err := f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "voucher"})
	require.NoError(t, err)
	assert.Equal(t, table.StatusFree, result.Table.Status)
}

func TestLineItemEdits(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)

	committed, err := f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)
	burger := committed.Items[0]
	juice := committed.Items[1]

	updated, err := f.svc.SetLineItemQuantity(ctx, storeID, s.ID, burger.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "73.60", updated.TotalAmount.String())

	updated, err = f.svc.SetLineItemQuantity(ctx, storeID, s.ID, juice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, "56.70", updated.TotalAmount.String())

	_, err = f.svc.SetLineItemQuantity(ctx, storeID, s.ID, burger.ID, -1)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.SetLineItemQuantity(ctx, storeID, s.ID, juice.ID, 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	updated, err = f.svc.SetDiscount(ctx, storeID, s.ID, money.MustParse("6.70"))
	require.NoError(t, err)
	assert.Equal(t, "56.70", updated.Subtotal.String())
	assert.Equal(t, "50.00", updated.TotalAmount.String())

	updated, err = f.svc.SetDiscount(ctx, storeID, s.ID, money.MustParse("100.00"))
	require.NoError(t, err)
	assert.Equal(t, money.Zero, updated.TotalAmount)

	updated, err = f.svc.RemoveLineItem(ctx, storeID, s.ID, burger.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Items)
	assert.Equal(t, money.Zero, updated.Subtotal)
}

func TestWeighedItemCommit(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 1)

	c := cart.New()
	require.NoError(t, c.AddWeighed("900", "Buffet por quilo", decimal.RequireFromString("0.350"), decimal.RequireFromString("0.0599")))
	committed, err := f.svc.CommitCart(ctx, storeID, s.ID, c)
	require.NoError(t, err)
	assert.Equal(t, "20.97", committed.TotalAmount.String())

	_, err = f.svc.SetLineItemQuantity(ctx, storeID, s.ID, committed.Items[0].ID, 2)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCommitEmptyCart(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	s := f.open(t, 1)

	_, err := f.svc.CommitCart(context.Background(), storeID, s.ID, cart.New())
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestReconcileRepairsDrift(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)
	_, err := f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)

	// simula totais gravados por uma confirmação interrompida
	_, err = f.mem.Sales().UpdateTotals(ctx, s.ID, sale.Totals{Subtotal: money.MustParse("18.90"), Total: money.MustParse("18.90")})
	require.NoError(t, err)

	result, err := f.svc.ReconcileSale(ctx, storeID, s.ID)
	require.NoError(t, err)
	assert.True(t, result.Drifted)
	assert.Equal(t, "18.90", result.Previous.Total.String())
	assert.Equal(t, "54.70", result.Sale.TotalAmount.String())

	again, err := f.svc.ReconcileSale(ctx, storeID, s.ID)
	require.NoError(t, err)
	assert.False(t, again.Drifted)
	assert.Equal(t, "54.70", again.Sale.TotalAmount.String())

	all, err := f.svc.ReconcileStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Drifted)
}

func TestCloseSaleRepairsDriftBeforeCharging(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)
	_, err := f.svc.CommitCart(ctx, storeID, s.ID, dinnerCart(t))
	require.NoError(t, err)
	_, err = f.mem.Sales().UpdateTotals(ctx, s.ID, sale.Totals{})
	require.NoError(t, err)

	result, err := f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "cash", Tendered: tendered("60.00")})
	require.NoError(t, err)
	assert.Equal(t, "54.70", result.Sale.TotalAmount.String())
	assert.Equal(t, "5.30", result.Sale.ChangeAmount.String())
}

func TestLockTimeoutIsConflict(t *testing.T) {
	policy := DefaultPolicy()
	policy.OperationTimeout = 30 * time.Millisecond
	f := newFixture(t, policy)

	unlock, err := f.locker.Lock(context.Background(), "mesa:"+f.table.ID)
	require.NoError(t, err)
	defer unlock()

	_, err = f.svc.MarkClean(context.Background(), storeID, f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)
	assert.Equal(t, table.StatusFree, f.tableNow(t).Status)
}

func TestStoreScoping(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)

	_, err := f.svc.GetSale(ctx, "loja-2", s.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.OpenSale(ctx, OpenSaleInput{StoreID: "loja-2", TableID: f.table.ID, CustomerCount: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.MarkFree(ctx, "loja-2", f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	tables, err := f.svc.ListTables(ctx, "loja-2", "")
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestListTablesAndSearch(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()

	for _, in := range []CreateTableInput{
		{StoreID: storeID, Number: 12, Capacity: 6},
		{StoreID: storeID, Number: 3, Name: "Varanda", Capacity: 2},
		{StoreID: storeID, Number: 2, Capacity: 2},
	} {
		_, err := f.svc.CreateTable(ctx, in)
		require.NoError(t, err)
	}
	_, err := f.svc.CreateTable(ctx, CreateTableInput{StoreID: storeID, Number: 2, Capacity: 2})
	assert.ErrorIs(t, err, table.ErrDuplicateNumber)

	all, err := f.svc.ListTables(ctx, storeID, "")
	require.NoError(t, err)
	numbers := make([]int, 0, len(all))
	for _, tbl := range all {
		numbers = append(numbers, tbl.Number)
	}
	assert.Equal(t, []int{1, 2, 3, 12}, numbers)

	byName, err := f.svc.ListTables(ctx, storeID, "VARANDA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 3, byName[0].Number)

	byNumber, err := f.svc.ListTables(ctx, storeID, "1")
	require.NoError(t, err)
	assert.Len(t, byNumber, 2)
}

func TestGetTableAndDeactivate(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	ctx := context.Background()
	s := f.open(t, 2)

	got, err := f.svc.GetTable(ctx, storeID, f.table.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentSale)
	assert.Equal(t, s.ID, got.CurrentSale.ID)

	err = f.svc.DeactivateTable(ctx, storeID, f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = f.svc.CloseSale(ctx, CloseSaleInput{StoreID: storeID, SaleID: s.ID, PaymentType: "pix"})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeactivateTable(ctx, storeID, f.table.ID))

	_, err = f.svc.GetTable(ctx, storeID, f.table.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	tables, err := f.svc.ListTables(ctx, storeID, "")
	require.NoError(t, err)
	assert.Empty(t, tables)

	// o número fica disponível após a desativação
	_, err = f.svc.CreateTable(ctx, CreateTableInput{StoreID: storeID, Number: 1, Capacity: 4})
	assert.NoError(t, err)
}
