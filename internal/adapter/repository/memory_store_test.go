package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	pkgstore "github.com/hugohenrick/pdv-mesas/pkg/store"
)

func newStoreWithTable(t *testing.T) (*MemoryStore, *table.Table) {
	t.Helper()
	m := NewMemoryStore()
	m.AddStore(&store.Store{ID: "loja-1", Name: "Loja 1", Status: store.StatusActive})
	tbl, err := table.NewTable("loja-1", 1, "", 4, "Salão")
	require.NoError(t, err)
	require.NoError(t, m.Tables().Create(context.Background(), tbl))
	return m, tbl
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	m, tbl := newStoreWithTable(t)
	ctx := context.Background()

	first, err := m.Tables().FindByID(ctx, tbl.ID)
	require.NoError(t, err)
	second, err := m.Tables().FindByID(ctx, tbl.ID)
	require.NoError(t, err)

	require.NoError(t, first.MarkClean())
	updated, err := m.Tables().Update(ctx, first, first.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	require.NoError(t, second.MarkFree())
	_, err = m.Tables().Update(ctx, second, second.Version)
	assert.ErrorIs(t, err, table.ErrStaleVersion)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)
}

func TestCreateRejectsDuplicateActiveNumber(t *testing.T) {
	m, _ := newStoreWithTable(t)
	dup, err := table.NewTable("loja-1", 1, "Outra", 2, "")
	require.NoError(t, err)

	err = m.Tables().Create(context.Background(), dup)
	assert.ErrorIs(t, err, table.ErrDuplicateNumber)

	other, err := table.NewTable("loja-desconhecida", 1, "", 2, "")
	require.NoError(t, err)
	err = m.Tables().Create(context.Background(), other)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWithinTxDiscardsOnError(t *testing.T) {
	m, tbl := newStoreWithTable(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.WithinTx(ctx, func(tables table.Repository, sales sale.Repository) error {
		s := sale.NewSale("loja-1", tbl.ID, "", "", 2)
		if _, err := sales.Create(ctx, s); err != nil {
			return err
		}
		current, err := tables.FindByID(ctx, tbl.ID)
		if err != nil {
			return err
		}
		require.NoError(t, current.Open(s.ID))
		if _, err := tables.Update(ctx, current, current.Version); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := m.Tables().FindByID(ctx, tbl.ID)
	require.NoError(t, err)
	assert.Equal(t, table.StatusFree, after.Status)
	assert.Empty(t, after.CurrentSaleID)

	open, err := m.Sales().ListOpen(ctx, "loja-1")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestFailOnInjectsOnce(t *testing.T) {
	m, tbl := newStoreWithTable(t)
	ctx := context.Background()
	m.FailOn(OpTableUpdate, errors.New("disco cheio"))

	current, err := m.Tables().FindByID(ctx, tbl.ID)
	require.NoError(t, err)
	_, err = m.Tables().Update(ctx, current, current.Version)
	assert.EqualError(t, err, "disco cheio")

	_, err = m.Tables().Update(ctx, current, current.Version)
	assert.NoError(t, err)
}

func TestClosedSaleRejectsWrites(t *testing.T) {
	m, tbl := newStoreWithTable(t)
	ctx := context.Background()

	s := sale.NewSale("loja-1", tbl.ID, "", "", 1)
	_, err := m.Sales().Create(ctx, s)
	require.NoError(t, err)

	require.NoError(t, s.Close(sale.PaymentPix, 0, 0, ""))
	_, err = m.Sales().Close(ctx, s)
	require.NoError(t, err)

	item, err := sale.NewLineItem(s.ID, "1", "Água", sale.ByQuantity(1, money.MustParse("4.00")), 0, "")
	require.NoError(t, err)
	_, err = m.Sales().InsertItem(ctx, s.ID, item)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	_, err = m.Sales().UpdateTotals(ctx, s.ID, sale.Totals{})
	assert.ErrorIs(t, err, apperror.ErrStateConflict)
}

func TestDemoStoreSeed(t *testing.T) {
	m := NewDemoStore()
	ctx := context.Background()

	for _, storeID := range []string{DemoStore1, DemoStore2} {
		tables, err := m.Tables().FetchByStore(ctx, storeID)
		require.NoError(t, err)
		require.Len(t, tables, 2)

		assert.Equal(t, 1, tables[0].Number)
		assert.Equal(t, table.StatusFree, tables[0].Status)
		assert.Nil(t, tables[0].CurrentSale)

		assert.Equal(t, 2, tables[1].Number)
		assert.Equal(t, table.StatusOccupied, tables[1].Status)
		require.NotNil(t, tables[1].CurrentSale)
		assert.Equal(t, "45.90", tables[1].CurrentSale.TotalAmount.String())
	}
}

func TestStoreValidator(t *testing.T) {
	m := NewMemoryStore()
	m.AddStore(&store.Store{ID: "ativa", Status: store.StatusActive})
	m.AddStore(&store.Store{ID: "inativa", Status: store.StatusInactive})
	v := NewStoreValidator(m.Stores())
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, "ativa"))
	assert.ErrorIs(t, v.Validate(ctx, "inativa"), pkgstore.ErrStoreNotActive)
	assert.ErrorIs(t, v.Validate(ctx, "nenhuma"), pkgstore.ErrStoreNotFound)
	assert.ErrorIs(t, v.Validate(ctx, ""), pkgstore.ErrStoreNotSpecified)
}
