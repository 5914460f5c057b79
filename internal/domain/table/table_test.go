package table

import (
	"testing"

	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFreeTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable("loja-1", 7, "", 4, "Área interna")
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {
	tbl := newFreeTable(t)
	assert.Equal(t, "Mesa 7", tbl.Name)
	assert.Equal(t, StatusFree, tbl.Status)
	assert.True(t, tbl.IsActive)

	_, err := NewTable("loja-1", 0, "x", 4, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = NewTable("loja-1", 1, "x", 0, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = NewTable("", 1, "x", 2, "")
	assert.ErrorIs(t, err, ErrEmptyStoreID)
}

func TestFullCycle(t *testing.T) {
	tbl := newFreeTable(t)

	require.NoError(t, tbl.Open("venda-1"))
	assert.Equal(t, StatusOccupied, tbl.Status)
	assert.Equal(t, "venda-1", tbl.CurrentSaleID)

	require.NoError(t, tbl.RequestBill())
	assert.Equal(t, StatusAwaitingPayment, tbl.Status)
	assert.Equal(t, "venda-1", tbl.CurrentSaleID)

	require.NoError(t, tbl.Release("venda-1", StatusCleaning))
	assert.Equal(t, StatusCleaning, tbl.Status)
	assert.False(t, tbl.HasSale())

	require.NoError(t, tbl.MarkFree())
	assert.Equal(t, StatusFree, tbl.Status)
}

func TestOpenRejectsDoubleBooking(t *testing.T) {
	tbl := newFreeTable(t)
	require.NoError(t, tbl.Open("venda-1"))
	before := *tbl

	err := tbl.Open("venda-2")

	assert.ErrorIs(t, err, apperror.ErrStateConflict)
	assert.Equal(t, before, *tbl)
}

func TestOpenRejectsBoundSaleEvenWhenFree(t *testing.T) {
	tbl := newFreeTable(t)
	tbl.CurrentSaleID = "venda-fantasma"

	assert.ErrorIs(t, tbl.Open("venda-1"), apperror.ErrStateConflict)
	assert.Equal(t, "venda-fantasma", tbl.CurrentSaleID)
}

func TestInvalidTransitionsLeaveTableUntouched(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Table)
		act   func(*Table) error
	}{
		{"conta com mesa livre", func(*Table) {}, (*Table).RequestBill},
		{"conta duas vezes", func(tb *Table) { _ = tb.Open("v"); _ = tb.RequestBill() }, (*Table).RequestBill},
		{"fechar mesa livre", func(*Table) {}, func(tb *Table) error { return tb.Release("v", StatusFree) }},
		{"fechar outra venda", func(tb *Table) { _ = tb.Open("v") }, func(tb *Table) error { return tb.Release("outra", StatusFree) }},
		{"limpar com venda", func(tb *Table) { _ = tb.Open("v") }, (*Table).MarkClean},
		{"liberar com venda", func(tb *Table) { _ = tb.Open("v") }, (*Table).MarkFree},
		{"abrir em limpeza", func(tb *Table) { _ = tb.MarkClean() }, func(tb *Table) error { return tb.Open("v2") }},
		{"abrir desativada", func(tb *Table) { tb.IsActive = false }, func(tb *Table) error { return tb.Open("v2") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newFreeTable(t)
			tt.setup(tbl)
			before := *tbl

			err := tt.act(tbl)

			assert.ErrorIs(t, err, apperror.ErrStateConflict)
			assert.Equal(t, before, *tbl)
		})
	}
}

func TestReleaseRejectsUnknownNextStatus(t *testing.T) {
	tbl := newFreeTable(t)
	require.NoError(t, tbl.Open("v"))

	err := tbl.Release("v", StatusOccupied)

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "v", tbl.CurrentSaleID)
}

func TestAdministrativeTransitionsFromAnyStatus(t *testing.T) {
	for _, st := range []Status{StatusFree, StatusCleaning, StatusAwaitingPayment} {
		tbl := newFreeTable(t)
		tbl.Status = st
		require.NoError(t, tbl.MarkClean())
		assert.Equal(t, StatusCleaning, tbl.Status)
		require.NoError(t, tbl.MarkFree())
		assert.Equal(t, StatusFree, tbl.Status)
	}
}

func TestMatches(t *testing.T) {
	tbl := newFreeTable(t)
	tbl.Name = "Varanda 12"
	tbl.Number = 12

	assert.True(t, tbl.Matches(""))
	assert.True(t, tbl.Matches("varanda"))
	assert.True(t, tbl.Matches("1"))
	assert.True(t, tbl.Matches("INTERNA"))
	assert.False(t, tbl.Matches("salão"))
}

func TestDeactivate(t *testing.T) {
	tbl := newFreeTable(t)
	require.NoError(t, tbl.Open("v"))
	assert.ErrorIs(t, tbl.Deactivate(), apperror.ErrStateConflict)

	require.NoError(t, tbl.Release("v", StatusFree))
	require.NoError(t, tbl.Deactivate())
	assert.False(t, tbl.IsActive)
}

func TestParseStatusAndLabel(t *testing.T) {
	st, err := ParseStatus("AWAITING_PAYMENT")
	require.NoError(t, err)
	assert.Equal(t, "Aguardando Conta", st.Label())

	_, err = ParseStatus("reservada")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
