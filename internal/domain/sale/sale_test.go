package sale

import (
	"testing"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, code string, pricing Pricing, discount money.Money) LineItem {
	t.Helper()
	item, err := NewLineItem("venda-1", code, code, pricing, discount, "")
	require.NoError(t, err)
	return *item
}

func TestRecompute(t *testing.T) {
	items := []LineItem{
		mustItem(t, "ACAI300", ByQuantity(2, money.MustParse("15.90")), 0),
		mustItem(t, "ACAI500", ByQuantity(1, money.MustParse("22.90")), 0),
	}

	totals := Recompute(items, 0)
	assert.Equal(t, money.MustParse("54.70"), totals.Subtotal)
	assert.Equal(t, money.MustParse("54.70"), totals.Total)

	discounted := Recompute(items, money.MustParse("4.70"))
	assert.Equal(t, money.MustParse("50.00"), discounted.Total)

	clamped := Recompute(items, money.MustParse("100.00"))
	assert.Equal(t, money.Zero, clamped.Total)
	assert.Equal(t, money.MustParse("54.70"), clamped.Subtotal)

	assert.Equal(t, Totals{}, Recompute(nil, 0))
}

func TestChangeDue(t *testing.T) {
	change := ChangeDue(money.MustParse("54.70"), money.MustParse("60.00"))
	assert.Equal(t, money.MustParse("5.30"), change.Amount)
	assert.False(t, change.Shortfall)

	short := ChangeDue(money.MustParse("54.70"), money.MustParse("50.00"))
	assert.True(t, short.Shortfall)
	assert.Equal(t, money.Zero, short.Amount)
	assert.Equal(t, money.MustParse("4.70"), short.Missing)

	exact := ChangeDue(money.MustParse("54.70"), money.MustParse("54.70"))
	assert.Equal(t, money.Zero, exact.Amount)
	assert.False(t, exact.Shortfall)
}

func TestWeighedSubtotal(t *testing.T) {
	// 0,350 kg a R$ 0,0599/g = 350 × 0,0599 = 20,965 -> 20,97
	item := mustItem(t, "ACAIKG", ByWeight(decimal.RequireFromString("0.350"), decimal.RequireFromString("0.0599")), 0)

	assert.True(t, item.IsWeighed())
	assert.Equal(t, money.MustParse("20.97"), item.Subtotal)
}

func TestLineItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		pricing  Pricing
		discount money.Money
	}{
		{"sem quantidade", ByQuantity(0, 100), 0},
		{"quantidade negativa", ByQuantity(-1, 100), 0},
		{"preço negativo", ByQuantity(1, -100), 0},
		{"dois modos", Pricing{Quantity: 1, UnitPrice: 100, WeightKg: decimal.NewFromInt(1)}, 0},
		{"peso zero", ByWeight(decimal.Zero, decimal.RequireFromString("0.05")), 0},
		{"desconto maior que o item", ByQuantity(1, 100), 101},
		{"desconto negativo", ByQuantity(1, 100), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLineItem("venda-1", "X", "X", tt.pricing, tt.discount, "")
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}

	_, err := NewLineItem("venda-1", " ", "X", ByQuantity(1, 100), 0, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLineItemSetQuantity(t *testing.T) {
	item := mustItem(t, "ACAI300", ByQuantity(3, money.MustParse("15.90")), money.MustParse("40.00"))

	require.NoError(t, item.SetQuantity(1))
	assert.Equal(t, money.MustParse("15.90"), item.DiscountAmount)
	assert.Equal(t, money.Zero, item.Subtotal)
	assert.True(t, item.IsConsistent())

	assert.ErrorIs(t, item.SetQuantity(0), apperror.ErrValidation)
}

func TestVerifyDetectsDrift(t *testing.T) {
	items := []LineItem{mustItem(t, "ACAI300", ByQuantity(2, money.MustParse("15.90")), 0)}
	s := NewSale("loja", "mesa", "Ana", "", 2)

	expected, drifted := Verify(s, items)
	assert.True(t, drifted)

	s.ApplyTotals(expected)
	_, drifted = Verify(s, items)
	assert.False(t, drifted)
}

func TestCloseMakesSaleImmutable(t *testing.T) {
	s := NewSale("loja", "mesa", "Ana", "João", 2)
	require.NoError(t, s.Close(PaymentPix, 0, 0, ""))

	assert.NotNil(t, s.ClosedAt)
	assert.ErrorIs(t, s.EnsureOpen(), apperror.ErrStateConflict)
	assert.ErrorIs(t, s.Close(PaymentCash, 0, 0, ""), apperror.ErrStateConflict)
}

func TestParsePaymentType(t *testing.T) {
	p, err := ParsePaymentType(" Credit_Card ")
	require.NoError(t, err)
	assert.Equal(t, PaymentCreditCard, p)

	_, err = ParsePaymentType("")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = ParsePaymentType("cheque")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPricingRejectsOverflowingQuantity(t *testing.T) {
	tests := []struct {
		name    string
		pricing Pricing
	}{
		{"acima do limite de quantidade", ByQuantity(MaxQuantity+1, money.FromCents(4))},
		{"bruto estoura int64", ByQuantity(MaxQuantity, money.FromCents(1<<40))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLineItem("venda-1", "A", "A", tt.pricing, 0, "")
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}

	item, err := NewLineItem("venda-1", "A", "A", ByQuantity(MaxQuantity, money.FromCents(4)), 0, "")
	require.NoError(t, err)
	assert.Equal(t, money.FromCents(4*MaxQuantity), item.Subtotal)
}

func TestLineItemSetQuantityKeepsSubtotalWhenRejected(t *testing.T) {
	item := mustItem(t, "A", ByQuantity(2, money.FromCents(1<<40)), 0)

	err := item.SetQuantity(MaxQuantity)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.IsConsistent())
}

func TestWeighedPricingPrecision(t *testing.T) {
	tests := []struct {
		name    string
		weight  string
		perGram string
		wantErr bool
	}{
		{"três casas de peso", "0.350", "0.05", false},
		{"zeros à direita não contam", "0.35000", "0.050000", false},
		{"quatro casas de peso", "0.3504", "0.05", true},
		{"sete casas no preço por grama", "0.350", "0.0500001", true},
		{"peso fora da coluna", "10000000", "0.01", true},
		{"preço por grama fora da coluna", "1", "1000000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ByWeight(decimal.RequireFromString(tt.weight), decimal.RequireFromString(tt.perGram))
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, money.MustParse("17.50"), p.Gross())
		})
	}
}
