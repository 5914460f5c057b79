package sale

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Limites de precificação, alinhados às colunas de table_sale_items
// (quantity INTEGER, weight_kg NUMERIC(10,3), price_per_gram NUMERIC(12,6))
const (
	MaxQuantity       = math.MaxInt32
	WeightScale       = 3
	PricePerGramScale = 6
)

var (
	gramsPerKg      = decimal.NewFromInt(1000)
	maxWeightKg     = decimal.New(1, 7)
	maxPricePerGram = decimal.New(1, 6)
)

// Pricing descreve como um item é precificado: por quantidade e preço
// unitário, ou por peso e preço por grama. Os dois modos são exclusivos.
type Pricing struct {
	Quantity     int             `json:"quantity,omitempty"`
	UnitPrice    money.Money     `json:"unit_price,omitempty"`
	WeightKg     decimal.Decimal `json:"weight_kg"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
}

// ByQuantity cria uma precificação por unidade
func ByQuantity(quantity int, unitPrice money.Money) Pricing {
	return Pricing{Quantity: quantity, UnitPrice: unitPrice}
}

// ByWeight cria uma precificação por peso
func ByWeight(weightKg, pricePerGram decimal.Decimal) Pricing {
	return Pricing{WeightKg: weightKg, PricePerGram: pricePerGram}
}

// IsWeighed informa se o item é vendido a peso
func (p Pricing) IsWeighed() bool {
	return p.Quantity == 0 && (!p.WeightKg.IsZero() || !p.PricePerGram.IsZero())
}

// Validate garante que exatamente um modo de precificação foi informado
func (p Pricing) Validate() error {
	weighed := !p.WeightKg.IsZero() || !p.PricePerGram.IsZero()
	switch {
	case p.Quantity < 0:
		return apperror.Validation("quantity", "quantidade não pode ser negativa")
	case p.Quantity > 0 && weighed:
		return apperror.Validation("quantity", "item não pode ter quantidade e peso ao mesmo tempo")
	case p.Quantity > MaxQuantity:
		return apperror.Validation("quantity", "quantidade máxima é %d", MaxQuantity)
	case p.Quantity > 0:
		if p.UnitPrice.IsNegative() {
			return apperror.Validation("unit_price", "preço unitário não pode ser negativo")
		}
		if _, ok := p.UnitPrice.MulChecked(p.Quantity); !ok {
			return apperror.Validation("quantity", "valor do item excede o limite (%d × %s)", p.Quantity, p.UnitPrice)
		}
		return nil
	case weighed:
		if !p.WeightKg.IsPositive() {
			return apperror.Validation("weight_kg", "peso deve ser maior que zero")
		}
		if !p.WeightKg.Equal(p.WeightKg.Round(WeightScale)) {
			return apperror.Validation("weight_kg", "peso aceita no máximo %d casas decimais", WeightScale)
		}
		if p.WeightKg.GreaterThanOrEqual(maxWeightKg) {
			return apperror.Validation("weight_kg", "peso deve ser menor que %s kg", maxWeightKg)
		}
		if p.PricePerGram.IsNegative() {
			return apperror.Validation("price_per_gram", "preço por grama não pode ser negativo")
		}
		if !p.PricePerGram.Equal(p.PricePerGram.Round(PricePerGramScale)) {
			return apperror.Validation("price_per_gram", "preço por grama aceita no máximo %d casas decimais", PricePerGramScale)
		}
		if p.PricePerGram.GreaterThanOrEqual(maxPricePerGram) {
			return apperror.Validation("price_per_gram", "preço por grama deve ser menor que %s", maxPricePerGram)
		}
		return nil
	default:
		return apperror.Validation("quantity", "quantidade deve ser maior que zero")
	}
}

// Gross calcula o valor bruto (antes do desconto) em centavos
func (p Pricing) Gross() money.Money {
	if p.IsWeighed() {
		reais := p.WeightKg.Mul(gramsPerKg).Mul(p.PricePerGram)
		return money.FromDecimal(reais)
	}
	return p.UnitPrice.Mul(p.Quantity)
}

// LineItem é um produto persistido em uma venda
type LineItem struct {
	ID             string      `json:"id"`
	SaleID         string      `json:"sale_id"`
	ProductCode    string      `json:"product_code"`
	ProductName    string      `json:"product_name"`
	Pricing
	DiscountAmount money.Money `json:"discount_amount"`
	Subtotal       money.Money `json:"subtotal"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewLineItem cria e valida um item de venda, calculando o subtotal
func NewLineItem(saleID, productCode, productName string, pricing Pricing, discount money.Money, notes string) (*LineItem, error) {
	item := &LineItem{
		ID:             uuid.New().String(),
		SaleID:         saleID,
		ProductCode:    strings.TrimSpace(productCode),
		ProductName:    strings.TrimSpace(productName),
		Pricing:        pricing,
		DiscountAmount: discount,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.Subtotal = item.ComputeSubtotal()
	return item, nil
}

// Validate verifica código, precificação e desconto
func (i *LineItem) Validate() error {
	if i.ProductCode == "" {
		return apperror.Validation("product_code", "código do produto é obrigatório")
	}
	if err := i.Pricing.Validate(); err != nil {
		return err
	}
	if i.DiscountAmount.IsNegative() {
		return apperror.Validation("discount_amount", "desconto não pode ser negativo")
	}
	if i.DiscountAmount > i.Gross() {
		return apperror.Validation("discount_amount", "desconto %s excede o valor do item %s", i.DiscountAmount, i.Gross())
	}
	return nil
}

// ComputeSubtotal deriva o subtotal de quantidade × preço (ou peso × preço
// por grama) menos o desconto. É a única forma de obter o subtotal.
func (i *LineItem) ComputeSubtotal() money.Money {
	return (i.Gross() - i.DiscountAmount).ClampZero()
}

// SetQuantity altera a quantidade de um item unitário e recalcula o subtotal
func (i *LineItem) SetQuantity(quantity int) error {
	if i.IsWeighed() {
		return apperror.Validation("quantity", "item vendido a peso não aceita quantidade")
	}
	if quantity <= 0 {
		return apperror.Validation("quantity", "quantidade deve ser maior que zero")
	}
	if err := ByQuantity(quantity, i.UnitPrice).Validate(); err != nil {
		return err
	}
	i.Quantity = quantity
	if i.DiscountAmount > i.Gross() {
		i.DiscountAmount = i.Gross()
	}
	i.Subtotal = i.ComputeSubtotal()
	return nil
}

// IsConsistent informa se o subtotal armazenado bate com o derivado
func (i *LineItem) IsConsistent() bool {
	return i.Subtotal == i.ComputeSubtotal()
}
