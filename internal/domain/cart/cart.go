// Package cart implementa a área de preparação (carrinho) de uma sessão de
// atendimento. O carrinho vive apenas em memória, pertence a uma única sessão
// e não é sincronizado.
package cart

import (
	"strings"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Entry é um item candidato ainda não confirmado na venda
type Entry struct {
	ProductCode string
	ProductName string
	sale.Pricing
	DiscountAmount money.Money
	Subtotal       money.Money
	Notes          string
}

func (e *Entry) recompute() {
	e.Subtotal = (e.Gross() - e.DiscountAmount).ClampZero()
}

// Cart guarda no máximo uma entrada por código de produto, na ordem de inclusão
type Cart struct {
	entries []*Entry
}

// New cria um carrinho vazio
func New() *Cart {
	return &Cart{}
}

// find localiza a entrada pelo código, ignorando espaços nas pontas como Add
func (c *Cart) find(code string) (int, *Entry) {
	code = strings.TrimSpace(code)
	for i, e := range c.entries {
		if e.ProductCode == code {
			return i, e
		}
	}
	return -1, nil
}

// Add inclui uma unidade do produto. Se o código já existe, incrementa a
// quantidade mantendo o preço unitário da entrada original.
func (c *Cart) Add(productCode, productName string, unitPrice money.Money) error {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return apperror.Validation("product_code", "código do produto é obrigatório")
	}
	if unitPrice.IsNegative() {
		return apperror.Validation("unit_price", "preço unitário não pode ser negativo")
	}

	if _, e := c.find(code); e != nil {
		if e.IsWeighed() {
			return apperror.Validation("product_code", "produto %s já está no carrinho como item a peso", code)
		}
		if err := sale.ByQuantity(e.Quantity+1, e.UnitPrice).Validate(); err != nil {
			return err
		}
		e.Quantity++
		e.recompute()
		return nil
	}

	e := &Entry{
		ProductCode: code,
		ProductName: strings.TrimSpace(productName),
		Pricing:     sale.ByQuantity(1, unitPrice),
	}
	e.recompute()
	c.entries = append(c.entries, e)
	return nil
}

// AddWeighed inclui um produto vendido a peso. Pesagens repetidas do mesmo
// código se somam.
func (c *Cart) AddWeighed(productCode, productName string, weightKg, pricePerGram decimal.Decimal) error {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return apperror.Validation("product_code", "código do produto é obrigatório")
	}
	pricing := sale.ByWeight(weightKg, pricePerGram)
	if err := pricing.Validate(); err != nil {
		return err
	}

	if _, e := c.find(code); e != nil {
		if !e.IsWeighed() {
			return apperror.Validation("product_code", "produto %s já está no carrinho por unidade", code)
		}
		total := sale.ByWeight(e.WeightKg.Add(weightKg), e.PricePerGram)
		if err := total.Validate(); err != nil {
			return err
		}
		e.WeightKg = total.WeightKg
		e.recompute()
		return nil
	}

	e := &Entry{
		ProductCode: code,
		ProductName: strings.TrimSpace(productName),
		Pricing:     pricing,
	}
	e.recompute()
	c.entries = append(c.entries, e)
	return nil
}

// SetQuantity define a quantidade de uma entrada. Zero remove a entrada,
// negativo é rejeitado e código ausente não altera nada.
func (c *Cart) SetQuantity(productCode string, quantity int) error {
	if quantity < 0 {
		return apperror.Validation("quantity", "quantidade não pode ser negativa")
	}
	_, e := c.find(productCode)
	if e == nil {
		return nil
	}
	if quantity == 0 {
		c.Remove(productCode)
		return nil
	}
	if e.IsWeighed() {
		return apperror.Validation("quantity", "produto %s é vendido a peso", e.ProductCode)
	}
	if err := sale.ByQuantity(quantity, e.UnitPrice).Validate(); err != nil {
		return err
	}
	e.Quantity = quantity
	if e.DiscountAmount > e.Gross() {
		e.DiscountAmount = e.Gross()
	}
	e.recompute()
	return nil
}

// SetDiscount aplica um desconto em reais à entrada
func (c *Cart) SetDiscount(productCode string, discount money.Money) error {
	_, e := c.find(productCode)
	if e == nil {
		return nil
	}
	if discount.IsNegative() || discount > e.Gross() {
		return apperror.Validation("discount_amount", "desconto deve estar entre 0 e %s", e.Gross())
	}
	e.DiscountAmount = discount
	e.recompute()
	return nil
}

// SetNotes grava observações da entrada
func (c *Cart) SetNotes(productCode, notes string) {
	if _, e := c.find(productCode); e != nil {
		e.Notes = strings.TrimSpace(notes)
	}
}

// Remove exclui a entrada, se existir
func (c *Cart) Remove(productCode string) {
	i, e := c.find(productCode)
	if e == nil {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

// Clear esvazia o carrinho
func (c *Cart) Clear() {
	c.entries = nil
}

// Total soma os subtotais atuais. Nada é mantido em cache.
func (c *Cart) Total() money.Money {
	var total money.Money
	for _, e := range c.entries {
		total += e.Subtotal
	}
	return total
}

// Entries retorna uma cópia das entradas na ordem de inclusão
func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

// Len retorna o número de entradas
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty informa se o carrinho não tem entradas
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// LineItems converte as entradas em itens de venda validados
func (c *Cart) LineItems(saleID string) ([]*sale.LineItem, error) {
	items := make([]*sale.LineItem, 0, len(c.entries))
	for _, e := range c.entries {
		item, err := sale.NewLineItem(saleID, e.ProductCode, e.ProductName, e.Pricing, e.DiscountAmount, e.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
