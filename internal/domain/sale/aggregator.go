package sale

import (
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
)

// Totals são os valores agregados de uma venda. São sempre derivados dos
// itens e podem ser recalculados a qualquer momento.
type Totals struct {
	Subtotal money.Money `json:"subtotal"`
	Discount money.Money `json:"discount"`
	Total    money.Money `json:"total"`
}

// Change é o resultado do cálculo de troco em dinheiro
type Change struct {
	Amount    money.Money `json:"amount"`
	Shortfall bool        `json:"shortfall"` // valor entregue menor que o total
	Missing   money.Money `json:"missing"`   // quanto falta quando há shortfall
}

// Recompute soma os subtotais de todos os itens e aplica o desconto da venda.
// total = max(0, subtotal - desconto). Não guarda estado entre chamadas.
func Recompute(items []LineItem, discount money.Money) Totals {
	var subtotal money.Money
	for i := range items {
		subtotal += items[i].Subtotal
	}
	discount = discount.ClampZero()
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount).ClampZero(),
	}
}

// ChangeDue calcula o troco de um pagamento em dinheiro. Valor insuficiente
// não é erro aqui: a decisão de bloquear o fechamento é da camada de ciclo de vida.
func ChangeDue(total, tendered money.Money) Change {
	if tendered < total {
		return Change{Shortfall: true, Missing: total - tendered}
	}
	return Change{Amount: tendered - total}
}

// Verify compara os totais armazenados com os derivados dos itens.
// Retorna os totais corretos e se houve divergência.
func Verify(s *Sale, items []LineItem) (Totals, bool) {
	expected := Recompute(items, s.DiscountAmount)
	drifted := expected.Subtotal != s.Subtotal || expected.Total != s.TotalAmount
	for i := range items {
		if !items[i].IsConsistent() {
			drifted = true
		}
	}
	return expected, drifted
}
