package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// Status representa o estado da venda. É uma enumeração própria, distinta do
// status da mesa; as duas só se ligam pelo current_sale_id da mesa.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// PaymentType representa a forma de pagamento informada no fechamento
type PaymentType string

const (
	PaymentCash       PaymentType = "cash"        // Dinheiro
	PaymentPix        PaymentType = "pix"         // PIX
	PaymentCreditCard PaymentType = "credit_card" // Cartão de crédito
	PaymentDebitCard  PaymentType = "debit_card"  // Cartão de débito
	PaymentVoucher    PaymentType = "voucher"     // Vale-refeição
	PaymentMixed      PaymentType = "mixed"       // Misto
)

// ParsePaymentType valida a forma de pagamento
func ParsePaymentType(s string) (PaymentType, error) {
	p := PaymentType(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PaymentCash, PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentVoucher, PaymentMixed:
		return p, nil
	case "":
		return "", apperror.Validation("payment_type", "forma de pagamento é obrigatória")
	default:
		return "", apperror.Validation("payment_type", "forma de pagamento desconhecida %q", s)
	}
}

// Sale representa a conta de uma mesa durante uma visita
type Sale struct {
	ID             string      `json:"id"`
	StoreID        string      `json:"store_id"`
	TableID        string      `json:"table_id"`
	OperatorName   string      `json:"operator_name"`
	CustomerName   string      `json:"customer_name"`
	CustomerCount  int         `json:"customer_count"`
	Subtotal       money.Money `json:"subtotal"`
	DiscountAmount money.Money `json:"discount_amount"`
	TotalAmount    money.Money `json:"total_amount"`
	Status         Status      `json:"status"`
	PaymentType    PaymentType `json:"payment_type,omitempty"`
	TenderedAmount money.Money `json:"tendered_amount"` // "troco para"
	ChangeAmount   money.Money `json:"change_amount"`
	Notes          string      `json:"notes"`
	OpenedAt       time.Time   `json:"opened_at"`
	ClosedAt       *time.Time  `json:"closed_at,omitempty"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Items          []LineItem  `json:"items,omitempty"`
}

// NewSale cria uma venda aberta com totais zerados
func NewSale(storeID, tableID, operatorName, customerName string, customerCount int) *Sale {
	now := time.Now()
	return &Sale{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		TableID:       tableID,
		OperatorName:  strings.TrimSpace(operatorName),
		CustomerName:  strings.TrimSpace(customerName),
		CustomerCount: customerCount,
		Status:        StatusOpen,
		OpenedAt:      now,
		UpdatedAt:     now,
	}
}

// IsOpen verifica se a venda ainda aceita itens
func (s *Sale) IsOpen() bool {
	return s.Status == StatusOpen
}

// EnsureOpen retorna um conflito quando a venda já foi fechada
func (s *Sale) EnsureOpen() error {
	if !s.IsOpen() {
		return apperror.Conflict("venda", s.ID, "venda fechada não pode ser alterada")
	}
	return nil
}

// ApplyTotals grava os totais recalculados
func (s *Sale) ApplyTotals(t Totals) {
	s.Subtotal = t.Subtotal
	s.DiscountAmount = t.Discount
	s.TotalAmount = t.Total
	s.UpdatedAt = time.Now()
}

// Close encerra a venda. Depois disso ela é imutável.
func (s *Sale) Close(payment PaymentType, tendered, change money.Money, notes string) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}
	now := time.Now()
	s.Status = StatusClosed
	s.PaymentType = payment
	s.TenderedAmount = tendered
	s.ChangeAmount = change
	if notes != "" {
		s.Notes = notes
	}
	s.ClosedAt = &now
	s.UpdatedAt = now
	return nil
}

// Clone retorna uma cópia independente da venda
func (s *Sale) Clone() *Sale {
	c := *s
	if s.ClosedAt != nil {
		closedAt := *s.ClosedAt
		c.ClosedAt = &closedAt
	}
	if s.Items != nil {
		c.Items = append([]LineItem(nil), s.Items...)
	}
	return &c
}
