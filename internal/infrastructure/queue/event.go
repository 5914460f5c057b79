// Package queue publica os eventos do ciclo de vida das vendas de mesa no
// RabbitMQ para consumidores externos (cozinha, relatórios, fiscal).
package queue

import "time"

// QueueName é a fila durável que recebe os eventos das mesas
const QueueName = "mesas.eventos"

// Tipos de evento
const (
	EventSaleOpened = "mesa.venda.aberta"
	EventSaleClosed = "mesa.venda.fechada"
)

// SaleEvent é publicado quando uma venda de mesa é aberta ou fechada. Os
// valores seguem em centavos para o consumidor não depender do banco.
type SaleEvent struct {
	Type          string    `json:"type"`
	SaleID        string    `json:"sale_id"`
	StoreID       string    `json:"store_id"`
	TableID       string    `json:"table_id"`
	TableNumber   int       `json:"table_number"`
	CustomerCount int       `json:"customer_count"`
	SubtotalCents int64     `json:"subtotal_cents"`
	DiscountCents int64     `json:"discount_cents"`
	TotalCents    int64     `json:"total_cents"`
	ChangeCents   int64     `json:"change_cents,omitempty"`
	PaymentType   string    `json:"payment_type,omitempty"`
	TableStatus   string    `json:"table_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
