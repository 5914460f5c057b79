package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// Erros do domínio de mesas. São ponteiros fixos para permitir errors.Is
// tanto contra o erro específico quanto contra a categoria.
var (
	ErrEmptyStoreID    error = &apperror.ValidationError{Field: "store_id", Message: "ID da loja não pode ser vazio"}
	ErrStaleVersion    error = &apperror.StateConflictError{Entity: "mesa", Message: "mesa foi alterada por outra operação"}
	ErrDuplicateNumber error = &apperror.StateConflictError{Entity: "mesa", Message: "já existe uma mesa ativa com este número na loja"}
)

// Status representa o estado da mesa
type Status string

const (
	StatusFree            Status = "free"             // Livre
	StatusOccupied        Status = "occupied"         // Ocupada
	StatusAwaitingPayment Status = "awaiting_payment" // Aguardando conta
	StatusCleaning        Status = "cleaning"         // Limpeza
)

// ParseStatus valida um status textual
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusFree, StatusOccupied, StatusAwaitingPayment, StatusCleaning:
		return st, nil
	default:
		return "", apperror.Validation("status", "status de mesa desconhecido %q", s)
	}
}

// Label retorna o rótulo exibido no PDV
func (s Status) Label() string {
	switch s {
	case StatusFree:
		return "Livre"
	case StatusOccupied:
		return "Ocupada"
	case StatusAwaitingPayment:
		return "Aguardando Conta"
	case StatusCleaning:
		return "Limpeza"
	default:
		return string(s)
	}
}

// Table representa uma mesa física de uma loja
type Table struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"store_id"`
	Number        int       `json:"number"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	Location      string    `json:"location"`
	Status        Status    `json:"status"`
	CurrentSaleID string    `json:"current_sale_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTable cria uma nova mesa livre
func NewTable(storeID string, number int, name string, capacity int, location string) (*Table, error) {
	if storeID == "" {
		return nil, ErrEmptyStoreID
	}
	if number <= 0 {
		return nil, apperror.Validation("number", "número da mesa deve ser positivo")
	}
	if capacity <= 0 {
		return nil, apperror.Validation("capacity", "capacidade deve ser positiva")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Mesa " + strconv.Itoa(number)
	}

	now := time.Now()
	return &Table{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Number:    number,
		Name:      name,
		Capacity:  capacity,
		Location:  strings.TrimSpace(location),
		Status:    StatusFree,
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasSale informa se há uma venda vinculada
func (t *Table) HasSale() bool {
	return t.CurrentSaleID != ""
}

// Deactivate desativa a mesa (exclusão lógica). Mesas com venda vinculada
// não podem ser desativadas.
func (t *Table) Deactivate() error {
	if t.HasSale() {
		return apperror.Conflict("mesa", t.ID, "mesa possui venda aberta")
	}
	t.IsActive = false
	t.UpdatedAt = time.Now()
	return nil
}

// Matches verifica se a mesa atende ao termo de busca (nome, local ou número)
func (t *Table) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Location), term) ||
		strings.Contains(strconv.Itoa(t.Number), term)
}

// Clone retorna uma cópia da mesa
func (t *Table) Clone() *Table {
	c := *t
	return &c
}
