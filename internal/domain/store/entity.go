package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyName é retornado ao criar loja sem nome
var ErrEmptyName = errors.New("nome da loja não pode ser vazio")

// Status representa o estado da loja
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Store representa uma loja (unidade) que possui mesas próprias
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // Código curto exibido no PDV, ex.: "loja1"
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStore cria uma nova loja ativa
func NewStore(name, code string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Store{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      strings.TrimSpace(code),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se a loja está ativa
func (s *Store) IsActive() bool {
	return s.Status == StatusActive
}
