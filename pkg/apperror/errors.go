// Package apperror define a taxonomia de erros compartilhada pelo núcleo de
// vendas de mesa. Controllers usam errors.As/errors.Is para decidir o status
// HTTP de cada falha.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinelas por categoria, úteis com errors.Is
var (
	ErrValidation    = errors.New("dados inválidos")
	ErrStateConflict = errors.New("conflito de estado")
	ErrNotFound      = errors.New("registro não encontrado")
	ErrPersistence   = errors.New("falha de persistência")
)

// ValidationError indica entrada inválida detectada antes de qualquer mutação
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StateConflictError indica transição ilegal, reserva dupla ou versão desatualizada
type StateConflictError struct {
	Entity  string
	ID      string
	Message string
}

func (e *StateConflictError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Message)
}

// Is permite errors.Is(err, ErrStateConflict)
func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}

// NotFoundError indica que a entidade referenciada não existe
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s não encontrado(a)", e.Entity, e.ID)
}

// Is permite errors.Is(err, ErrNotFound)
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError embrulha falhas de I/O do armazenamento externo.
// O núcleo não tenta novamente; Op identifica a chamada para o chamador decidir.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("falha de persistência em %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is permite errors.Is(err, ErrPersistence)
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Validation cria um ValidationError
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Conflict cria um StateConflictError
func Conflict(entity, id, format string, args ...interface{}) error {
	return &StateConflictError{Entity: entity, ID: id, Message: fmt.Sprintf(format, args...)}
}

// NotFound cria um NotFoundError
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Persistence embrulha err como PersistenceError, preservando erros que já
// pertencem à taxonomia (validação, conflito, não encontrado).
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsClassified informa se err já pertence a uma das categorias conhecidas
func IsClassified(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrStateConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPersistence)
}
