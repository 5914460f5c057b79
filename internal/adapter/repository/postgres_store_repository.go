package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

// StoreRepository implementa a interface store.Repository
type StoreRepository struct {
	db Querier
}

// NewStoreRepository cria uma nova instância de StoreRepository
func NewStoreRepository(db Querier) store.Repository {
	return &StoreRepository{db: db}
}

// FindByID implementa store.Repository.FindByID
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*store.Store, error) {
	var s store.Store
	var status string
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, status, created_at, updated_at FROM stores WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Code, &status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("loja", id)
		}
		return nil, fmt.Errorf("erro ao buscar loja: %w", err)
	}
	s.Status = store.Status(status)
	return &s, nil
}

// List implementa store.Repository.List
func (r *StoreRepository) List(ctx context.Context) ([]*store.Store, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, status, created_at, updated_at FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lojas: %w", err)
	}
	defer rows.Close()

	var result []*store.Store
	for rows.Next() {
		var s store.Store
		var status string
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler loja: %w", err)
		}
		s.Status = store.Status(status)
		result = append(result, &s)
	}
	return result, rows.Err()
}
