package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

const tableColumns = `t.id::text, t.store_id, t.number, t.name, t.capacity, t.location, t.status,
	COALESCE(t.current_sale_id::text, ''), t.is_active, t.version, t.created_at, t.updated_at`

// TableRepository implementa a interface table.Repository
type TableRepository struct {
	db Querier
}

// NewTableRepository cria uma nova instância de TableRepository
func NewTableRepository(db Querier) table.Repository {
	return &TableRepository{db: db}
}

// Create implementa table.Repository.Create
func (r *TableRepository) Create(ctx context.Context, t *table.Table) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO restaurant_tables (
			id, store_id, number, name, capacity, location, status,
			current_sale_id, is_active, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.StoreID, t.Number, t.Name, t.Capacity, t.Location, string(t.Status),
		nullIfEmpty(t.CurrentSaleID), t.IsActive, t.Version, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return table.ErrDuplicateNumber
		case pgForeignKeyViolation:
			return apperror.NotFound("loja", t.StoreID)
		}
		return fmt.Errorf("erro ao inserir mesa: %w", err)
	}
	return nil
}

// FindByID implementa table.Repository.FindByID
func (r *TableRepository) FindByID(ctx context.Context, id string) (*table.Table, error) {
	if !isUUID(id) {
		return nil, apperror.NotFound("mesa", id)
	}
	row := r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM restaurant_tables t WHERE t.id = $1`, id)
	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("mesa", id)
		}
		return nil, fmt.Errorf("erro ao buscar mesa: %w", err)
	}
	return t, nil
}

// FetchByStore implementa table.Repository.FetchByStore
func (r *TableRepository) FetchByStore(ctx context.Context, storeID string) ([]table.WithSale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tableColumns+`,
			s.id::text, s.customer_name, s.customer_count, s.total_cents, s.opened_at
		FROM restaurant_tables t
		LEFT JOIN table_sales s ON s.id = t.current_sale_id AND s.status = 'open'
		WHERE t.store_id = $1 AND t.is_active
		ORDER BY t.number`,
		storeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar mesas: %w", err)
	}
	defer rows.Close()

	var result []table.WithSale
	for rows.Next() {
		var (
			t            table.Table
			status       string
			saleID       *string
			customerName *string
			count        *int
			totalCents   *int64
			openedAt     *time.Time
		)
		if err := rows.Scan(
			&t.ID, &t.StoreID, &t.Number, &t.Name, &t.Capacity, &t.Location, &status,
			&t.CurrentSaleID, &t.IsActive, &t.Version, &t.CreatedAt, &t.UpdatedAt,
			&saleID, &customerName, &count, &totalCents, &openedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler mesa: %w", err)
		}
		t.Status = table.Status(status)

		ws := table.WithSale{Table: t}
		if saleID != nil {
			ws.CurrentSale = &table.CurrentSale{ID: *saleID}
			if customerName != nil {
				ws.CurrentSale.CustomerName = *customerName
			}
			if count != nil {
				ws.CurrentSale.CustomerCount = *count
			}
			if totalCents != nil {
				ws.CurrentSale.TotalAmount = money.FromCents(*totalCents)
			}
			if openedAt != nil {
				ws.CurrentSale.OpenedAt = *openedAt
			}
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar mesas: %w", err)
	}
	return result, nil
}

// Update implementa table.Repository.Update com compare-and-swap na versão
func (r *TableRepository) Update(ctx context.Context, t *table.Table, expectedVersion int64) (*table.Table, error) {
	if !isUUID(t.ID) {
		return nil, apperror.NotFound("mesa", t.ID)
	}
	row := r.db.QueryRow(ctx,
		`UPDATE restaurant_tables t SET
			number = $3, name = $4, capacity = $5, location = $6, status = $7,
			current_sale_id = $8, is_active = $9, version = t.version + 1, updated_at = $10
		WHERE t.id = $1 AND t.version = $2
		RETURNING `+tableColumns,
		t.ID, expectedVersion, t.Number, t.Name, t.Capacity, t.Location, string(t.Status),
		nullIfEmpty(t.CurrentSaleID), t.IsActive, time.Now())

	updated, err := scanTable(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return nil, table.ErrDuplicateNumber
		}
		return nil, fmt.Errorf("erro ao atualizar mesa: %w", err)
	}

	// nenhuma linha: a mesa não existe ou a versão mudou
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM restaurant_tables WHERE id = $1)`, t.ID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("erro ao verificar mesa: %w", err)
	}
	if !exists {
		return nil, apperror.NotFound("mesa", t.ID)
	}
	return nil, table.ErrStaleVersion
}

func scanTable(row pgx.Row) (*table.Table, error) {
	var t table.Table
	var status string
	if err := row.Scan(
		&t.ID, &t.StoreID, &t.Number, &t.Name, &t.Capacity, &t.Location, &status,
		&t.CurrentSaleID, &t.IsActive, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = table.Status(status)
	return &t, nil
}
