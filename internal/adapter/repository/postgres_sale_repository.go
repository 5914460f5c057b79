package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const saleColumns = `id::text, store_id, table_id::text, operator_name, customer_name, customer_count,
	subtotal_cents, discount_cents, total_cents, status, COALESCE(payment_type, ''),
	tendered_cents, change_cents, notes, opened_at, closed_at, updated_at`

const itemColumns = `id::text, sale_id::text, product_code, product_name, quantity, unit_price_cents,
	weight_kg::text, price_per_gram::text, discount_cents, subtotal_cents, notes, created_at`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db Querier
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db Querier) sale.Repository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO table_sales (
			id, store_id, table_id, operator_name, customer_name, customer_count,
			subtotal_cents, discount_cents, total_cents, status, notes, opened_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+saleColumns,
		s.ID, s.StoreID, s.TableID, s.OperatorName, s.CustomerName, s.CustomerCount,
		s.Subtotal.Cents(), s.DiscountAmount.Cents(), s.TotalAmount.Cents(), string(s.Status),
		s.Notes, s.OpenedAt, s.UpdatedAt)

	created, err := scanSale(row)
	if err != nil {
		switch code, constraint := pgErrorCode(err); {
		case code == pgUniqueViolation && constraint == "uq_table_sales_open_per_table":
			return nil, apperror.Conflict("mesa", s.TableID, "mesa já possui uma venda aberta")
		case code == pgForeignKeyViolation:
			return nil, apperror.NotFound("mesa", s.TableID)
		}
		return nil, fmt.Errorf("erro ao inserir venda: %w", err)
	}
	return created, nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	if !isUUID(id) {
		return nil, apperror.NotFound("venda", id)
	}
	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM table_sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("venda", id)
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}
	return s, nil
}

// ListOpen implementa sale.Repository.ListOpen
func (r *SaleRepository) ListOpen(ctx context.Context, storeID string) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM table_sales WHERE store_id = $1 AND status = 'open' ORDER BY opened_at`,
		storeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas abertas: %w", err)
	}
	defer rows.Close()

	var result []*sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}
	return result, nil
}

// ListItems implementa sale.Repository.ListItems
func (r *SaleRepository) ListItems(ctx context.Context, saleID string) ([]sale.LineItem, error) {
	if !isUUID(saleID) {
		return nil, apperror.NotFound("venda", saleID)
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM table_sale_items WHERE sale_id = $1 ORDER BY created_at, id`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens: %w", err)
	}
	defer rows.Close()

	items := []sale.LineItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens: %w", err)
	}
	return items, nil
}

// InsertItem implementa sale.Repository.InsertItem
func (r *SaleRepository) InsertItem(ctx context.Context, saleID string, item *sale.LineItem) (*sale.LineItem, error) {
	var quantity, unitPrice, weight, pricePerGram any
	if item.IsWeighed() {
		weight, pricePerGram = item.WeightKg.String(), item.PricePerGram.String()
	} else {
		quantity, unitPrice = item.Quantity, item.UnitPrice.Cents()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO table_sale_items (
			id, sale_id, product_code, product_name, quantity, unit_price_cents,
			weight_kg, price_per_gram, discount_cents, subtotal_cents, notes, created_at
		)
		SELECT $1::uuid, s.id, $3::text, $4::text, $5::int, $6::bigint, $7::text::numeric, $8::text::numeric,
			$9::bigint, $10::bigint, $11::text, $12::timestamptz
		FROM table_sales s WHERE s.id = $2 AND s.status = 'open'
		RETURNING `+itemColumns,
		item.ID, saleID, item.ProductCode, item.ProductName, quantity, unitPrice,
		weight, pricePerGram, item.DiscountAmount.Cents(), item.Subtotal.Cents(), item.Notes, item.CreatedAt)

	inserted, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.saleNotOpen(ctx, saleID)
		}
		return nil, fmt.Errorf("erro ao inserir item: %w", err)
	}
	return inserted, nil
}

// UpdateItem implementa sale.Repository.UpdateItem
func (r *SaleRepository) UpdateItem(ctx context.Context, item *sale.LineItem) error {
	var quantity any
	if !item.IsWeighed() {
		quantity = item.Quantity
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE table_sale_items SET quantity = $3, discount_cents = $4, subtotal_cents = $5, notes = $6
		WHERE id = $1 AND sale_id = $2`,
		item.ID, item.SaleID, quantity, item.DiscountAmount.Cents(), item.Subtotal.Cents(), item.Notes)
	if err != nil {
		return fmt.Errorf("erro ao atualizar item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("item", item.ID)
	}
	return nil
}

// DeleteItem implementa sale.Repository.DeleteItem
func (r *SaleRepository) DeleteItem(ctx context.Context, saleID, itemID string) error {
	if !isUUID(itemID) {
		return apperror.NotFound("item", itemID)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM table_sale_items WHERE id = $1 AND sale_id = $2`, itemID, saleID)
	if err != nil {
		return fmt.Errorf("erro ao remover item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("item", itemID)
	}
	return nil
}

// UpdateTotals implementa sale.Repository.UpdateTotals
func (r *SaleRepository) UpdateTotals(ctx context.Context, saleID string, totals sale.Totals) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE table_sales SET subtotal_cents = $2, discount_cents = $3, total_cents = $4, updated_at = $5
		WHERE id = $1 AND status = 'open'
		RETURNING `+saleColumns,
		saleID, totals.Subtotal.Cents(), totals.Discount.Cents(), totals.Total.Cents(), time.Now())

	updated, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.saleNotOpen(ctx, saleID)
		}
		return nil, fmt.Errorf("erro ao atualizar totais: %w", err)
	}
	return updated, nil
}

// Close implementa sale.Repository.Close
func (r *SaleRepository) Close(ctx context.Context, s *sale.Sale) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE table_sales SET
			status = $2, payment_type = $3, tendered_cents = $4, change_cents = $5,
			notes = $6, closed_at = $7, updated_at = $8
		WHERE id = $1 AND status = 'open'
		RETURNING `+saleColumns,
		s.ID, string(sale.StatusClosed), string(s.PaymentType), s.TenderedAmount.Cents(), s.ChangeAmount.Cents(),
		s.Notes, s.ClosedAt, s.UpdatedAt)

	closed, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.saleNotOpen(ctx, s.ID)
		}
		return nil, fmt.Errorf("erro ao fechar venda: %w", err)
	}
	return closed, nil
}

// saleNotOpen distingue venda inexistente de venda já fechada
func (r *SaleRepository) saleNotOpen(ctx context.Context, saleID string) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM table_sales WHERE id = $1`, saleID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("venda", saleID)
	}
	if err != nil {
		return fmt.Errorf("erro ao verificar venda: %w", err)
	}
	return apperror.Conflict("venda", saleID, "venda fechada não pode ser alterada")
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var (
		s                         sale.Sale
		subtotal, discount, total int64
		tendered, change          int64
		status, payment           string
	)
	if err := row.Scan(
		&s.ID, &s.StoreID, &s.TableID, &s.OperatorName, &s.CustomerName, &s.CustomerCount,
		&subtotal, &discount, &total, &status, &payment,
		&tendered, &change, &s.Notes, &s.OpenedAt, &s.ClosedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Subtotal = money.FromCents(subtotal)
	s.DiscountAmount = money.FromCents(discount)
	s.TotalAmount = money.FromCents(total)
	s.TenderedAmount = money.FromCents(tendered)
	s.ChangeAmount = money.FromCents(change)
	s.Status = sale.Status(status)
	s.PaymentType = sale.PaymentType(payment)
	return &s, nil
}

func scanItem(row pgx.Row) (*sale.LineItem, error) {
	var (
		item                 sale.LineItem
		quantity             *int
		unitPrice            *int64
		weight, pricePerGram *string
		discount, subtotal   int64
	)
	if err := row.Scan(
		&item.ID, &item.SaleID, &item.ProductCode, &item.ProductName, &quantity, &unitPrice,
		&weight, &pricePerGram, &discount, &subtotal, &item.Notes, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	if quantity != nil {
		item.Quantity = *quantity
	}
	if unitPrice != nil {
		item.UnitPrice = money.FromCents(*unitPrice)
	}
	if weight != nil {
		d, err := decimal.NewFromString(*weight)
		if err != nil {
			return nil, fmt.Errorf("peso inválido %q: %w", *weight, err)
		}
		item.WeightKg = d
	}
	if pricePerGram != nil {
		d, err := decimal.NewFromString(*pricePerGram)
		if err != nil {
			return nil, fmt.Errorf("preço por grama inválido %q: %w", *pricePerGram, err)
		}
		item.PricePerGram = d
	}
	item.DiscountAmount = money.FromCents(discount)
	item.Subtotal = money.FromCents(subtotal)
	return &item, nil
}
