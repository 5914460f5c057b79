package repository

import (
	"context"

	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// PostgresUnitOfWork agrupa os repositórios de mesas e vendas sobre o mesmo banco
type PostgresUnitOfWork struct {
	db *database.PostgresDB
}

// NewPostgresUnitOfWork cria uma nova instância de PostgresUnitOfWork
func NewPostgresUnitOfWork(db *database.PostgresDB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: db}
}

// Tables retorna o repositório de mesas fora de transação
func (u *PostgresUnitOfWork) Tables() table.Repository {
	return NewTableRepository(u.db.Pool())
}

// Sales retorna o repositório de vendas fora de transação
func (u *PostgresUnitOfWork) Sales() sale.Repository {
	return NewSaleRepository(u.db.Pool())
}

// WithinTx executa fn em uma transação; qualquer erro desfaz todas as gravações
func (u *PostgresUnitOfWork) WithinTx(ctx context.Context, fn func(tables table.Repository, sales sale.Repository) error) error {
	return u.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(NewTableRepository(tx), NewSaleRepository(tx))
	})
}
