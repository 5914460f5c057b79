package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de erro do PostgreSQL tratados pelos repositórios
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Querier é o subconjunto comum a *pgxpool.Pool e pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgErrorCode retorna o código SQLSTATE e a constraint de um erro do PostgreSQL
func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// nullIfEmpty grava NULL para textos vazios (colunas UUID opcionais)
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUUID evita enviar ao banco identificadores que a coluna UUID rejeitaria
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
