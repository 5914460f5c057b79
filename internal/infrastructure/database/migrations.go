package database

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsDir é o diretório padrão dos arquivos de migração
const DefaultMigrationsDir = "migrations"

// RunMigrations aplica todas as migrações pendentes do diretório informado
func RunMigrations(cfg *PostgresConfig, dir string) error {
	m, err := newMigrate(cfg, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão das migrações: %w", err)
	}
	log.Printf("Migrações aplicadas com sucesso (versão %d, dirty=%t)", version, dirty)
	return nil
}

// RollbackMigrations desfaz a quantidade de passos informada
func RollbackMigrations(cfg *PostgresConfig, dir string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("quantidade de passos inválida: %d", steps)
	}

	m, err := newMigrate(cfg, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao desfazer migrações: %w", err)
	}
	log.Printf("%d migração(ões) desfeita(s)", steps)
	return nil
}

func newMigrate(cfg *PostgresConfig, dir string) (*migrate.Migrate, error) {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver diretório de migrações: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(abs), cfg.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return m, nil
}
