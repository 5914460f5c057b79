package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/database"
)

func main() {
	dir := flag.String("dir", database.DefaultMigrationsDir, "diretório com os arquivos de migração")
	rollback := flag.Int("rollback", 0, "quantidade de migrações a desfazer")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	config := database.NewPostgresConfigFromEnv()
	if !config.IsConfigured() {
		log.Fatal("Banco de dados não configurado: defina DATABASE_URL ou DB_HOST")
	}

	if *rollback > 0 {
		if err := database.RollbackMigrations(config, *dir, *rollback); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Printf("%d migração(ões) desfeita(s) com sucesso!", *rollback)
		return
	}

	if err := database.RunMigrations(config, *dir); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
