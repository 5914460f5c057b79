// Package config carrega a configuração da aplicação a partir de variáveis de
// ambiente. O .env é carregado pelo main via godotenv antes de Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
)

// Config agrupa os valores de execução da API
type Config struct {
	Port               string
	BasePath           string
	Demo               bool
	ReleasePolicy      table.Status
	BlockCashShortfall bool
	OperationTimeout   time.Duration
	LockTTL            time.Duration
	AllowedOrigins     []string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RabbitMQURL        string
}

// Load lê a configuração do ambiente, aplicando os valores padrão
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("APP_PORT", "8084"),
		BasePath:       getEnv("API_BASE_PATH", "/api/v1"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
	}

	var err error
	if cfg.Demo, err = getBool("APP_DEMO", false); err != nil {
		return nil, err
	}
	if cfg.BlockCashShortfall, err = getBool("BLOCK_CASH_SHORTFALL", true); err != nil {
		return nil, err
	}

	timeout, err := getInt("OPERATION_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	cfg.OperationTimeout = time.Duration(timeout) * time.Second

	ttl, err := getInt("LOCK_TTL_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.LockTTL = time.Duration(ttl) * time.Second

	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	policy, err := table.ParseStatus(getEnv("TABLE_RELEASE_POLICY", string(table.StatusFree)))
	if err != nil || policy == table.StatusOccupied {
		return nil, fmt.Errorf("TABLE_RELEASE_POLICY inválida: %q", os.Getenv("TABLE_RELEASE_POLICY"))
	}
	cfg.ReleasePolicy = policy

	if cfg.OperationTimeout <= 0 {
		return nil, fmt.Errorf("OPERATION_TIMEOUT_SECONDS deve ser maior que zero")
	}

	return cfg, nil
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("valor inteiro inválido para %s: %q", key, value)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("valor booleano inválido para %s: %q", key, value)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
