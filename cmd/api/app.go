package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hugohenrick/pdv-mesas/docs"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/api/route"
	"github.com/hugohenrick/pdv-mesas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/config"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-mesas/internal/infrastructure/queue"
	"github.com/hugohenrick/pdv-mesas/internal/usecase/tablesale"
	"github.com/hugohenrick/pdv-mesas/pkg/lock"
	"github.com/hugohenrick/pdv-mesas/pkg/logger"
	"github.com/hugohenrick/pdv-mesas/pkg/store"
)

type eventPublisher interface {
	tablesale.EventPublisher
	Close() error
}

// App representa a aplicação e suas dependências
type App struct {
	config          *config.Config
	logger          logger.Logger
	router          *gin.Engine
	db              *database.PostgresDB
	redis           *redis.Client
	events          eventPublisher
	storage         string
	storeMiddleware gin.HandlerFunc
	tableController *controller.TableController
	saleController  *controller.SaleController
}

// NewApp cria uma nova instância do aplicativo. Sem banco configurado (ou com
// APP_DEMO=true) a API roda em memória com as lojas de demonstração.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger()
	app := &App{config: cfg, logger: log}

	var uow tablesale.UnitOfWork
	var validator store.Validator

	dbConfig := database.NewPostgresConfigFromEnv()
	if cfg.Demo || !dbConfig.IsConfigured() {
		mem := repository.NewDemoStore()
		uow, validator = mem, repository.NewStoreValidator(mem.Stores())
		app.storage = "memory"
		log.Warn("banco de dados não configurado, usando dados de demonstração", "stores", repository.DemoStore1+","+repository.DemoStore2)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := database.NewPostgresDB(ctx, dbConfig)
		if err != nil {
			return nil, err
		}
		app.db = db
		uow = repository.NewPostgresUnitOfWork(db)
		validator = repository.NewStoreValidator(repository.NewStoreRepository(db.Pool()))
		app.storage = "postgres"
	}

	// Lock distribuído quando há mais de uma instância atendendo os terminais
	var locker lock.Locker = lock.NewLocalLocker()
	client, err := config.NewRedisClient(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if client != nil {
		app.redis = client
		locker = lock.NewRedisLocker(client, cfg.LockTTL)
		log.Info("lock de mesas via redis", "addr", cfg.RedisAddr)
	}

	if cfg.RabbitMQURL != "" {
		app.events = queue.NewAMQPPublisher(cfg.RabbitMQURL, log)
	} else {
		app.events = queue.NopPublisher{}
	}

	service := tablesale.NewService(uow, locker, app.events, log, tablesale.Policy{
		ReleaseStatus:      cfg.ReleasePolicy,
		BlockCashShortfall: cfg.BlockCashShortfall,
		OperationTimeout:   cfg.OperationTimeout,
	})

	app.storeMiddleware = store.Middleware(validator)
	app.tableController = controller.NewTableController(service, log)
	app.saleController = controller.NewSaleController(service, log)

	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	app.router = router

	return app, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", store.HeaderName},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	docs.SwaggerInfo.BasePath = a.config.BasePath
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := a.router.Group(a.config.BasePath)
	route.SetupHealthRoutes(api, a.storage)

	// Rotas que exigem o cabeçalho store-id
	storeRoutes := api.Group("")
	storeRoutes.Use(a.storeMiddleware)
	route.SetupTableRoutes(storeRoutes, a.tableController)
	route.SetupSaleRoutes(storeRoutes, a.saleController)
}

// Start inicia o servidor e aguarda SIGINT/SIGTERM para encerrar
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.Port, "base_path", a.config.BasePath, "storage", a.storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("erro ao fechar publicador de eventos", "error", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
