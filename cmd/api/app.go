package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/pdv-conveniencia/docs"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/route"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/memory"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/repository"
	"github.com/hugohenrick/pdv-conveniencia/internal/config"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/account"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/ledger"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/settlement"
	tillsvc "github.com/hugohenrick/pdv-conveniencia/internal/service/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// repositories agrupa as implementações de persistência escolhidas pelo driver
type repositories struct {
	tx          domain.Transactor
	pinger      controller.Pinger
	close       func()
	products    product.Repository
	categories  product.CategoryRepository
	customers   customer.Repository
	receivables customer.ReceivableRepository
	tills       till.Repository
	sales       sale.Repository
	purchases   purchase.Repository
	suppliers   purchase.SupplierRepository
	users       user.Repository
}

// App representa a aplicação e suas dependências
type App struct {
	config *config.Config
	logger logger.Logger
	router *gin.Engine
	repos  *repositories
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	repos, err := newRepositories(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	secret := cfg.Auth.SecretKey
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			repos.close()
			return nil, err
		}
		log.Warn("JWT_SECRET_KEY não configurado, usando chave temporária; tokens não sobrevivem a reinícios")
	}
	jwtService, err := auth.NewJWTService(secret, cfg.Auth.Expiration)
	if err != nil {
		repos.close()
		return nil, err
	}

	loc := cfg.Business.Location

	// Serviços
	catalogService := catalog.NewService(repos.tx, repos.products, repos.categories, log.With("service", "catalog"), cfg.Business.ExpiryWindowDays)
	ledgerService := ledger.NewService(repos.tx, repos.customers, repos.receivables, log.With("service", "ledger"), cfg.Business.DefaultCreditTermDays)
	tillService := tillsvc.NewService(repos.tx, repos.tills, log.With("service", "till"), loc)
	settlementEngine := settlement.NewEngine(repos.tx, repos.tills, repos.products, repos.customers, repos.sales,
		catalogService, ledgerService, log.With("service", "settlement"), loc)
	intakeEngine := intake.NewEngine(repos.tx, repos.purchases, repos.suppliers, repos.products, catalogService, log.With("service", "intake"), loc)
	accountService := account.NewService(repos.tx, repos.users, jwtService, log.With("service", "account"))

	// Controllers
	controllers := route.Controllers{
		Auth:       controller.NewAuthController(accountService, log),
		User:       controller.NewUserController(accountService, log),
		Product:    controller.NewProductController(catalogService, log),
		Category:   controller.NewCategoryController(catalogService, log),
		Customer:   controller.NewCustomerController(ledgerService, log),
		Receivable: controller.NewReceivableController(ledgerService, log),
		Till:       controller.NewTillController(tillService, log),
		Sale:       controller.NewSaleController(settlementEngine, log),
		Purchase:   controller.NewPurchaseController(intakeEngine, log),
		Supplier:   controller.NewSupplierController(intakeEngine, log),
		Health:     controller.NewHealthController(repos.pinger, cfg.Database.Driver, log),
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	route.Setup(router, cfg.Server.BasePath, controllers, route.Guard{JWT: jwtService, Required: cfg.Auth.Required})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{config: cfg, logger: log, router: router, repos: repos}, nil
}

func newRepositories(ctx context.Context, cfg *config.Config, log logger.Logger) (*repositories, error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		log.Warn("usando armazenamento em memória; os dados serão perdidos ao encerrar")
		return &repositories{
			tx:          store,
			close:       store.Close,
			products:    store.Products(),
			categories:  store.Categories(),
			customers:   store.Customers(),
			receivables: store.Receivables(),
			tills:       store.Tills(),
			sales:       store.Sales(),
			purchases:   store.Purchases(),
			suppliers:   store.Suppliers(),
			users:       store.Users(),
		}, nil
	}

	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(cfg.Database, log); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &repositories{
		tx:          db,
		pinger:      db,
		close:       db.Close,
		products:    repository.NewProductRepository(db),
		categories:  repository.NewCategoryRepository(db),
		customers:   repository.NewCustomerRepository(db),
		receivables: repository.NewReceivableRepository(db),
		tills:       repository.NewTillRepository(db),
		sales:       repository.NewSaleRepository(db),
		purchases:   repository.NewPurchaseRepository(db),
		suppliers:   repository.NewSupplierRepository(db),
		users:       repository.NewUserRepository(db),
	}, nil
}

// Start inicia o servidor HTTP e aguarda um sinal de encerramento
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              ":" + a.config.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.Server.Port, "storage", a.config.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case sig := <-quit:
		a.logger.Info("encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.repos != nil && a.repos.close != nil {
		a.repos.close()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// requestLogger registra cada requisição no logger estruturado
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("requisição",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("erro ao gerar chave JWT: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
