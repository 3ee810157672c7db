package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vasool/collection-engine/internal/config"
	"github.com/vasool/collection-engine/internal/handler"
	"github.com/vasool/collection-engine/internal/middleware"
	"github.com/vasool/collection-engine/internal/repository"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	lineRepo := repository.NewLineRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	collectionService := service.NewCollectionService(collectionRepo, loanRepo, userRepo, logger)
	lineService := service.NewLineService(lineRepo, customerRepo, logger)
	loanService := service.NewLoanService(loanRepo, customerRepo, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	reportService := service.NewReportService(reportRepo, redisClient, cfg.Reports.CacheTTL, logger)

	// Initialize handlers
	collectionHandler := handler.NewCollectionHandler(collectionService)
	lineHandler := handler.NewLineHandler(lineService)
	loanHandler := handler.NewLoanHandler(loanService)
	customerHandler := handler.NewCustomerHandler(customerService, loanService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(cfg, logger, userRepo,
		collectionHandler, lineHandler, loanHandler, customerHandler, userHandler, reportHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	cfg *config.Config,
	logger *logrus.Logger,
	userRepo repository.UserRepository,
	collectionHandler *handler.CollectionHandler,
	lineHandler *handler.LineHandler,
	loanHandler *handler.LoanHandler,
	customerHandler *handler.CustomerHandler,
	userHandler *handler.UserHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes, all behind the auth boundary
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(userRepo, cfg.Auth.JWTSecret, logger))

	api.HandleFunc("/collections", collectionHandler.Submit).Methods("POST")
	api.HandleFunc("/collections", collectionHandler.ListPending).Methods("GET")
	api.HandleFunc("/collections/{id}", collectionHandler.Review).Methods("PATCH")

	api.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	api.HandleFunc("/customers", customerHandler.List).Methods("GET")
	api.HandleFunc("/customers/{id}/loans", customerHandler.ActiveLoans).Methods("GET")

	api.HandleFunc("/loans", loanHandler.Create).Methods("POST")

	api.HandleFunc("/lines", lineHandler.Create).Methods("POST")
	api.HandleFunc("/lines", lineHandler.List).Methods("GET")
	api.HandleFunc("/lines/{id}/agent", lineHandler.AssignAgent).Methods("POST")
	api.HandleFunc("/lines/{id}/customers", lineHandler.AddCustomer).Methods("POST")
	api.HandleFunc("/lines/{id}/customers", lineHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/lines/{id}/reorder", lineHandler.Reorder).Methods("POST")
	api.HandleFunc("/lines/{id}/lock", lineHandler.ToggleLock).Methods("PATCH")

	api.HandleFunc("/users", userHandler.Create).Methods("POST")
	api.HandleFunc("/users/team", userHandler.Team).Methods("GET")

	api.HandleFunc("/reports/financials", reportHandler.Financials).Methods("GET")

	return router
}
