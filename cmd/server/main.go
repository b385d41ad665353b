package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kudichain.backend/internal/config"
	"kudichain.backend/internal/infrastructure/jobs"
	"kudichain.backend/internal/infrastructure/models"
	"kudichain.backend/internal/infrastructure/repositories"
	"kudichain.backend/internal/interfaces/http/handlers"
	"kudichain.backend/internal/interfaces/http/middleware"
	"kudichain.backend/internal/usecases"
	"kudichain.backend/pkg/jwt"
	"kudichain.backend/pkg/logger"
	"kudichain.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.Driver == "postgres" {
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.URL(),
				PreferSimpleProtocol: true,
			}), &gorm.Config{})
		}
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}
	log.Printf("Connected to %s via GORM", cfg.Database.Driver)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.TrashRecord{},
		&models.PaymentRate{},
		&models.VendorProfile{},
		&models.Factory{},
		&models.Task{},
		&models.SupportTicket{},
		&models.AuditLog{},
		&models.BlogPost{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	dropRepo := repositories.NewTrashRecordRepository(db)
	rateRepo := repositories.NewPaymentRateRepository(db)
	vendorRepo := repositories.NewVendorProfileRepository(db)
	factoryRepo := repositories.NewFactoryRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	ticketRepo := repositories.NewSupportTicketRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	blogRepo := repositories.NewBlogPostRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, walletRepo, uow, jwtService, sessionStore, cfg.Security.SessionTTL)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, txRepo, auditRepo, uow)
	dropUsecase := usecases.NewDropUsecase(dropRepo, userRepo, rateRepo, factoryRepo, walletUsecase, uow, cfg.Platform.VendorShareBps)
	rateUsecase := usecases.NewRateUsecase(rateRepo, auditRepo, uow)
	taskUsecase := usecases.NewTaskUsecase(taskRepo, factoryRepo, walletUsecase, uow)
	profileUsecase := usecases.NewProfileUsecase(vendorRepo, factoryRepo, userRepo, auditRepo)
	supportUsecase := usecases.NewSupportUsecase(ticketRepo)
	blogUsecase := usecases.NewBlogUsecase(blogRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, dropRepo, txRepo, ticketRepo, auditRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	dropHandler := handlers.NewDropHandler(dropUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	rateHandler := handlers.NewRateHandler(rateUsecase)
	taskHandler := handlers.NewTaskHandler(taskUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	supportHandler := handlers.NewSupportHandler(supportUsecase)
	blogHandler := handlers.NewBlogHandler(blogUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsJob := jobs.NewMetricsRefreshJob(adminUsecase, cfg.Platform.StatsRefreshInterval, prometheus.DefaultRegisterer)
	go metricsJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		dropHandler:    dropHandler,
		walletHandler:  walletHandler,
		rateHandler:    rateHandler,
		taskHandler:    taskHandler,
		profileHandler: profileHandler,
		supportHandler: supportHandler,
		blogHandler:    blogHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		metricsJob.Stop()
		cancel()
	}()

	log.Printf("KudiChain Backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
