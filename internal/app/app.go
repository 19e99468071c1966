package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongoadapter "github.com/diepdx123/be-xuongWorkshop/internal/adapter/mongo"
	redisadapter "github.com/diepdx123/be-xuongWorkshop/internal/adapter/redis"
	"github.com/diepdx123/be-xuongWorkshop/internal/app/config"
	"github.com/diepdx123/be-xuongWorkshop/internal/mailer"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	httpport "github.com/diepdx123/be-xuongWorkshop/internal/port/http"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/handler"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/middleware"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/router"
	"github.com/diepdx123/be-xuongWorkshop/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		appLogger.Errorf("Failed to initialize MongoDB client: %v", err)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("MongoDB client initialized successfully")

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	userRepo := mongoadapter.NewUserRepository(mongoClient, cfg.MongoDB, appLogger)
	cartRepo := mongoadapter.NewCartRepository(mongoClient, cfg.MongoDB, appLogger)
	productRepo := mongoadapter.NewProductRepository(mongoClient, cfg.MongoDB, appLogger)
	categoryRepo := mongoadapter.NewCategoryRepository(mongoClient, cfg.MongoDB, appLogger)
	productCache := redisadapter.NewProductDetailCacheRepository(redisClient)

	mail := newMailer(cfg.Mailer, appLogger)

	authService := service.NewAuthService(userRepo, mail, appLogger, cfg.JWT.Secret, cfg.JWT.TTL, cfg.Mailer.ResetURL)
	cartService := service.NewCartService(cartRepo, productRepo, productCache, appLogger, service.CartServiceConfig{
		ProductCacheTTL: cfg.ProductCache.TTL,
	})
	productService := service.NewProductService(productRepo, productCache, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)

	authHandler := handler.NewAuthHandler(authService, appLogger)
	cartHandler := handler.NewCartHandler(cartService, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)
	categoryHandler := handler.NewCategoryHandler(categoryService, appLogger)

	r := chi.NewRouter()
	r.Use(middleware.Logger(appLogger))
	router.SetupAuthRoutes(r, authHandler, cfg.JWT.Secret)
	router.SetupCartRoutes(r, cartHandler)
	router.SetupProductRoutes(r, productHandler)
	router.SetupCategoryRoutes(r, categoryHandler, cfg.JWT.Secret)

	server := httpport.NewServer(cfg.HTTPServer, r, appLogger)

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}, nil
}

func newMailer(cfg config.MailerConfig, log logger.Logger) mailer.Mailer {
	if cfg.Provider == "mailersend" {
		return mailer.NewMailerSendService(cfg.MailerSend.APIKey, cfg.SMTP.SenderEmail, cfg.SMTP.SenderName, log)
	}
	return mailer.NewSMTPMailerService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
		cfg.SMTP.SenderName,
		log,
	)
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	a.log.Info("Closing database connections...")

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		}
	}

	a.log.Info("Application shut down")
}
