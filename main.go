package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"produk/internal/handlers"
	"produk/internal/middleware"
	"produk/internal/repositories"
	"produk/internal/services"
	"produk/pkg/mongodb"
	"produk/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("APP_ENV", "development")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	production := viper.GetString("APP_ENV") == "production"

	logger := newLogger(production)
	defer logger.Sync()

	// --- Storage connection ---
	// Startup is strictly: connect, then listen. A connection failure here
	// aborts the process with a non-zero exit.
	mongoURL := viper.GetString("MONGODB_URL")
	mongoDB := viper.GetString("MONGODB_DB")
	if mongoURL == "" || mongoDB == "" {
		logger.Fatal("MONGODB_URL and MONGODB_DB must be set")
	}

	logger.Info("connecting to MongoDB",
		zap.String("url", mongodb.RedactURL(mongoURL)),
		zap.String("database", mongoDB))

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	dbClient, err := mongodb.NewClient(connectCtx, mongodb.Config{
		URL:      mongoURL,
		Database: mongoDB,
		OnStateChange: func(s mongodb.State) {
			switch s {
			case mongodb.StateDisconnected:
				logger.Warn("MongoDB connection lost, driver will retry", zap.Stringer("state", s))
			default:
				logger.Info("MongoDB connection state changed", zap.Stringer("state", s))
			}
		},
	})
	cancelConnect()
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	// --- Event publisher (optional) ---
	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			logger.Warn("RabbitMQ unavailable, product events disabled", zap.Error(err))
		} else {
			publisher = mqClient
		}
	}

	// --- Wiring ---
	productRepo := repositories.NewMongoProductRepository(dbClient.Database())
	productService := services.NewProductService(productRepo, publisher, logger)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New(fiber.Config{
		AppName:      "produk",
		ErrorHandler: middleware.NewErrorHandler(logger, production),
	})

	app.Use(middleware.RequestLogger(logger))

	// --- Routes ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Server is running!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"products": "/products",
			},
		})
	})

	productHandler.RegisterRoutes(app)

	// Catch-all after every real route.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	// --- Start HTTP server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("port", appPort))

	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logger.Error("error closing RabbitMQ client", zap.Error(err))
		}
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelClose()
	if err := dbClient.Close(closeCtx); err != nil {
		logger.Error("failed to close MongoDB connection", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("server gracefully stopped")
}

// newLogger builds a development or production zap logger depending on the
// runtime mode, the same switch that controls error response verbosity.
func newLogger(production bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
