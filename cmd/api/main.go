package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/infrastructure/dynamo"
	snsinfra "github.com/employee-api/internal/infrastructure/sns"
	"github.com/employee-api/internal/pkg/logger"
	transporthttp "github.com/employee-api/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Bootstrap the DynamoDB table (creates it if it doesn't exist).
	dynamoClient, err := dynamo.NewClient(context.Background(), cfg)
	if err != nil {
		zlog.Fatal("dynamodb client init", zap.Error(err))
	}
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables, zlog)

	// Event publisher (optional — the API runs without eventing if SNS is
	// unavailable).
	var publisher snsinfra.Publisher
	if p, err := snsinfra.NewPublisher(cfg); err == nil {
		publisher = p
	} else {
		zlog.Warn("SNS publisher not available, change events disabled", zap.Error(err))
	}

	deps := &transporthttp.Deps{
		EmployeeRepo: dynamo.NewEmployeeRepo(dynamoClient, cfg.DynamoTables.Employees),
		Publisher:    publisher,
		Logger:       zlog,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
