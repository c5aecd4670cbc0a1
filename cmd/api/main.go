package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Haval-Sadun/mealmaster-m/config"
	"github.com/Haval-Sadun/mealmaster-m/internal/database"
	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
	"github.com/Haval-Sadun/mealmaster-m/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.New(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", "err", err)
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("failed to run migrations", "err", err)
	}

	srv := server.New(cfg, db, zl)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", "err", err)
		}
	case sig := <-quit:
		zl.Info("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("server shutdown error", "err", err)
	}
	zl.Info("server stopped")
}
