package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/points-ledger/internal/adapter/handler"
	"github.com/rl1809/points-ledger/internal/adapter/storage"
	"github.com/rl1809/points-ledger/internal/config"
	"github.com/rl1809/points-ledger/internal/core/service"
	"github.com/rl1809/points-ledger/internal/migrations"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sqlx.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Error("failed to open mysql", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping mysql", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to mysql")

	if err := migrations.Run(db); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	// Initialize adapters and service
	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)

	tracker := service.NewTracker(mysqlAdapter, logger)
	if err := tracker.RefreshAll(ctx); err != nil {
		logger.Error("initial cache load failed", "error", err)
		os.Exit(1)
	}

	// Surface the partial-commit anomaly: headers without line items.
	if orphans, err := mysqlAdapter.CountOrphanTransactions(ctx); err != nil {
		logger.Warn("orphan transaction check failed", "error", err)
	} else if orphans > 0 {
		logger.Warn("ledger contains transaction headers without line items", "count", orphans)
	}

	httpHandler := handler.NewHTTPHandler(tracker, redisAdapter, logger, cfg.SessionTTL)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpHandler.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
