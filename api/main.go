package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/expiry-tracker/internal/alerts"
	"github.com/rogerio-castellano/expiry-tracker/internal/backup"
	"github.com/rogerio-castellano/expiry-tracker/internal/config"
	"github.com/rogerio-castellano/expiry-tracker/internal/db"
	api "github.com/rogerio-castellano/expiry-tracker/internal/http"
	"github.com/rogerio-castellano/expiry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/expiry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/expiry-tracker/internal/logging"
	"github.com/rogerio-castellano/expiry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
	"github.com/rogerio-castellano/expiry-tracker/internal/selection"
	"github.com/rogerio-castellano/expiry-tracker/internal/settings"
)

// @title Expiry Tracker API
// @version 1.0
// @description REST API for tracking perishable products and their expiry status.
// @host localhost:8080
// @BasePath /
func main() {
	logging.Setup()
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	productRepo, cleanup, err := buildProductRepo(cfg)
	if err != nil {
		slog.Error("could not open product store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer cleanup()
	handlers.SetProductRepo(productRepo)

	var notifier *alerts.Notifier
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("could not connect to redis", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		notifier = alerts.NewNotifier(redissvc.NewRedisService(rdb, ctx))
	} else {
		// Without redis every alert is reported as unseen.
		notifier = alerts.NewNotifier(nil)
	}
	handlers.SetNotifier(notifier)

	handlers.SetSettingsStore(settings.NewStore(cfg.Defaults))
	handlers.SetSelectionManager(selection.NewManager())
	handlers.SetBackupStore(backup.NewLocalStore(cfg.BackupDir))

	if cfg.S3Bucket != "" {
		uploader, err := backup.NewS3Uploader(ctx, backup.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			slog.Error("could not configure s3 uploads", "err", err)
			os.Exit(1)
		}
		handlers.SetBackupUploader(uploader)
	}

	go rl.StartVisitorCleanupLoop()

	handler := api.RateLimit(api.NewRouter())
	slog.Info("server running", "addr", cfg.Addr, "store", cfg.StoreDriver)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func buildProductRepo(cfg config.Config) (repo.ProductRepository, func(), error) {
	switch cfg.StoreDriver {
	case "sqlite":
		store, err := repo.NewSQLiteProductRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "postgres":
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewPostgresProductRepository(database), func() { database.Close() }, nil
	default:
		return repo.NewInMemoryProductRepository(), func() {}, nil
	}
}
