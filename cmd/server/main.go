package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/api"
	"github.com/health-assistant-server/internal/artifact"
	"github.com/health-assistant-server/internal/cache"
	"github.com/health-assistant-server/internal/config"
	"github.com/health-assistant-server/internal/database"
	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/feedback"
	"github.com/health-assistant-server/internal/history"
	"github.com/health-assistant-server/internal/service"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		logrus.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	log := newLogger(cfg.Logging)
	log.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"backend": cfg.Storage.Backend,
	}).Info("Starting health assistant server")

	registry, err := artifact.LoadRegistry(cfg.Artifacts.Dir, log)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	historyStore, feedbackStore, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer historyStore.Close()
	defer feedbackStore.Close()

	var assessmentCache *cache.AssessmentCache
	if cfg.Cache.Enabled {
		var redisClient *redis.Client
		if cfg.Cache.RedisURL != "" {
			opts, err := redis.ParseURL(cfg.Cache.RedisURL)
			if err != nil {
				log.Fatalf("Invalid redis URL: %v", err)
			}
			redisClient = redis.NewClient(opts)
			defer redisClient.Close()
		}
		assessmentCache = cache.New(cfg.Cache.MemorySize, cfg.Cache.TTL, redisClient, log)
	}

	server := api.NewServer(cfg, log, api.Deps{
		Engine:   service.NewRiskEngine(log, registry),
		Insights: service.NewInsightEngine(log),
		Reports:  service.NewReportBuilder(log),
		History:  historyStore,
		Feedback: feedbackStore,
		Cache:    assessmentCache,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// openStores builds the history and feedback stores for the configured
// backend. The postgres backend runs migrations before opening.
func openStores(ctx context.Context, cfg *domain.Config, log *logrus.Logger) (domain.HistoryStore, feedback.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		migrator, err := database.NewMigrator(cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		defer migrator.Close()
		if err := migrator.Up(); err != nil {
			return nil, nil, err
		}

		db, err := database.NewConnection(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}

		feedbackStore, err := feedback.NewPostgresStoreFromURL(database.URL(cfg.Database))
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return history.NewPostgresStore(db.Pool, log), feedbackStore, nil

	default:
		historyStore, err := history.NewSQLiteStore(filepath.Join(cfg.Storage.DataDir, "history.db"))
		if err != nil {
			return nil, nil, err
		}
		feedbackStore, err := feedback.NewSQLiteStore(filepath.Join(cfg.Storage.DataDir, "feedback.db"))
		if err != nil {
			historyStore.Close()
			return nil, nil, err
		}
		return historyStore, feedbackStore, nil
	}
}
