package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkadlec/quizconquest/internal/api"
	"github.com/mkadlec/quizconquest/internal/config"
	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/logging"
	"github.com/mkadlec/quizconquest/internal/questions"
	"github.com/mkadlec/quizconquest/internal/service"
	"github.com/mkadlec/quizconquest/internal/storage"
	"github.com/mkadlec/quizconquest/internal/version"
)

const (
	defaultConfigPath = "./quizconquest_config.json"
	defaultDBPath     = "./data/quizconquest.db"

	timeoutScanInterval = 5 * time.Second
)

func main() {
	logging.Info("starting quizconquest", logging.Fields{
		"version": version.Version,
		"commit":  version.Commit,
	})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("failed to load configuration", err, logging.Fields{"path": configPath})
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logging.Fatal("failed to create database directory", err, logging.Fields{"path": dbPath})
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Questions)
	if err != nil {
		logging.Fatal("failed to open database", err, logging.Fields{"path": dbPath})
	}

	repo := storage.NewSQLiteRepository(db)
	store := storage.NewGameStore()
	fetcher := questions.NewFetcher(repo)
	svc := service.New(store, repo, fetcher, cfg)

	go runTimeoutScanner(svc)

	router := gin.Default()
	handler := api.NewGameHandler(svc)
	handler.RegisterRoutes(router.Group(constants.RouteAPIPrefix))

	logging.Info("listening", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("server stopped", err, nil)
	}
}

// runTimeoutScanner periodically force-resolves questions whose answer window
// has expired.
func runTimeoutScanner(svc *service.Service) {
	ticker := time.NewTicker(timeoutScanInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		svc.HandleTimedOutGames(now)
	}
}
