package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"threadline/backend/internal/api"
	"threadline/backend/internal/config"
	"threadline/backend/internal/conversation"
	"threadline/backend/internal/database"
	"threadline/backend/internal/llm"
	"threadline/backend/internal/repository"
	"threadline/backend/internal/service"
	"threadline/backend/internal/title"
)

// @title           Threadline API
// @version         1.0
// @description     Thread and message persistence with streaming chat completions.
// @BasePath        /api

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	repo := repository.NewSQLiteRepository(db)
	provider := llm.NewHTTPProvider(cfg.CompletionURL)
	titles := title.NewGenerator(provider, cfg.CompletionModel, cfg.TitleStrategy, title.Options{MaxLength: cfg.TitleMaxLength})

	engine := conversation.NewEngine(repo, provider, titles, cfg.CompletionModel)
	if err := engine.Load(context.Background()); err != nil {
		slog.Error("Failed to initialize conversation state", "error", err)
		return 1
	}
	snap := engine.Snapshot()
	slog.Info("Loaded conversation state", "threads", len(snap.Threads), "active_thread", snap.ActiveThreadID)

	threadService := service.NewThreadService(repo)

	threadHandler := api.NewThreadHandler(threadService)
	chatHandler := api.NewChatHandler(engine, titles)
	router := api.NewRouter(threadHandler, chatHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
