package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"reeltrack/config"
	"reeltrack/handlers"
	"reeltrack/internal/database"
	"reeltrack/services/blog"
	"reeltrack/services/images"
	"reeltrack/services/library"
	"reeltrack/services/tmdb"
	"reeltrack/utils"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] database setup failed: %v", err)
	}
	defer db.Close()

	imageStore, err := images.NewStore(afero.NewOsFs(), cfg.ImagesDir)
	if err != nil {
		log.Fatalf("[main] image store setup failed: %v", err)
	}

	librarySvc := library.NewService(db, imageStore)
	blogSvc := blog.NewService(db)
	metadata := tmdb.NewClient(cfg.TMDBAPIKey)
	gate := handlers.NewGate(cfg.AuthUsername, cfg.AuthPassword)

	router := utils.NewRouter()
	handlers.RegisterRoutes(router, gate, librarySvc, blogSvc, metadata, cfg.ImagesDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()
	slog.Info("listening", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// setupLogging routes both slog and the legacy log package to stdout,
// teeing into a size-rotated file when LOG_FILE is configured.
func setupLogging(cfg config.Settings) {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))
	log.SetOutput(out)
}
