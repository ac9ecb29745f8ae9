package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/db"
	"github.com/vivekrp/openform/player"
	"github.com/vivekrp/openform/router"
	"github.com/vivekrp/openform/storage"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// File storage: disk when configured, inline data URLs otherwise
	var store player.Uploader
	var disk *storage.Disk
	if cfg.UploadDir != "" {
		disk, err = storage.NewDisk(cfg.UploadDir, cfg.BaseURL)
		if err != nil {
			slog.Error("upload dir setup failed", "error", err)
			os.Exit(1)
		}
		store = disk
		slog.Info("file storage ready", "dir", cfg.UploadDir)
	} else {
		store = storage.Inline{}
		slog.Info("no upload dir configured, using inline file fallback")
	}

	// Player session registry with periodic sweep
	registry := player.NewRegistry(cfg.SessionTTL)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := registry.Sweep(); n > 0 {
				slog.Info("swept expired sessions", "count", n)
			}
		}
	}()

	// Create router
	mux := router.NewRouter(dbConn, cfg, registry, store, disk)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
