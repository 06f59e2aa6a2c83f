package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/config"
	"github.com/bookbrust/bookbrust/internal/metrics"
	"github.com/bookbrust/bookbrust/internal/session"
	"github.com/bookbrust/bookbrust/internal/storage"
	"github.com/bookbrust/bookbrust/internal/web"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "bookbrust.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(db)

	// Restore the saved session, if any, so the user stays signed in
	// across restarts.
	sessions := session.NewStore(store)
	if restored := sessions.Restore(context.Background()); restored != nil {
		slog.Info("restored session", "alias", restored.Identity.Alias)
	}

	// Create the client for the remote BookBrust service.
	api := bookapi.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, slog.Default())

	// Metrics registry and collector.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Build the page server and router.
	server, err := web.NewServer(api, sessions, store, collector, registry)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	router := server.Router()

	// Determine server address (localhost only for security).
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)

	// Auto-open browser after a short delay to let the server start.
	if cfg.Server.AutoOpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser("http://" + addr)
		}()
	}

	// Start HTTP server.
	slog.Info("starting server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openBrowser opens the given URL in the user's default browser.
// It is a fire-and-forget operation; errors are silently ignored.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
