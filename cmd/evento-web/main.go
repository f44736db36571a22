package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/evento/internal/auth"
	"github.com/me/evento/internal/bus"
	"github.com/me/evento/internal/config"
	"github.com/me/evento/internal/logging"
	"github.com/me/evento/internal/session"
	"github.com/me/evento/internal/store"
	"github.com/me/evento/internal/ui"
	"github.com/me/evento/internal/view"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Listen address")
	configFile := flag.String("config", "", "Config file (default ~/.evento/config.yaml)")
	serverURL := flag.String("server", "", "Backend URL (or EVENTO_SERVER env)")
	dbPath := flag.String("db", "", "Credential store path (default ~/.evento/evento.db)")
	secure := flag.Bool("secure", false, "Set Secure on session cookies (behind HTTPS)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	path, err := cfg.ResolveDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve store path: %v\n", err)
		os.Exit(1)
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open credential store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	sessions := session.NewManager(st, logger)
	b := bus.New()
	gateway := auth.NewGateway(cfg.APIConfig(), sessions, b, logger)
	binder := view.NewBinder(sessions, logger)

	webUI := ui.New(st, sessions, gateway, binder, logger, ui.Config{Secure: *secure})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	webUI.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Keep the binder's region state in sync with session changes for
	// the lifetime of the server.
	go binder.Watch(ctx, b)

	go func() {
		logger.Info("web ui starting", "addr", *addr, "backend", cfg.ServerURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
