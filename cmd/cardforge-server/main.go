// Command cardforge-server boots the trading-card-game core: the document
// store, the weighted-priority worker pool, the HTTP surface, and the
// chat-command dispatcher.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardforge/server/internal/auth"
	"github.com/cardforge/server/internal/commands"
	"github.com/cardforge/server/internal/config"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
	"github.com/cardforge/server/internal/httpapi"
	"github.com/cardforge/server/internal/logging"
	"github.com/cardforge/server/internal/tasks"
	"github.com/cardforge/server/internal/transport"
)

const tasksShutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cardforge-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logs, err := logging.Setup("./logs")
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	store, err := docstore.Open(cfg.DocStorePath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	svc, err := data.NewService(store)
	if err != nil {
		return fmt.Errorf("build data service: %w", err)
	}

	authenticator := auth.New(svc, cfg.TokenSecret)

	manager := tasks.NewManager(cfg.WorkerCount)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)
	defer manager.Shutdown()

	// The chat-command and binary-transport dispatchers are fully wired
	// against the same manager and data service the HTTP surface uses, but
	// neither has a listening socket in this build: the gateway that would
	// feed them interaction payloads and transport frames lives outside
	// this core. They're constructed here so the process proves the wiring
	// compiles and so a future gateway only needs to start calling in.
	registry := commands.NewRegistry()
	commands.RegisterDefaults(registry)
	cluster := commands.NewWebhookCluster(cfg.DiscordWebhookBaseURL)
	_ = commands.NewDispatcher(registry, manager, cluster, svc)

	_ = transport.NewDispatcher(manager, svc)

	httpServer := httpapi.NewServer(svc, authenticator, logs, cfg.CardImageBaseURL, cfg.CommandControl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpServer.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Info.Printf("HTTP surface listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sigCh:
		logs.Info.Println("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), tasksShutdownGrace)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
