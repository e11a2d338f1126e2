// @title			TaskChain API
// @version		1.0
// @description	Ledger activity indexer with team task shadowing and contribution reporting.
// @BasePath		/

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/taskchain/internal/chain"
	"github.com/mtlprog/taskchain/internal/config"
	"github.com/mtlprog/taskchain/internal/database"
	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/handler"
	"github.com/mtlprog/taskchain/internal/indexer"
	"github.com/mtlprog/taskchain/internal/kanban"
	"github.com/mtlprog/taskchain/internal/live"
	"github.com/mtlprog/taskchain/internal/logger"
	"github.com/mtlprog/taskchain/internal/middleware"
	"github.com/mtlprog/taskchain/internal/repository"
	"github.com/mtlprog/taskchain/internal/service"
	"github.com/mtlprog/taskchain/internal/syncbridge"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

func main() {
	app := &cli.App{
		Name:  "taskchain",
		Usage: "Ledger task indexer and team task tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "json",
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL; empty keeps shadow tasks in memory",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP server port",
				EnvVars: []string{"PORT"},
			},
			&cli.BoolFlag{
				Name:    "listen-chain",
				Value:   true,
				Usage:   "Subscribe to ledger events at startup",
				EnvVars: []string{"TASKCHAIN_LISTEN"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), c.String("log-format"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the indexer and the web server",
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: runMigrate,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainCfg, err := config.LoadChain()
	if err != nil {
		return err
	}
	liveCfg, err := config.LoadLive()
	if err != nil {
		return err
	}
	telemetryCfg, err := config.LoadTelemetry()
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	metrics := telemetry.NewMetrics()

	// Storage: Postgres when configured, memory otherwise.
	var (
		store    service.TaskStore = repository.NewMemoryTaskStore()
		archived []domain.TaskEvent
		pinger   handler.Pinger
	)
	ixOpts := []indexer.Option{
		indexer.WithQueueSize(chainCfg.QueueSize),
		indexer.WithMetrics(metrics),
	}

	if databaseURL := c.String("database-url"); databaseURL != "" {
		db, err := database.New(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db.Pool()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		events := repository.NewChainEventRepository(db.Pool())
		archived, err = events.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load event archive: %w", err)
		}

		store = repository.NewShadowTaskRepository(db.Pool())
		ixOpts = append(ixOpts, indexer.WithArchiver(events))
		pinger = db.Pool()
	} else {
		slog.Warn("no database configured, shadow tasks and events are kept in memory")
	}

	ix := indexer.New(ixOpts...)
	ix.Restore(archived)
	go func() {
		if err := ix.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("indexer stopped", "error", err)
		}
	}()

	deps := handler.Deps{Metrics: metrics, DB: pinger}

	if c.Bool("listen-chain") {
		listener, closeListener, err := startListener(ctx, chainCfg, ix, metrics)
		if err != nil {
			return err
		}
		defer closeListener()
		deps.Listener = listener
	}

	tasks := service.NewTaskService(store, metrics)
	activity := service.NewActivityService(ix)
	hub := live.NewHub(liveCfg, metrics)

	deps.Tasks = tasks
	deps.Activity = activity
	deps.Reports = service.NewReportService(activity)
	deps.Health = service.NewHealthService(store)
	deps.Boards = kanban.NewService(syncbridge.New(tasks, metrics), hub)
	deps.Hub = hub

	mux := http.NewServeMux()
	handler.New(deps).RegisterRoutes(mux)

	port := c.String("port")
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.Logging(mux),
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: board viewers hold websocket connections open.
		// Request contexts end on shutdown so those viewers are released.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped", "events_indexed", ix.Len())
	return nil
}

// startListener dials the ledger node and starts the subscription.
// A failed first subscription is fatal.
func startListener(
	ctx context.Context,
	cfg config.Chain,
	sink chain.Sink,
	metrics *telemetry.Metrics,
) (*chain.Listener, func(), error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	decoder, err := chain.NewDecoder(common.HexToAddress(cfg.ContractAddress))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build event decoder: %w", err)
	}

	sub, err := chain.DialSubscriber(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial %s: %v", domain.ErrSubscriptionFailure, cfg.RPCURL, err)
	}

	listener := chain.NewListener(sub, decoder, sink, cfg, metrics)
	if err := listener.Start(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	return listener, sub.Close, nil
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return errors.New("database-url is required for migrate")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
