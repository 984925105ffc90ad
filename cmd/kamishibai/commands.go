package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/kamishibai/internal/clock"
	"github.com/mtlprog/kamishibai/internal/config"
	"github.com/mtlprog/kamishibai/internal/database"
	"github.com/mtlprog/kamishibai/internal/events"
	"github.com/mtlprog/kamishibai/internal/handler"
	"github.com/mtlprog/kamishibai/internal/middleware"
	"github.com/mtlprog/kamishibai/internal/repository"
	"github.com/mtlprog/kamishibai/internal/repository/memory"
	"github.com/mtlprog/kamishibai/internal/scheduler"
	"github.com/mtlprog/kamishibai/internal/service"
)

// app holds the wired dependencies shared by every command.
type app struct {
	store        service.Store
	cardService  *service.CardService
	boardService *service.BoardService

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// openStore connects the selected backend and applies migrations.
func openStore(c *cli.Context) (service.Store, func(), error) {
	switch c.String("store") {
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on exit")
		return memory.New(), func() {}, nil

	case config.StorePostgres, "":
		databaseURL := c.String("database-url")
		if databaseURL == "" {
			return nil, nil, errors.New("database URL is required for the postgres store")
		}

		db, err := database.New(c.Context, databaseURL, database.DefaultOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if _, err := database.RunMigrations(c.Context, db.Pool()); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		return repository.NewStore(db.Pool(), c.Duration("lock-timeout")), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", c.String("store"))
	}
}

func openPublisher(c *cli.Context) (events.Publisher, error) {
	url := c.String("nats-url")
	if url == "" {
		return events.Noop{}, nil
	}
	return events.ConnectNATS(events.NATSConfig{
		URL:     url,
		Token:   c.String("nats-token"),
		Subject: c.String("nats-subject"),
	})
}

func newApp(c *cli.Context) (*app, error) {
	loc, err := clock.LoadLocation(c.String("timezone"))
	if err != nil {
		return nil, err
	}
	clk := clock.NewSystem(loc)

	store, closeStore, err := openStore(c)
	if err != nil {
		return nil, err
	}
	a := &app{store: store, closers: []func(){closeStore}}

	publisher, err := openPublisher(c)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("failed to close publisher", "error", err)
		}
	})

	a.cardService = service.NewCardService(store, clk, publisher)
	a.boardService = service.NewBoardService(store, clk)

	slog.Info("clock configured", "timezone", loc.String(), "now", clk.Now())

	return a, nil
}

func runServe(c *cli.Context) error {
	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	interval := c.Duration("sweep-interval")
	if interval <= 0 {
		interval = config.DefaultSweepInterval
	}
	rateLimit := config.DefaultRateLimit
	if c.IsSet("rate-limit") {
		rateLimit = c.Int("rate-limit")
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	h := handler.New(a.cardService, a.boardService, a.store)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr: ":" + port,
		Handler: middleware.Chain(mux,
			middleware.Recover,
			middleware.Logging,
			middleware.CORS(c.StringSlice("cors-origins")),
			middleware.RateLimit(rateLimit),
		),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweeper := scheduler.New(interval, func(ctx context.Context) error {
		result, err := a.cardService.SweepDueResets(ctx)
		if err != nil {
			return err
		}
		return result.Err()
	})

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sweeper.Start(c.Context)

	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	// Let an in-flight sweep commit before requests stop being served.
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c.Context), config.DefaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server shutdown failed: %w", err))
	}

	slog.Info("server stopped")
	return runErr
}

func runSweep(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.cardService.SweepDueResets(c.Context)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("%d of %d cards failed to reset: %w", len(result.Failures), result.Candidates, err)
	}
	return nil
}

func runMigrate(c *cli.Context) error {
	if c.String("store") == config.StoreMemory {
		return errors.New("migrate requires the postgres store")
	}

	_, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	closeStore()

	slog.Info("migrations applied")
	return nil
}
