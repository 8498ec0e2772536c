package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	web "shuttle/internal/adapters/http"
	"shuttle/internal/adapters/http/middleware"
	"shuttle/internal/adapters/http/perf"
	"shuttle/internal/adapters/storage"
	gameScheduleStore "shuttle/internal/adapters/storage/gameschedule"
	gameSessionStore "shuttle/internal/adapters/storage/gamesession"
	semesterStore "shuttle/internal/adapters/storage/semester"
	"shuttle/internal/config"
)

func newServeCmd() *cobra.Command {
	var envFile, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment defaults apply")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides "+config.EnvAddr+")")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// WAL mode, foreign keys and busy timeout on every pooled connection
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery)
	stores := &web.Stores{
		SemesterStore: semesterStore.NewSQLiteStore(timedDB),
		ScheduleStore: gameScheduleStore.NewSQLiteStore(timedDB),
		SessionStore:  gameSessionStore.NewSQLiteStore(timedDB),
	}
	handler, limiter := web.NewMux(stores, collector, cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweepVisitors(ctx, limiter)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("shuttle %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Env, storage.LatestSchemaVersion())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepVisitors drops idle rate-limit buckets once a minute until ctx ends.
func sweepVisitors(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(5 * time.Minute); n > 0 {
				slog.Debug("rate_limit_sweep", "removed", n)
			}
		}
	}
}
