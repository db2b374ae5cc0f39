package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"tradecapacity/internal/adapters/auth"
	emailPkg "tradecapacity/internal/adapters/email"
	web "tradecapacity/internal/adapters/http"
	"tradecapacity/internal/adapters/http/middleware"
	"tradecapacity/internal/adapters/http/perf"
	"tradecapacity/internal/adapters/storage"
	capacityStore "tradecapacity/internal/adapters/storage/capacity"
	"tradecapacity/internal/adapters/storage/fixtures"
	pageStore "tradecapacity/internal/adapters/storage/page"
	"tradecapacity/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// sweepInterval is how often idle sessions and rate-limit visitors are dropped.
const sweepInterval = time.Minute

type serveOptions struct {
	addr      string
	dbPath    string
	env       string
	staticDir string
	authMode  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tcm",
		Short:        "Trade Capacity Manager dashboard server",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Seed the store and serve the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(opts.env)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", envOrDefault("TCM_ADDR", ":8080"), "listen address")
	f.StringVar(&opts.dbPath, "db", envOrDefault("TCM_DB", storage.MemoryDSN), "SQLite database path")
	f.StringVar(&opts.env, "env", envOrDefault("TCM_ENV", "development"), "environment (development or production)")
	f.StringVar(&opts.staticDir, "static", os.Getenv("TCM_STATIC_DIR"), "serve static assets from this directory instead of the embedded copy")
	f.StringVar(&opts.authMode, "auth-mode", envOrDefault("TCM_AUTH_MODE", auth.ModePassThrough), "credential check: passthrough or demo")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(os.Getenv("TCM_ENV"))
			db, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := storage.MigrateDB(db, dbPath); err != nil {
				return err
			}
			v, err := storage.SchemaVersion(db)
			if err != nil {
				return err
			}
			slog.Info("migrated", "db", dbPath, "schema", v)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", envOrDefault("TCM_DB", "tradecapacity.db"), "SQLite database path")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tcm %s (schema %d)\n", version, storage.LatestSchemaVersion())
		},
	}
}

// setupLogging installs the default slog logger: JSON in production, text elsewhere.
func setupLogging(env string) {
	level := slog.LevelInfo
	if raw := os.Getenv("TCM_LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}
	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, hopts)
	if env == "production" {
		h = slog.NewJSONHandler(os.Stderr, hopts)
	}
	slog.SetDefault(slog.New(h))
}

func runServe(ctx context.Context, opts serveOptions) error {
	production := opts.env == "production"

	db, err := storage.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.MigrateDB(db, opts.dbPath); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, envInt("TCM_SLOW_QUERY_MS", storage.DefaultSlowQueryMs))

	stores := &web.Stores{
		CapacityStore: capacityStore.NewSQLiteStore(timedDB),
		PageStore:     pageStore.NewSQLiteStore(timedDB),
	}

	set, err := fixtures.Load()
	if err != nil {
		return err
	}
	seedDeps := orchestrators.SeedFixturesDeps{CapacityStore: stores.CapacityStore, PageStore: stores.PageStore}
	if err := orchestrators.ExecuteSeedFixtures(ctx, set, seedDeps); err != nil {
		return err
	}

	// Configure email sender
	resendKey := os.Getenv("TCM_RESEND_KEY")
	emailFrom := envOrDefault("TCM_RESEND_FROM", "Trade Capacity Manager <noreply@reynolds.com>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		slog.Info("email sender configured", "provider", "resend")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if production {
			slog.Warn("TCM_RESEND_KEY is not set, password reset email is disabled")
		}
	}

	switch strings.ToLower(opts.authMode) {
	case auth.ModeDemo:
		checker, err := auth.NewDemoAccounts(auth.DefaultDemoAccounts, bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		web.SetCredentialChecker(checker)
	case auth.ModePassThrough:
		web.SetCredentialChecker(auth.PassThrough{})
	default:
		return fmt.Errorf("unknown auth mode %q", opts.authMode)
	}

	csrfKey, err := web.LoadCSRFKey(os.Getenv("TCM_CSRF_KEY"), production)
	if err != nil {
		return err
	}

	cfg := web.Config{
		StaticDir:     opts.staticDir,
		CSRFKey:       csrfKey,
		Production:    production,
		RateLimit:     envInt("TCM_RATE_LIMIT", web.DefaultRateLimit),
		SlowRequestMs: envInt("TCM_SLOW_REQUEST_MS", middleware.DefaultSlowRequestMs),
	}
	if origins := os.Getenv("TCM_TRUSTED_ORIGINS"); origins != "" {
		cfg.TrustedOrigins = strings.Split(origins, ",")
	}

	metrics, err := middleware.NewMetrics(middleware.MetricsOptions{})
	if err != nil {
		return err
	}
	handler, err := web.NewMux(ctx, cfg, stores, collector, metrics)
	if err != nil {
		return err
	}
	defer web.Shutdown()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("server_start", "version", version, "addr", opts.addr, "env", opts.env,
		"db", opts.dbPath, "auth_mode", opts.authMode, "schema", storage.LatestSchemaVersion())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				web.Sweep()
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("server_stop")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", raw)
		return fallback
	}
	return n
}
