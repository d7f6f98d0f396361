// Package main implements the entry point for the task manager API server,
// which stores to-do items in PostgreSQL and serves them over a JSON REST API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/joho/godotenv"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
)

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	migrate          string
	migrationName    string
	verbose          bool
	verifyMigrations bool
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&f.migrate, "migrate", "",
		"Run a database migration command and exit: up, down, reset, status, version, create")
	fs.StringVar(&f.migrationName, "name", "", "Name for the new migration file (used with -migrate=create)")
	fs.BoolVar(&f.verbose, "verbose", false, "Log additional detail while running migrations")
	fs.BoolVar(&f.verifyMigrations, "verify-migrations", false,
		"Check database connectivity and migration status without applying anything")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if flags.migrate != "" || flags.verifyMigrations {
		if err := handleMigrations(cfg, flags.migrate, flags.migrationName, flags.verbose, flags.verifyMigrations); err != nil {
			slog.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := startServer(ctx, cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"base_path", cfg.Server.BasePath)
	slog.Debug("Database configuration", "url", maskDatabaseURL(cfg.Database.URL))

	return cfg, nil
}

// startServer connects to the database, wires the application and serves
// HTTP until ctx is cancelled.
func startServer(ctx context.Context, cfg *config.Config) error {
	l := slog.Default()

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
