package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationsSourceDir is where new migration files are written by -migrate=create.
// Applied migrations are read from the copy embedded in the postgres package.
var migrationsSourceDir = filepath.Join("internal", "platform", "postgres", postgres.MigrationsDir)

var validMigrationCommands = []string{"up", "down", "reset", "status", "version", "create"}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit; the error is returned to main, which decides the exit code.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// handleMigrations handles the execution of database migrations.
// It's called from main() when migration-related flags are detected.
func handleMigrations(cfg *config.Config, migrateCmd, migrationName string, verbose, verifyOnly bool) error {
	if verifyOnly {
		slog.Info("Verifying migrations only (not applying)", "verbose", verbose)
		return executeMigration(cfg, "status", true)
	}

	if migrateCmd == "" {
		return fmt.Errorf("no migration operation specified")
	}

	slog.Info("Executing migrations", "command", migrateCmd, "verbose", verbose)

	var args []string
	if migrateCmd == "create" && migrationName != "" {
		args = append(args, migrationName)
	}
	return executeMigration(cfg, migrateCmd, verbose, args...)
}

// executeMigration runs a single goose command against the configured database.
func executeMigration(cfg *config.Config, command string, verbose bool, args ...string) error {
	migrationLogger := slog.Default().With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	if !isValidMigrationCommand(command) {
		migrationLogger.Error("Unknown migration command",
			"valid_commands", validMigrationCommands)
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, version, or create)",
			command,
		)
	}

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetVerbose(verbose)
	goose.SetTableName(postgres.MigrationsTable)

	// Creating a migration only touches the filesystem.
	if command == "create" {
		if len(args) == 0 || args[0] == "" {
			return fmt.Errorf("migration name is required for 'create' command")
		}
		goose.SetBaseFS(nil)
		goose.SetSequential(true)
		migrationLogger.Info("Creating new migration",
			"name", args[0],
			"type", "sql",
			"directory", migrationsSourceDir)
		if err := goose.Create(nil, migrationsSourceDir, args[0], "sql"); err != nil {
			return fmt.Errorf("migration command 'create' failed: %w", err)
		}
		return nil
	}

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command),
		"url", maskDatabaseURL(cfg.Database.URL),
		"host", extractHostFromURL(cfg.Database.URL))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
		migrationLogger.Info("Migration operation completed",
			"operation", fmt.Sprintf("goose %s", command),
			"duration_ms", time.Since(startTime).Milliseconds())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), databasePingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("database ping timed out after %s: %w", databasePingTimeout, err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	goose.SetBaseFS(postgres.MigrationsFS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	currentVersion := currentMigrationVersion(db, migrationLogger)

	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "reset":
		err = goose.Reset(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	case "version":
		err = goose.Version(db, postgres.MigrationsDir)
	}
	if err != nil {
		migrationLogger.Error("Migration command failed", "error", err)
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	if command == "up" || command == "down" || command == "reset" {
		newVersion := currentMigrationVersion(db, migrationLogger)
		migrationLogger.Info("Database schema version",
			"previous_version", currentVersion,
			"new_version", newVersion,
			"changed", newVersion != currentVersion)
	}

	return nil
}

// currentMigrationVersion returns the applied schema version, or -1 if it cannot be read.
func currentMigrationVersion(db *sql.DB, logger *slog.Logger) int64 {
	version, err := goose.GetDBVersion(db)
	if err != nil {
		logger.Warn("Failed to retrieve current migration version", "error", err)
		return -1
	}
	return version
}

func isValidMigrationCommand(command string) bool {
	for _, valid := range validMigrationCommands {
		if command == valid {
			return true
		}
	}
	return false
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
		return parsedURL.String()
	}

	return dbURL
}

// extractHostFromURL extracts the hostname from a database URL for logging
func extractHostFromURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "unknown"
	}

	return parsedURL.Hostname()
}
