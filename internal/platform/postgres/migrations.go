package postgres

import "embed"

// MigrationsDir is the directory inside MigrationsFS that holds the goose SQL files.
const MigrationsDir = "migrations"

// MigrationsTable is the goose version table name.
const MigrationsTable = "schema_migrations"

// MigrationsFS contains the schema migrations compiled into the binary, so the
// server and the test helpers never depend on the working directory.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
