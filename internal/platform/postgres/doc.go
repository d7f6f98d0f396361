// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. It owns the embedded goose migrations for the
// tasks table and maps driver errors onto the store package's sentinels.
package postgres
