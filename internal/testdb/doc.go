// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database: connecting from DATABASE_URL, migrating the schema
// from the embedded goose files and isolating each test in a rolled-back
// transaction.
package testdb
