// Package store defines the persistence contract for tasks. The interfaces
// and sentinel errors here keep the service layer independent of PostgreSQL;
// platform/postgres provides the implementation.
package store
