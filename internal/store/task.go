package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task. It assigns ID, CreatedAt and UpdatedAt on the
	// passed task. Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// List returns every task ordered by due date ascending, then creation time
	// descending. Returns an empty slice when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update writes every client-writable field of the task and refreshes
	// UpdatedAt. CreatedAt and AIInsight are never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs its queries on the given transaction.
	WithTx(tx *sql.Tx) TaskStore

	// DB returns the underlying connection pool, or nil when the store is bound
	// to a transaction.
	DB() *sql.DB
}
