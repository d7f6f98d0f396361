package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

const taskEntity = "task"

const taskColumns = `id, title, description, completed, created_at, updated_at,
		due_date, priority, is_recurring, ai_insight`

// taskRow mirrors a row of the tasks table for struct scanning.
type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DueDate     sql.NullTime   `db:"due_date"`
	Priority    string         `db:"priority"`
	IsRecurring bool           `db:"is_recurring"`
	AIInsight   sql.NullString `db:"ai_insight"`
}

func (r taskRow) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		Priority:    domain.Priority(r.Priority),
		IsRecurring: r.IsRecurring,
	}
	if r.Description.Valid {
		task.Description = &r.Description.String
	}
	if r.DueDate.Valid {
		due := r.DueDate.Time.UTC()
		task.DueDate = &due
	}
	if r.AIInsight.Valid {
		task.AIInsight = &r.AIInsight.String
	}
	return task
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// timestamp returns the current time at the precision PostgreSQL stores.
func (s *PostgresTaskStore) timestamp() time.Time {
	return domain.Timestamp(s.now())
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	now := s.timestamp()

	query := `
		INSERT INTO tasks (title, description, completed, created_at, updated_at,
			due_date, priority, is_recurring, ai_insight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		now,
		now,
		task.DueDate,
		string(task.Priority),
		task.IsRecurring,
		task.AIInsight,
	).Scan(&id)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError(taskEntity, "create", "failed to insert task", MapError(err))
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now

	log.Debug("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("priority", string(task.Priority)))
	return nil
}

// List implements store.TaskStore.List
// Tasks without a due date sort after those with one.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY due_date ASC NULLS LAST, created_at DESC, id DESC
	`

	rows, err := s.queryTasks(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1
	`

	rows, err := s.queryTasks(ctx, query, id)
	if err != nil {
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	if len(rows) == 0 {
		log.Debug("task not found", slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}

	return rows[0].toDomain(), nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	updatedAt := s.timestamp()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, due_date = $4,
			priority = $5, is_recurring = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.DueDate,
		string(task.Priority),
		task.IsRecurring,
		updatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError(taskEntity, "update", "failed to update task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
		}
		return err
	}

	task.UpdatedAt = updatedAt

	log.Debug("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError(taskEntity, "delete", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for deletion", slog.Int64("task_id", id))
		}
		return err
	}

	log.Debug("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore instance that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}

// DB implements store.TaskStore.DB
func (s *PostgresTaskStore) DB() *sql.DB {
	if db, ok := s.db.(*sql.DB); ok {
		return db
	}
	return nil
}

// queryTasks runs a SELECT over taskColumns and scans every row.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]taskRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError(taskEntity, "query", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var result []taskRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, store.NewStoreError(taskEntity, "scan", "failed to scan task rows", err)
	}

	return result, nil
}
