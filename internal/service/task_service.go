package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// TaskService provides the CRUD operations exposed by the task API.
type TaskService interface {
	// ListTasks returns every task in the default order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// CreateTask builds a task from changes and persists it.
	CreateTask(ctx context.Context, changes domain.TaskChanges) (*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask applies changes to an existing task and persists the result.
	// Fields not set in changes keep their current values.
	UpdateTask(ctx context.Context, id int64, changes domain.TaskChanges) (*domain.Task, error)

	// DeleteTask removes a task by its ID.
	DeleteTask(ctx context.Context, id int64) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// ListTasks returns every task in the default order.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// CreateTask builds a task from changes and saves it inside a transaction.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	changes domain.TaskChanges,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(changes)
	if err != nil {
		log.Debug("task failed validation", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.taskStore.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			log.Error("failed to create task in transaction", "error", err)
			return NewTaskServiceError("create_task", "failed to save task to database", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task created", "task_id", task.ID)
	return task, nil
}

// GetTask retrieves a task by its ID.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", "task_id", id)
			return nil, ErrTaskNotFound
		}
		log.Error("failed to retrieve task", "error", err, "task_id", id)
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// UpdateTask reads the task, applies changes, validates and saves it,
// all within a single transaction.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	changes domain.TaskChanges,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.taskStore.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		task.Apply(changes)
		if err := task.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, task); err != nil {
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			log.Debug("task not found for update", "task_id", id)
		case errors.Is(err, domain.ErrValidation):
			log.Debug("task update failed validation", "task_id", id, "error", err)
		default:
			log.Error("failed to update task", "task_id", id, "error", err)
		}
		return nil, err
	}

	log.Info("task updated", "task_id", id)
	return updated, nil
}

// DeleteTask removes a task by its ID.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for deletion", "task_id", id)
			return ErrTaskNotFound
		}
		log.Error("failed to delete task", "error", err, "task_id", id)
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", "task_id", id)
	return nil
}

// Ping checks that the backing database answers.
func (s *taskServiceImpl) Ping(ctx context.Context) error {
	db := s.taskStore.DB()
	if db == nil {
		return NewTaskServiceError("ping", "no database connection", errors.New("nil database"))
	}
	if err := db.PingContext(ctx); err != nil {
		return NewTaskServiceError("ping", "database unreachable", err)
	}
	return nil
}
