package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn  func(ctx context.Context) ([]*domain.Task, error)
	CreateTaskFn func(ctx context.Context, changes domain.TaskChanges) (*domain.Task, error)
	GetTaskFn    func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, changes domain.TaskChanges) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) error
	PingFn       func(ctx context.Context) error

	// Default response values
	Tasks []*domain.Task
	Task  *domain.Task
	Err   error

	mu sync.Mutex

	// Call tracking for verification
	CreateCalls []domain.TaskChanges
	UpdateCalls []UpdateCall
	GetCalls    []int64
	DeleteCalls []int64
	ListCount   int
}

// UpdateCall records the arguments of one UpdateTask call.
type UpdateCall struct {
	ID      int64
	Changes domain.TaskChanges
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	m.ListCount++
	m.mu.Unlock()

	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.Err
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, changes domain.TaskChanges) (*domain.Task, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, changes)
	m.mu.Unlock()

	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, changes)
	}
	return m.Task, m.Err
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()

	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	changes domain.TaskChanges,
) (*domain.Task, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{ID: id, Changes: changes})
	m.mu.Unlock()

	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, changes)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}

// Ping implements service.TaskService
func (m *MockTaskService) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.Err
}
