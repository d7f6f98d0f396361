package api

import (
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// TaskResponse is the external representation of a task.
type TaskResponse struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"created_at"`
	DueDate         *time.Time `json:"due_date"`
	Priority        string     `json:"priority"`
	PriorityDisplay string     `json:"priority_display"`
	IsRecurring     bool       `json:"is_recurring"`
	AIInsight       *string    `json:"ai_insight"`
}

// APIRootResponse lists the absolute URL of each resource collection.
type APIRootResponse struct {
	Tasks string `json:"tasks"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Completed:       task.Completed,
		CreatedAt:       task.CreatedAt,
		DueDate:         task.DueDate,
		Priority:        string(task.Priority),
		PriorityDisplay: task.PriorityDisplay(),
		IsRecurring:     task.IsRecurring,
		AIInsight:       task.AIInsight,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
