package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters allowed in a task title.
const MaxTitleLength = 255

// Field names as they appear in the external representation.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldDueDate     = "due_date"
	FieldPriority    = "priority"
	FieldIsRecurring = "is_recurring"
)

// Task is a single to-do item.
//
// AIInsight is populated by an external process and is never written through
// the API; it is only persisted and surfaced.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
	Priority    Priority   `json:"priority"`
	IsRecurring bool       `json:"is_recurring"`
	AIInsight   *string    `json:"ai_insight"`
}

// TaskChanges is the set of client-writable fields supplied for a create or update.
// Fields that were not supplied are left unset.
type TaskChanges struct {
	Title       Optional[string]
	Description Optional[*string]
	Completed   Optional[bool]
	DueDate     Optional[*time.Time]
	Priority    Optional[Priority]
	IsRecurring Optional[bool]
}

// NewTask builds a task from the supplied changes, filling in defaults for
// anything not set. ID and timestamps are assigned by the store.
// Returns ValidationErrors if the resulting task is invalid.
func NewTask(changes TaskChanges) (*Task, error) {
	task := &Task{
		Priority: DefaultPriority,
	}
	task.Apply(changes)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Apply copies every set field of changes onto the task.
// It does not touch ID, CreatedAt, UpdatedAt or AIInsight.
func (t *Task) Apply(changes TaskChanges) {
	if v, ok := changes.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := changes.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := changes.Completed.Get(); ok {
		t.Completed = v
	}
	if v, ok := changes.DueDate.Get(); ok {
		if v != nil {
			normalized := Timestamp(*v)
			v = &normalized
		}
		t.DueDate = v
	}
	if v, ok := changes.Priority.Get(); ok {
		t.Priority = v
	}
	if v, ok := changes.IsRecurring.Get(); ok {
		t.IsRecurring = v
	}
}

// Validate checks the task's fields against the schema rules.
// Returns ValidationErrors keyed by field name, or nil.
func (t *Task) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(t.Title) == "" {
		errs.Add(FieldTitle, "This field may not be blank.")
	} else if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		errs.Add(FieldTitle, fmt.Sprintf("Ensure this field has no more than %d characters.", MaxTitleLength))
	}

	if !t.Priority.IsValid() {
		errs.Add(FieldPriority, fmt.Sprintf("%q is not a valid choice.", string(t.Priority)))
	}

	return errs.ErrOrNil()
}

// PriorityDisplay returns the human-readable label for the task's priority.
func (t *Task) PriorityDisplay() string {
	return t.Priority.Label()
}

// String returns the task title.
func (t *Task) String() string {
	return t.Title
}

// Timestamp normalizes t to UTC at microsecond precision, matching what
// PostgreSQL stores so values survive a round trip unchanged.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
