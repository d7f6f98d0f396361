package domain

import "strings"

// Priority is the single-character code stored for a task's priority.
type Priority string

// Supported priority codes.
const (
	PriorityHigh   Priority = "H"
	PriorityMedium Priority = "M"
	PriorityLow    Priority = "L"
)

// DefaultPriority is assigned to tasks created without an explicit priority.
const DefaultPriority = PriorityMedium

// priorityLabels is the code → display label table.
var priorityLabels = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// priorityAliases resolves lower-cased full words and labels to codes.
var priorityAliases = map[string]Priority{
	"high":   PriorityHigh,
	"medium": PriorityMedium,
	"low":    PriorityLow,
}

// Priorities returns every valid priority code, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the defined codes.
func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// Label returns the human-readable label for the code, or the raw code if it is unknown.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// NormalizePriority maps a full word ("HIGH") or a label ("High") to its code
// and upper-cases anything else, so "h" becomes "H". Matching is
// case-insensitive. The result is not checked; callers validate it against
// Priorities.
func NormalizePriority(s string) Priority {
	trimmed := strings.TrimSpace(s)
	if code, ok := priorityAliases[strings.ToLower(trimmed)]; ok {
		return code
	}
	return Priority(strings.ToUpper(trimmed))
}
