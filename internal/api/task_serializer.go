package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// SerializerMode selects which fields a decoded body must contain.
type SerializerMode int

const (
	// ModeCreate requires every required field.
	ModeCreate SerializerMode = iota
	// ModeUpdate is a full update (PUT): required fields must be present.
	ModeUpdate
	// ModePartialUpdate is a PATCH: every field is optional.
	ModePartialUpdate
)

// Field error messages.
const (
	msgRequired       = "This field is required."
	msgNull           = "This field may not be null."
	msgBlank          = "This field may not be blank."
	msgInvalidString  = "Not a valid string."
	msgInvalidBoolean = "Must be a valid boolean."
	msgInvalidChoice  = "%q is not a valid choice."
	msgMaxLength      = "Ensure this field has no more than %d characters."
	msgDateTimeFormat = "Datetime has wrong format. Use one of these formats instead: " +
		"YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
)

// dueDateLayouts are tried in order. Layouts without an offset are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var nullLiteral = []byte("null")

var priorityChoiceTag = priorityChoices()

// DecodeTaskChanges turns the members of a JSON request object into a change set.
// Only client-writable fields are read; read-only and unknown keys are ignored.
// Every problem found is collected into the returned domain.ValidationErrors.
func DecodeTaskChanges(fields map[string]json.RawMessage, mode SerializerMode) (domain.TaskChanges, error) {
	var changes domain.TaskChanges
	errs := domain.ValidationErrors{}

	if raw, ok := fields[domain.FieldTitle]; ok {
		if title, msg := decodeTitle(raw); msg != "" {
			errs.Add(domain.FieldTitle, msg)
		} else {
			changes.Title = domain.Some(title)
		}
	} else if mode != ModePartialUpdate {
		errs.Add(domain.FieldTitle, msgRequired)
	}

	if raw, ok := fields[domain.FieldDescription]; ok {
		if desc, msg := decodeNullableString(raw); msg != "" {
			errs.Add(domain.FieldDescription, msg)
		} else {
			changes.Description = domain.Some(desc)
		}
	}

	if raw, ok := fields[domain.FieldCompleted]; ok {
		if v, msg := decodeBool(raw); msg != "" {
			errs.Add(domain.FieldCompleted, msg)
		} else {
			changes.Completed = domain.Some(v)
		}
	}

	if raw, ok := fields[domain.FieldDueDate]; ok {
		if due, msg := decodeDueDate(raw); msg != "" {
			errs.Add(domain.FieldDueDate, msg)
		} else {
			changes.DueDate = domain.Some(due)
		}
	}

	if raw, ok := fields[domain.FieldPriority]; ok {
		if p, msg := decodePriority(raw); msg != "" {
			errs.Add(domain.FieldPriority, msg)
		} else {
			changes.Priority = domain.Some(p)
		}
	}

	if raw, ok := fields[domain.FieldIsRecurring]; ok {
		if v, msg := decodeBool(raw); msg != "" {
			errs.Add(domain.FieldIsRecurring, msg)
		} else {
			changes.IsRecurring = domain.Some(v)
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return domain.TaskChanges{}, err
	}
	return changes, nil
}

// ParseDueDate parses a due date in any accepted layout.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Timestamp(t), true
		}
	}
	return time.Time{}, false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}

// decodeString returns the trimmed string value, or an error message.
func decodeString(raw json.RawMessage) (string, string) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", msgInvalidString
	}
	return strings.TrimSpace(s), ""
}

func decodeTitle(raw json.RawMessage) (string, string) {
	if isNull(raw) {
		return "", msgNull
	}
	title, msg := decodeString(raw)
	if msg != "" {
		return "", msg
	}
	if title == "" {
		return "", msgBlank
	}
	if err := shared.ValidateVar(title, fmt.Sprintf("max=%d", domain.MaxTitleLength)); err != nil {
		return "", fmt.Sprintf(msgMaxLength, domain.MaxTitleLength)
	}
	return title, ""
}

func decodeNullableString(raw json.RawMessage) (*string, string) {
	if isNull(raw) {
		return nil, ""
	}
	s, msg := decodeString(raw)
	if msg != "" {
		return nil, msg
	}
	return &s, ""
}

func decodeBool(raw json.RawMessage) (bool, string) {
	if isNull(raw) {
		return false, msgNull
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, msgInvalidBoolean
	}
	return b, ""
}

func decodeDueDate(raw json.RawMessage) (*time.Time, string) {
	if isNull(raw) {
		return nil, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, msgDateTimeFormat
	}
	if strings.TrimSpace(s) == "" {
		return nil, ""
	}
	t, ok := ParseDueDate(s)
	if !ok {
		return nil, msgDateTimeFormat
	}
	return &t, ""
}

func decodePriority(raw json.RawMessage) (domain.Priority, string) {
	if isNull(raw) {
		return "", msgNull
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Sprintf(msgInvalidChoice, strings.TrimSpace(string(raw)))
	}
	p := domain.NormalizePriority(s)
	if err := shared.ValidateVar(string(p), priorityChoiceTag); err != nil {
		return "", fmt.Sprintf(msgInvalidChoice, s)
	}
	return p, ""
}

// priorityChoices builds the validator tag accepting exactly the priority codes.
func priorityChoices() string {
	codes := make([]string, 0, len(domain.Priorities()))
	for _, p := range domain.Priorities() {
		codes = append(codes, string(p))
	}
	return "required,oneof=" + strings.Join(codes, " ")
}
