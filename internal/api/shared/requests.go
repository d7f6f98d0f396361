package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of a decoded request body.
const MaxRequestBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = validator.New()

// NotObjectError reports a well-formed JSON body whose top-level value is not an object.
type NotObjectError struct {
	// Kind is the name of the JSON value that was received instead (list, str, int, ...).
	Kind string
}

func (e *NotObjectError) Error() string {
	return fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", e.Kind)
}

// DecodeJSONObject reads the request body as a JSON object and returns its
// members undecoded, so callers can tell absent keys from explicit nulls.
// An empty body decodes to an empty object. Malformed JSON returns an error
// wrapping domain.ErrInvalidFormat; any other top-level value returns a *NotObjectError.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidFormat)
	}

	if trimmed[0] != '{' {
		return nil, &NotObjectError{Kind: jsonKind(trimmed)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return fields, nil
}

// jsonKind names the type of a valid JSON value the way the frontend expects
// to see it in error messages.
func jsonKind(raw []byte) string {
	switch raw[0] {
	case '[':
		return "list"
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	case 'n':
		return "NoneType"
	default:
		if bytes.ContainsAny(raw, ".eE") {
			return "float"
		}
		return "int"
	}
}

// ValidateVar validates a single value against a validator tag such as "max=255".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
