package valid

import "strings"

// Cause is a single validation failure together with the trace of the
// pipeline segments it bubbled through.
type Cause struct {
	Message string
	Trace   []string
}

// NewCause creates a cause with an empty trace.
func NewCause(message string) Cause {
	return Cause{Message: message}
}

// WithTrace returns a copy of the cause with the given trace segments.
func (c Cause) WithTrace(segments ...string) Cause {
	c.Trace = append(segments, c.Trace...)
	return c
}

// Error is the user-visible validation failure. It always carries at least
// one cause.
type Error struct {
	causes []Cause
}

// NewError creates an Error from one or more causes.
func NewError(causes ...Cause) *Error {
	return &Error{causes: causes}
}

// Causes returns the underlying causes.
func (e *Error) Causes() []Cause {
	return e.causes
}

// Combine appends the causes of other onto e.
func (e *Error) Combine(other *Error) *Error {
	if other == nil {
		return e
	}
	return &Error{causes: append(append([]Cause{}, e.causes...), other.causes...)}
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("Validation Error\n")
	for _, cause := range e.causes {
		sb.WriteString("• ")
		sb.WriteString(cause.Message)
		if len(cause.Trace) > 0 {
			sb.WriteString(" [")
			sb.WriteString(strings.Join(cause.Trace, ", "))
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
