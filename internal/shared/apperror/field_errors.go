package apperror

import (
	"sort"
	"strings"
)

// FieldErrors collects validation messages per JSON field name. It is
// rendered as-is in 400 responses: {"email": ["This Email is already in use."]}.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Err returns nil when nothing was collected so callers can `return fe.Err()`.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
