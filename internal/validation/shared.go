package validation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error collects field-specific validation failures of a request body.
type Error struct {
	Fields map[string]string
}

// Error lists the failures ordered by field name.
func (e *Error) Error() string {
	fields := slices.Sorted(maps.Keys(e.Fields))
	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
