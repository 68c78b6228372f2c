package validation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error collects per-field validation messages for a single request.
type Error struct {
	Fields map[string]string
}

// Error joins the field messages sorted by field name.
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// fields accumulates messages while a request is checked.
type fields map[string]string

// percent records name when v is set and outside 0-100.
func (f fields) percent(name string, v *float64) {
	if v != nil && !validPercent(*v) {
		f[name] = name + " must be between 0 and 100"
	}
}

func (f fields) err() error {
	if len(f) == 0 {
		return nil
	}
	return &Error{Fields: f}
}
