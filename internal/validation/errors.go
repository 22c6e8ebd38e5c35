package validation

import (
	"sort"
	"strings"
)

// Errors maps a field name to its messages
type Errors map[string][]string

// Add appends msg to field
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge copies every message from other into e
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

// Error lists the failing fields in name order
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
