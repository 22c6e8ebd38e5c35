package validation

import (
	"fmt"
	"time"
)

// Data is a validated record. Values carry the type their directives coerced
// them to: int64 for integer, float64 for numeric, bool for boolean,
// time.Time for date and []interface{} for array.
type Data map[string]interface{}

// Has reports whether key passed validation and was present in the input
func (d Data) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value of key as a string
func (d Data) String(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// StringPtr returns nil when key is null
func (d Data) StringPtr(key string) *string {
	s, ok := d[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Int returns the value of key as an int
func (d Data) Int(key string) int {
	if n, ok := d[key].(int64); ok {
		return int(n)
	}
	return 0
}

// IntPtr returns nil when key is null
func (d Data) IntPtr(key string) *int {
	n, ok := d[key].(int64)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

// UintPtr returns nil when key is null
func (d Data) UintPtr(key string) *uint {
	n, ok := d[key].(int64)
	if !ok || n < 0 {
		return nil
	}
	v := uint(n)
	return &v
}

// Float returns the value of key as a float64
func (d Data) Float(key string) float64 {
	switch n := d[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// Bool returns the value of key as a bool
func (d Data) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Time returns the value of key as a time
func (d Data) Time(key string) time.Time {
	t, _ := d[key].(time.Time)
	return t
}

// TimePtr returns nil when key is null
func (d Data) TimePtr(key string) *time.Time {
	t, ok := d[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// Strings returns the elements of an array value as strings
func (d Data) Strings(key string) []string {
	list, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
