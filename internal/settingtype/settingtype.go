// Package settingtype checks that a raw setting value parses as its declared type.
package settingtype

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Declared setting types
const (
	String  = "string"
	Number  = "number"
	Boolean = "boolean"
	JSON    = "json"
)

// Types lists every accepted type tag
var Types = []string{String, Number, Boolean, JSON}

var (
	ErrNotNumber  = errors.New("Value must be a number")
	ErrNotBoolean = errors.New("Value must be a boolean")
	ErrNotJSON    = errors.New("Value must be a valid JSON string")
)

// decimal notation with optional sign, fraction and exponent; no hex, inf or nan
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Check returns nil when value parses as typ. Unknown tags behave like string.
func Check(value, typ string) error {
	switch typ {
	case Number:
		if !numberPattern.MatchString(strings.TrimSpace(value)) {
			return ErrNotNumber
		}
	case Boolean:
		switch strings.ToLower(value) {
		case "true", "false", "1", "0":
		default:
			return ErrNotBoolean
		}
	case JSON:
		if !json.Valid([]byte(value)) {
			return ErrNotJSON
		}
	}
	return nil
}
