// Package validation evaluates per-field directive lists against an untyped
// input record and produces either a coerced record or field-keyed messages.
//
// Directives use a "name:param,param" form, for example
//
//	validation.Rules{
//		"title":    {"required", "string", "max:255"},
//		"end_date": {"required", "date", "after:start_date"},
//		"event_id": {"required", "integer", "exists:events,id"},
//	}
//
// Evaluation of a field stops at its first failing directive.
package validation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Rules maps a field name to its ordered directives
type Rules map[string][]string

// Input is a raw decoded request body
type Input map[string]interface{}

// Lookup answers storage questions for the exists and unique directives
type Lookup interface {
	Exists(ctx context.Context, table, column string, value interface{}) (bool, error)
	Unique(ctx context.Context, table, column string, value interface{}, ignoreID uint) (bool, error)
}

// Validator evaluates Rules against Input
type Validator struct {
	lookup Lookup
	check  *validator.Validate
}

// New creates a Validator. lookup may be nil when no rule uses exists or unique.
func New(lookup Lookup) *Validator {
	return &Validator{
		lookup: lookup,
		check:  validator.New(),
	}
}

type directive struct {
	name   string
	params []string
}

func parse(raw string) directive {
	name, params, found := strings.Cut(raw, ":")
	d := directive{name: name}
	if found {
		d.params = strings.Split(params, ",")
	}
	return d
}

func (d directive) param(i int) string {
	if i < len(d.params) {
		return d.params[i]
	}
	return ""
}

// Validate evaluates every field in rules. It returns Errors when any field
// fails, or another error when a lookup fails or a directive is unknown.
func (v *Validator) Validate(ctx context.Context, rules Rules, input Input) (Data, error) {
	input = normalize(input)

	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	data := Data{}
	errs := Errors{}
	for _, field := range fields {
		directives := make([]directive, 0, len(rules[field]))
		for _, raw := range rules[field] {
			directives = append(directives, parse(raw))
		}

		value, keep, msg, err := v.evaluate(ctx, field, directives, input)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			errs.Add(field, msg)
			continue
		}
		if keep {
			data[field] = value
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return data, nil
}

// normalize trims strings and turns blank strings into null
func normalize(input Input) Input {
	out := make(Input, len(input))
	for k, val := range input {
		s, ok := val.(string)
		if !ok {
			out[k] = val
			continue
		}
		if !strings.Contains(k, "password") {
			s = strings.TrimSpace(s)
		}
		if s == "" {
			out[k] = nil
			continue
		}
		out[k] = s
	}
	return out
}

func isEmpty(val interface{}, present bool) bool {
	if !present || val == nil {
		return true
	}
	switch t := val.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

func has(directives []directive, name string) bool {
	for _, d := range directives {
		if d.name == name {
			return true
		}
	}
	return false
}

// evaluate runs one field. keep reports whether the field belongs in the output.
func (v *Validator) evaluate(ctx context.Context, field string, directives []directive, input Input) (value interface{}, keep bool, msg string, err error) {
	raw, present := input[field]
	if has(directives, "sometimes") && !present {
		return nil, false, "", nil
	}

	empty := isEmpty(raw, present)
	for _, d := range directives {
		switch d.name {
		case "required":
			if empty {
				return nil, false, messageFor(field, d, sizeString), nil
			}
		case "required_with":
			other, ok := input[d.param(0)]
			if empty && !isEmpty(other, ok) {
				return nil, false, messageFor(field, d, sizeString), nil
			}
		}
	}

	if !present {
		return nil, false, "", nil
	}
	if raw == nil && has(directives, "nullable") {
		return nil, true, "", nil
	}

	kind := sizeString
	switch {
	case has(directives, "integer"), has(directives, "numeric"):
		kind = sizeNumeric
	case has(directives, "array"):
		kind = sizeArray
	}

	value = raw
	for _, d := range directives {
		var ok bool
		switch d.name {
		case "sometimes", "nullable", "required", "required_with":
			continue
		case "string":
			_, ok = value.(string)
		case "integer":
			value, ok = toInteger(value)
		case "numeric":
			value, ok = toNumber(value)
		case "boolean":
			value, ok = toBoolean(value)
		case "array":
			_, ok = value.([]interface{})
		case "date":
			value, ok = toDate(value)
		case "email":
			s, isString := value.(string)
			ok = isString && v.check.Var(s, "email") == nil
		case "url":
			s, isString := value.(string)
			ok = isString && v.check.Var(s, "url") == nil
		case "in":
			ok = contains(d.params, fmt.Sprint(value))
		case "min", "max":
			ok, err = compareSize(value, kind, d)
			if err != nil {
				return nil, false, "", err
			}
		case "after", "before":
			ok = compareDate(value, input[d.param(0)], d.name)
		case "confirmed":
			confirmation, found := input[field+"_confirmation"]
			ok = found && fmt.Sprint(confirmation) == fmt.Sprint(raw)
		case "same":
			other, found := input[d.param(0)]
			ok = found && fmt.Sprint(other) == fmt.Sprint(raw)
		case "exists":
			if v.lookup == nil {
				return nil, false, "", fmt.Errorf("validation: %s needs a lookup", d.name)
			}
			ok, err = v.lookup.Exists(ctx, d.param(0), columnFor(d, field), value)
			if err != nil {
				return nil, false, "", fmt.Errorf("validation: exists lookup for %s: %w", field, err)
			}
		case "unique":
			if v.lookup == nil {
				return nil, false, "", fmt.Errorf("validation: %s needs a lookup", d.name)
			}
			var ignoreID uint64
			if p := d.param(2); p != "" {
				ignoreID, _ = strconv.ParseUint(p, 10, 64)
			}
			ok, err = v.lookup.Unique(ctx, d.param(0), columnFor(d, field), value, uint(ignoreID))
			if err != nil {
				return nil, false, "", fmt.Errorf("validation: unique lookup for %s: %w", field, err)
			}
		default:
			return nil, false, "", fmt.Errorf("validation: unknown directive %q on %s", d.name, field)
		}

		if !ok {
			return nil, false, messageFor(field, d, kind), nil
		}
	}

	return value, true, "", nil
}

func columnFor(d directive, field string) string {
	if c := d.param(1); c != "" {
		return c
	}
	return field
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func compareDate(value, other interface{}, op string) bool {
	current, ok := toDate(value)
	if !ok {
		return false
	}
	ref, ok := toDate(other)
	if !ok {
		// ordering against an absent or malformed sibling is left to the sibling's own rules
		return true
	}
	if op == "after" {
		return current.(time.Time).After(ref.(time.Time))
	}
	return current.(time.Time).Before(ref.(time.Time))
}
