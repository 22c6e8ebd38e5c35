package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/albretostimbung/naraicoderbe/internal/settingtype"
)

type sizeKind int

const (
	sizeString sizeKind = iota
	sizeNumeric
	sizeArray
)

// DateLayouts are the accepted date and datetime input formats
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func toInteger(val interface{}) (interface{}, bool) {
	switch t := val.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t != math.Trunc(t) || t >= math.MaxInt64 || t < math.MinInt64 {
			return nil, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return nil, false
}

func toNumber(val interface{}) (interface{}, bool) {
	switch t := val.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		if settingtype.Check(t, settingtype.Number) != nil {
			return nil, false
		}
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return nil, false
}

func toBoolean(val interface{}) (interface{}, bool) {
	switch t := val.(type) {
	case bool:
		return t, true
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case int:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case string:
		switch t {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return nil, false
}

func toDate(val interface{}) (interface{}, bool) {
	switch t := val.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		for _, layout := range DateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return nil, false
}

func compareSize(val interface{}, kind sizeKind, d directive) (bool, error) {
	limit, err := strconv.ParseFloat(d.param(0), 64)
	if err != nil {
		return false, fmt.Errorf("validation: %s needs a numeric parameter, got %q", d.name, d.param(0))
	}

	var size float64
	switch kind {
	case sizeNumeric:
		switch t := val.(type) {
		case int64:
			size = float64(t)
		case float64:
			size = t
		default:
			n, ok := toNumber(val)
			if !ok {
				return false, nil
			}
			size = n.(float64)
		}
	case sizeArray:
		list, ok := val.([]interface{})
		if !ok {
			return false, nil
		}
		size = float64(len(list))
	default:
		s, ok := val.(string)
		if !ok {
			s = fmt.Sprint(val)
		}
		size = float64(utf8.RuneCountInString(s))
	}

	if d.name == "min" {
		return size >= limit, nil
	}
	return size <= limit, nil
}
