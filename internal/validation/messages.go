package validation

import (
	"strings"
)

var messages = map[string]string{
	"required":      "The :attribute field is required.",
	"required_with": "The :attribute field is required when :other is present.",
	"string":        "The :attribute field must be a string.",
	"integer":       "The :attribute field must be an integer.",
	"numeric":       "The :attribute field must be a number.",
	"boolean":       "The :attribute field must be true or false.",
	"array":         "The :attribute field must be an array.",
	"date":          "The :attribute field must be a valid date.",
	"email":         "The :attribute field must be a valid email address.",
	"url":           "The :attribute field must be a valid URL.",
	"in":            "The selected :attribute is invalid.",
	"after":         "The :attribute field must be a date after :other.",
	"before":        "The :attribute field must be a date before :other.",
	"confirmed":     "The :attribute field confirmation does not match.",
	"same":          "The :attribute field must match :other.",
	"exists":        "The selected :attribute is invalid.",
	"unique":        "The :attribute has already been taken.",
}

var sizeMessages = map[string]map[sizeKind]string{
	"min": {
		sizeString:  "The :attribute field must be at least :param characters.",
		sizeNumeric: "The :attribute field must be at least :param.",
		sizeArray:   "The :attribute field must have at least :param items.",
	},
	"max": {
		sizeString:  "The :attribute field must not be greater than :param characters.",
		sizeNumeric: "The :attribute field must not be greater than :param.",
		sizeArray:   "The :attribute field must not have more than :param items.",
	},
}

// Attribute turns a field name into its human form
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func messageFor(field string, d directive, kind sizeKind) string {
	var text string
	if bySize, ok := sizeMessages[d.name]; ok {
		text = bySize[kind]
	} else if m, ok := messages[d.name]; ok {
		text = m
	} else {
		text = "The :attribute field is invalid."
	}

	return strings.NewReplacer(
		":attribute", Attribute(field),
		":other", Attribute(d.param(0)),
		":param", d.param(0),
	).Replace(text)
}
