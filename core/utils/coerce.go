package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FloatOrNil converts a raw feed value to a float pointer.
// Strings are parsed; anything unparseable (including NaN/Inf) becomes nil
// instead of an error, because suppliers routinely ship garbage in numeric fields.
func FloatOrNil(val any) *float64 {
	switch v := val.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// IntOrNil converts a raw feed value to an int pointer.
// Non-integer numeric input is rounded; parse failures become nil.
func IntOrNil(val any) *int {
	f := FloatOrNil(val)
	if f == nil {
		return nil
	}
	i := int(math.Round(*f))
	return &i
}

// CleanString trims whitespace and converts empty strings to nil.
// Non-string scalars are not stringified; a numeric product code must be
// handled by the caller via StringifyOrNil.
func CleanString(val any) *string {
	s, ok := val.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringifyOrNil renders scalar values (strings and numbers) as a trimmed
// string pointer. Suppliers sometimes send identifiers as JSON numbers.
func StringifyOrNil(val any) *string {
	switch v := val.(type) {
	case nil:
		return nil
	case string:
		return CleanString(v)
	case float64:
		// JSON numbers decode as float64; identifiers are effectively integers.
		if v == math.Trunc(v) {
			s := strconv.FormatInt(int64(v), 10)
			return &s
		}
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(v)
		return &s
	default:
		return nil
	}
}

// Truncate enforces a fixed column width in bytes. Values longer than max
// are cut and terminated with an ellipsis marker. The cut always lands on a
// rune boundary so accented supplier names never become invalid UTF-8.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := max
	ellipsis := ""
	if max > 3 {
		cut = max - 3
		ellipsis = "..."
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

// timeLayouts are tried in order when coercing feed timestamps.
// Suppliers mix RFC3339, date-only, and space-separated formats.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// TimeOrNil parses any recognizable date representation into a time pointer.
// Unparseable or absent input yields nil, never an error.
func TimeOrNil(val any) *time.Time {
	switch v := val.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case float64:
		// Unix seconds. Feeds that send epoch values send them as numbers.
		if v <= 0 {
			return nil
		}
		t := time.Unix(int64(v), 0).UTC()
		return &t
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}
