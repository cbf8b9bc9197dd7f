// Package document defines the presentation documents exchanged by the
// integration pipeline: slide content, style themes, PDF style analyses and
// the integrated presentation they are merged into.
package document

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for every generated timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Truthy reports whether an optional JSON value counts as set.
// Absent values, null, false, 0 and "" are unset; objects and arrays are
// always set, even when empty.
func Truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch v[0] {
	case 'n':
		return string(v) != "null"
	case 'f':
		return string(v) != "false"
	case '"':
		return string(v) != `""`
	case '{', '[', 't':
		return true
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return true
	}
	return f != 0
}

// isObject reports whether raw holds a JSON object.
func isObject(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && v[0] == '{'
}
