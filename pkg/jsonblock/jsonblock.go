// Package jsonblock pulls a JSON object out of free-form model output.
package jsonblock

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoObject is returned when the text holds no brace-delimited span.
var ErrNoObject = errors.New("no json object in text")

// Extract returns the span from the first '{' to the last '}'.
func Extract(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// Decode extracts the object span and unmarshals it into a loose map.
func Decode(text string) (map[string]any, error) {
	block, ok := Extract(text)
	if !ok {
		return nil, ErrNoObject
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// String returns m[key] when it is a string.
func String(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the string elements of m[key] when it is an array,
// keeping at most limit of them.
func Strings(m map[string]any, key string, limit int) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if len(out) == limit {
			break
		}
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
