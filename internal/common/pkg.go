package common

import "strings"

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// PathTail returns the last segment of a Rust path ("a::b::C" -> "C").
// Returns empty string if path is empty.
func PathTail(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	if i := strings.LastIndex(path, "::"); i >= 0 {
		return strings.TrimSpace(path[i+2:])
	}

	return path
}

// SquashSpace collapses every whitespace run to a single space and trims the
// result.
func SquashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
