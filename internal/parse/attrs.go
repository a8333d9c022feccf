package parse

import (
	"slices"
	"strings"

	"shallow-debug/internal/common"
)

// hasDerive reports whether any outer attribute is a derive list naming one
// of names. Paths match on their last segment.
func hasDerive(attrs []string, names []string) bool {
	for _, attr := range attrs {
		for _, d := range deriveList(attr) {
			if slices.Contains(names, common.PathTail(d)) {
				return true
			}
		}
	}

	return false
}

// conditionalDerive finds a recognised derive inside
// #[cfg_attr(pred, derive(..))] and returns it as written.
func conditionalDerive(attrs []string, names []string) (string, bool) {
	for _, attr := range attrs {
		body, ok := attrBody(attr)
		if !ok {
			continue
		}

		args, ok := call(body, "cfg_attr")
		if !ok {
			continue
		}

		parts := splitTopLevel(args)
		if len(parts) < 2 {
			continue
		}

		for _, part := range parts[1:] {
			for _, d := range derives(part) {
				if slices.Contains(names, common.PathTail(d)) {
					return d, true
				}
			}
		}
	}

	return "", false
}

// cfgAttrs returns the #[cfg(..)] attributes among attrs with whitespace
// squashed. Returns nil when there are none.
func cfgAttrs(attrs []string) []string {
	var out []string

	for _, attr := range attrs {
		body, ok := attrBody(attr)
		if !ok {
			continue
		}

		if _, ok := call(body, "cfg"); ok {
			out = append(out, common.SquashSpace(attr))
		}
	}

	return out
}

// deriveList extracts the entries of `#[derive(A, b::C)]`.
// Returns nil for any other attribute.
func deriveList(attr string) []string {
	body, ok := attrBody(attr)
	if !ok {
		return nil
	}

	return derives(body)
}

// derives extracts the entries of `derive(A, b::C)`.
func derives(body string) []string {
	args, ok := call(body, "derive")
	if !ok {
		return nil
	}

	var out []string

	for _, part := range strings.Split(args, ",") {
		if part = common.SquashSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// attrBody strips `#[` and `]` from an outer attribute.
func attrBody(attr string) (string, bool) {
	s := strings.TrimSpace(attr)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return "", false
	}

	return strings.TrimSpace(s[1 : len(s)-1]), true
}

// call matches `name(args)` and returns args.
func call(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), name)
	if !ok {
		return "", false
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", false
	}

	return rest[1 : len(rest)-1], true
}

// splitTopLevel splits s on commas outside brackets and string literals.
func splitTopLevel(s string) []string {
	var (
		parts    []string
		depth    int
		inString bool
		start    int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}

	return parts
}
