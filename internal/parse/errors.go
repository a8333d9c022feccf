package parse

import (
	"errors"
	"fmt"

	"shallow-debug/internal/decl"
)

// ErrMalformedDeclaration matches every *MalformedDeclarationError via errors.Is.
var ErrMalformedDeclaration = errors.New("malformed declaration")

// MalformedDeclarationError reports input that cannot be parsed as a type
// declaration.
type MalformedDeclarationError struct {
	Pos    decl.Pos
	Reason string
}

// Error returns "malformed declaration at line:col: reason".
func (e *MalformedDeclarationError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedDeclaration, e.Reason)
	}

	return fmt.Sprintf("%s at %s: %s", ErrMalformedDeclaration, e.Pos, e.Reason)
}

// Is reports whether target is ErrMalformedDeclaration.
func (e *MalformedDeclarationError) Is(target error) bool {
	return target == ErrMalformedDeclaration
}

func malformed(pos decl.Pos, format string, args ...any) error {
	return &MalformedDeclarationError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}
