package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"shallow-debug/internal/common"
	"shallow-debug/internal/decl"
	"shallow-debug/internal/gen"
	"shallow-debug/internal/parse"
)

// Diagnostic codes.
const (
	CodeMalformedDeclaration = "malformed-declaration"
	CodeNoAnnotatedItems     = "no-annotated-items"
	CodeGenerated            = "generated"
	CodeConditionalDerive    = "conditional-derive"
	CodeDuplicateOutput      = "duplicate-output"
	CodeIO                   = "io"
)

// Diagnostics holds all diagnostic information from one CLI run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// File is the source file this relates to (if any).
	File string
	// Pos is the position inside File (zero if unknown).
	Pos decl.Pos
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, file string, pos decl.Pos) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, file string, pos decl.Pos) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, file string, pos decl.Pos) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddFileError records err for file. Malformed declarations keep their
// position; anything else is reported as an I/O error.
func (d *Diagnostics) AddFileError(file string, err error) {
	var malformed *parse.MalformedDeclarationError
	if errors.As(err, &malformed) {
		d.AddError(CodeMalformedDeclaration, malformed.Reason, file, malformed.Pos)
		return
	}

	if errors.Is(err, gen.ErrDuplicateOutput) {
		d.AddError(CodeDuplicateOutput, err.Error(), file, decl.Pos{})
		return
	}

	d.AddError(CodeIO, err.Error(), file, decl.Pos{})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// String returns a formatted diagnostic string such as
// "lib.rs:3:5: error: [malformed-declaration] missing }".
func (d Diagnostic) String() string {
	var prefix string

	switch {
	case d.File != "" && d.Pos.Line > 0:
		prefix = d.File + ":" + d.Pos.String() + ": "
	case d.File != "":
		prefix = d.File + ": "
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	return prefix + d.Severity.String() + ": " + msg
}
