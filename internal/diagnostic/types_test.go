package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shallow-debug/internal/decl"
	"shallow-debug/internal/gen"
	"shallow-debug/internal/parse"
)

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "file and position",
			diag: Diagnostic{Severity: DiagnosticError, Code: CodeMalformedDeclaration, Message: "missing }", File: "lib.rs", Pos: decl.Pos{Line: 3, Column: 5}},
			want: "lib.rs:3:5: error: [malformed-declaration] missing }",
		},
		{
			name: "file only",
			diag: Diagnostic{Severity: DiagnosticInfo, Code: CodeNoAnnotatedItems, Message: "no annotated items", File: "a.rs"},
			want: "a.rs: info: [no-annotated-items] no annotated items",
		},
		{
			name: "bare",
			diag: Diagnostic{Severity: DiagnosticWarning, Message: "careful"},
			want: "warning: careful",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnostics_AddFileError(t *testing.T) {
	var d Diagnostics

	malformed := &parse.MalformedDeclarationError{Pos: decl.Pos{Line: 2, Column: 1}, Reason: "missing }"}
	d.AddFileError("bad.rs", fmt.Errorf("wrapped: %w", malformed))
	d.AddFileError("gone.rs", errors.New("open gone.rs: no such file"))

	require.Len(t, d.Errors, 2)
	assert.Equal(t, CodeMalformedDeclaration, d.Errors[0].Code)
	assert.Equal(t, decl.Pos{Line: 2, Column: 1}, d.Errors[0].Pos)
	assert.Equal(t, "missing }", d.Errors[0].Message)
	assert.Equal(t, CodeIO, d.Errors[1].Code)
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "bad.rs:2:1: error: [malformed-declaration] missing }; gone.rs: error: [io] open gone.rs: no such file", err.Error())
}

func TestDiagnostics_AddFileErrorDuplicateOutput(t *testing.T) {
	var d Diagnostics

	err := &gen.FileError{Path: "b/lib.rs", Err: fmt.Errorf("%w: lib_shallow_debug.rs is also generated from a/lib.rs", gen.ErrDuplicateOutput)}
	d.AddFileError("b/lib.rs", err)

	require.Len(t, d.Errors, 1)
	assert.Equal(t, CodeDuplicateOutput, d.Errors[0].Code)
	assert.Contains(t, d.Errors[0].Message, "a/lib.rs")
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo(CodeGenerated, "struct A (unit fields)", "a.rs", decl.Pos{Line: 1, Column: 1})
	b.AddWarning("w", "warn", "b.rs", decl.Pos{})
	b.AddError("e", "err", "b.rs", decl.Pos{})

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticWarning, all[1].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)
}

func TestDiagnostics_ValidHasNoError(t *testing.T) {
	var d Diagnostics
	d.AddInfo(CodeGenerated, "ok", "", decl.Pos{})

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
