package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestDeriveFromStdin(t *testing.T) {
	out, _, err := execute(t, "enum MyEnum<A, B, C> { A(A), B(B), C(C) }", "derive")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "impl<A, B, C> std::fmt::Debug for MyEnum<A, B, C> {\n"), out)
	assert.Contains(t, out, `Self::A(..) => f.write_str("MyEnum::A(..)"),`)
}

func TestDeriveMalformed(t *testing.T) {
	out, stderr, err := execute(t, "struct Broken {", "derive")
	require.Error(t, err)

	assert.Empty(t, out)
	assert.Contains(t, stderr, "[malformed-declaration]")
}

func TestGenWritesSidecarFiles(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(src, "lib.rs"), []byte("#[derive(ShallowDebug)]\npub struct Token(u32);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plain.rs"), []byte("pub struct Plain;\n"), 0o644))

	_, _, err := execute(t, "", "gen", "-o", out, filepath.Join(src, "lib.rs"), filepath.Join(src, "plain.rs"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(out, "lib_shallow_debug.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `f.write_str("Token(..)")`)

	_, err = os.Stat(filepath.Join(out, "plain_shallow_debug.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheckReportsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.rs"), []byte("#[derive(ShallowDebug)]\nenum Bad {\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.rs"), []byte("#[derive(ShallowDebug)]\nenum Good { A }\n"), 0o644))

	_, stderr, err := execute(t, "", "check", dir)
	require.Error(t, err)

	assert.Contains(t, stderr, "bad.rs:")
	assert.Contains(t, stderr, "error: [malformed-declaration]")
	assert.NotContains(t, stderr, "good.rs")
}

func TestReadSourcesSkipsGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte("struct A;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib_shallow_debug.rs"), []byte("impl X {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# x\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target", "build.rs"), []byte("struct T;\n"), 0o644))

	files, err := readSources([]string{dir}, "_shallow_debug.rs")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "lib.rs"), files[0].Path)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "shallow-debug dev\n", out)
}

func TestCheckWarnsOnConditionalDerive(t *testing.T) {
	dir := t.TempDir()
	src := "#[cfg_attr(feature = \"dbg\", derive(ShallowDebug))]\nstruct Gated;\n\n#[derive(ShallowDebug)]\nstruct Plain;\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(src), 0o644))

	_, stderr, err := execute(t, "", "check", dir)
	require.NoError(t, err)

	assert.Contains(t, stderr, "lib.rs:2:1: warning: [conditional-derive] Gated derives ShallowDebug inside cfg_attr")
	assert.NotContains(t, stderr, "Plain")
}

func TestGenRejectsDuplicateOutputNames(t *testing.T) {
	a := filepath.Join(t.TempDir(), "lib.rs")
	b := filepath.Join(t.TempDir(), "lib.rs")
	out := t.TempDir()

	for _, p := range []string{a, b} {
		require.NoError(t, os.WriteFile(p, []byte("#[derive(ShallowDebug)]\nstruct A;\n"), 0o644))
	}

	_, stderr, err := execute(t, "", "gen", "-o", out, a, b)
	require.Error(t, err)
	assert.Contains(t, stderr, "error: [duplicate-output]")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
