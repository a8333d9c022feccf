package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "lib_shallow_debug.rs", Content: []byte("impl A {}\n")},
		{Filename: filepath.Join("nested", "mod_shallow_debug.rs"), Content: []byte("impl B {}\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "lib_shallow_debug.rs"))
	require.NoError(t, err)
	assert.Equal(t, "impl A {}\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "nested", "mod_shallow_debug.rs"))
	require.NoError(t, err)
	assert.Equal(t, "impl B {}\n", string(got))
}

func TestWriteFiles_RejectsPathsOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")

	err := WriteFiles([]GeneratedFile{
		{Filename: filepath.Join("..", "escaped_shallow_debug.rs"), Content: []byte("impl A {}\n")},
	}, dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "escaped_shallow_debug.rs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintFiles(t *testing.T) {
	var single bytes.Buffer
	require.NoError(t, PrintFiles(&single, []GeneratedFile{{Filename: "a.rs", Content: []byte("A\n")}}))
	assert.Equal(t, "A\n", single.String())

	var multi bytes.Buffer
	require.NoError(t, PrintFiles(&multi, []GeneratedFile{
		{Filename: "a.rs", Content: []byte("A\n")},
		{Filename: "b.rs", Content: []byte("B\n")},
	}))
	assert.Equal(t, "// === a.rs ===\nA\n\n// === b.rs ===\nB\n", multi.String())
}
