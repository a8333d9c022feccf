package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"shallow-debug/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory, and any subdirectory a filename needs, if missing.
// Filenames must be local paths.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		if !filepath.IsLocal(file.Filename) {
			return fmt.Errorf("output file %s is outside %s", file.Filename, outputDir)
		}

		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// PrintFiles writes all generated files to w, each preceded by its name when
// there is more than one.
func PrintFiles(w io.Writer, files []GeneratedFile) error {
	for i, file := range files {
		if common.IsMultiple(files) {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintf(w, "// === %s ===\n", file.Filename); err != nil {
				return err
			}
		}

		if _, err := w.Write(file.Content); err != nil {
			return fmt.Errorf("writing %s: %w", file.Filename, err)
		}
	}

	return nil
}
