// Package main provides the CLI entrypoint for shallow-debug.
//
// shallow-debug generates shallow `Debug` implementations for Rust types:
//   - Parses struct, enum and union declarations with tree-sitter
//   - Selects items annotated with #[derive(ShallowDebug)]
//   - Emits impls that print only the type and variant names, so no field
//     type or type parameter has to implement Debug
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	configPath  string
	verbose     bool
	fmtPath     string
	deriveNames []string
	jobs        int

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shallow-debug",
	Short: "Generate shallow Debug impls for Rust types",
	Long: `shallow-debug generates std::fmt::Debug implementations that print only
a type's name and, for enums, the active variant's name. Field values are never
formatted, so contained types need not implement Debug.

Output literals:
  struct S { .. }   S{..}
  struct S(..);     S(..)
  struct S;         S
  union U { .. }    U
  E::V { .. }       E::V{..}
  E::V(..)          E::V(..)
  E::V              E::V`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}

		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default .shallow-debug.yaml if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&fmtPath, "fmt-path", "", "path of the fmt module in generated code (e.g. core::fmt)")
	flags.StringSliceVar(&deriveNames, "derive", nil, "derive names that select items (repeatable)")
	flags.IntVarP(&jobs, "jobs", "j", 0, "files generated concurrently")

	genCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default stdout)")

	rootCmd.AddCommand(deriveCmd, genCmd, checkCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
