package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shallow-debug/internal/config"
	"shallow-debug/internal/decl"
	"shallow-debug/internal/diagnostic"
	"shallow-debug/internal/gen"
	"shallow-debug/internal/parse"
)

var outDir string

var deriveCmd = &cobra.Command{
	Use:   "derive [file|-]",
	Short: "Print the impl for a single declaration",
	Long: `Reads exactly one struct, enum or union declaration from a file or stdin
and prints its shallow Debug implementation. Attributes are not required.

Example:
  echo 'enum E<A> { X(A), Y }' | shallow-debug derive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDerive,
}

var genCmd = &cobra.Command{
	Use:   "gen [paths...]",
	Short: "Generate impls for every #[derive(ShallowDebug)] item",
	Long: `Scans Rust files (directories are walked for *.rs) for items annotated
with a recognised derive and writes one <name>_shallow_debug.rs file per source
file that has any. Without -o the generated code is printed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGen,
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Parse files and report malformed declarations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "shallow-debug", version)
	},
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("fmt-path") {
		cfg.FmtPath = fmtPath
	}

	if flags.Changed("derive") {
		cfg.Derive = deriveNames
	}

	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}

	if flags.Changed("out") {
		cfg.Output.Dir = outDir
	}

	return cfg, nil
}

func newGenerator(cfg *config.Config) *gen.Generator {
	gc := cfg.GeneratorConfig()
	gc.Logger = logger

	return gen.NewGenerator(gc)
}

func runDerive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	var src []byte
	if name == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(name)
	}

	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	impl, err := newGenerator(cfg).Derive(cmd.Context(), src)
	if err != nil {
		return report(cmd, name, err)
	}

	_, err = cmd.OutOrStdout().Write(impl)

	return err
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := readSources(args, cfg.Output.Suffix)
	if err != nil {
		return err
	}

	logger.Debug("generating", zap.Int("files", len(files)), zap.Strings("derive", cfg.Derive))

	generated, err := newGenerator(cfg).GenerateFiles(cmd.Context(), files)
	if err != nil {
		return report(cmd, "", err)
	}

	if cfg.Output.Dir == "" {
		return gen.PrintFiles(cmd.OutOrStdout(), generated)
	}

	if err := gen.WriteFiles(generated, cfg.Output.Dir); err != nil {
		return err
	}

	for _, f := range generated {
		logger.Info("wrote file",
			zap.String("file", filepath.Join(cfg.Output.Dir, f.Filename)),
			zap.Strings("types", f.Types))
	}

	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := readSources(args, cfg.Output.Suffix)
	if err != nil {
		return err
	}

	parser := parse.NewParser(cfg.Derive...)

	var diags diagnostic.Diagnostics
	for _, f := range files {
		diags.Merge(checkFile(cmd.Context(), parser, f))
	}

	out := cmd.ErrOrStderr()
	for _, d := range diags.All() {
		if d.Severity == diagnostic.DiagnosticInfo && !verbose {
			continue
		}

		fmt.Fprintln(out, d.String())
	}

	return diags.Error()
}

// checkFile scans one file and describes what gen would do with it.
func checkFile(ctx context.Context, parser *parse.Parser, f gen.SourceFile) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	scan, err := parser.Scan(ctx, f.Content)
	if err != nil {
		diags.AddFileError(f.Path, err)
		return diags
	}

	for _, g := range scan.Gated {
		diags.AddWarning(diagnostic.CodeConditionalDerive,
			fmt.Sprintf("%s derives %s inside cfg_attr and is not generated; use #[cfg(..)] on a plain derive instead", g.Path, g.Derive),
			f.Path, g.Pos)
	}

	if len(scan.Declarations) == 0 {
		diags.AddInfo(diagnostic.CodeNoAnnotatedItems, "no annotated items", f.Path, decl.Pos{})
		return diags
	}

	for _, d := range scan.Declarations {
		diags.AddInfo(diagnostic.CodeGenerated, d.Summary(), f.Path, d.Pos)
	}

	return diags
}

// report prints err as a diagnostic and returns it.
func report(cmd *cobra.Command, file string, err error) error {
	var fileErr *gen.FileError
	if errors.As(err, &fileErr) {
		file = fileErr.Path
	}

	var diags diagnostic.Diagnostics
	diags.AddFileError(file, err)

	for _, d := range diags.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}

	return err
}

// readSources expands paths into Rust source files. Directories are walked
// for *.rs files, skipping previously generated outputs.
func readSources(paths []string, suffix string) ([]gen.SourceFile, error) {
	var files []gen.SourceFile

	add := func(path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		files = append(files, gen.SourceFile{Path: path, Content: content})

		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		if !info.IsDir() {
			if err := add(p); err != nil {
				return nil, err
			}

			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != p && (d.Name() == "target" || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if !strings.HasSuffix(path, ".rs") || strings.HasSuffix(path, suffix) {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	return files, nil
}
