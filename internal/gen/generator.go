package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shallow-debug/internal/decl"
	"shallow-debug/internal/parse"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FmtPath is the module path of the formatting traits, e.g. "std::fmt" or "core::fmt".
	FmtPath string
	// DeriveNames are the derive attribute names that select items in a file.
	DeriveNames []string
	// OutputSuffix replaces the ".rs" extension of a source file to name its output.
	OutputSuffix string
	// Header enables the "Code generated" comment at the top of generated files.
	Header bool
	// Jobs bounds the number of files generated concurrently.
	Jobs int
	// Logger receives debug output. Nil means no logging.
	Logger *zap.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FmtPath:      "std::fmt",
		DeriveNames:  []string{parse.DefaultDeriveName},
		OutputSuffix: "_shallow_debug.rs",
		Header:       true,
		Jobs:         4,
	}
}

// Generator generates shallow Debug implementations.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	config GeneratorConfig
	parser *parse.Parser
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
// Zero-valued fields fall back to DefaultGeneratorConfig.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if config.FmtPath == "" {
		config.FmtPath = def.FmtPath
	}

	if len(config.DeriveNames) == 0 {
		config.DeriveNames = def.DeriveNames
	}

	if config.OutputSuffix == "" {
		config.OutputSuffix = def.OutputSuffix
	}

	if config.Jobs <= 0 {
		config.Jobs = def.Jobs
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		config: config,
		parser: parse.NewParser(config.DeriveNames...),
		logger: logger,
	}
}

// SourceFile is one Rust source given to GenerateFiles.
type SourceFile struct {
	// Path is used for naming the output and in error messages.
	Path    string
	Content []byte
}

// GeneratedFile represents a generated Rust source file.
type GeneratedFile struct {
	// Filename is the output name relative to the output directory
	// (e.g., "src/model_shallow_debug.rs").
	Filename string
	// Source is the path of the input file.
	Source string
	// Types lists the names of the types implemented, in source order.
	Types []string
	// Content is the generated Rust source.
	Content []byte
}

// ErrDuplicateOutput reports two source files that map to one output file.
var ErrDuplicateOutput = errors.New("duplicate output file")

// FileError attaches the source path to a generation failure.
type FileError struct {
	Path string
	Err  error
}

// Error returns "path: err".
func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Derive parses src as one type declaration and returns its implementation.
func Derive(src []byte) ([]byte, error) {
	return NewGenerator(DefaultGeneratorConfig()).Derive(context.Background(), src)
}

// Derive parses src as one type declaration and returns its implementation.
// Nothing is returned when src is malformed.
func (g *Generator) Derive(ctx context.Context, src []byte) ([]byte, error) {
	d, err := g.parser.Declaration(ctx, src)
	if err != nil {
		return nil, err
	}

	return g.Emit(d)
}

// Emit renders the implementation for an already parsed declaration.
func (g *Generator) Emit(d *decl.TypeDeclaration) ([]byte, error) {
	data := implData{
		Cfg:       d.Cfg,
		Fmt:       g.config.FmtPath,
		Target:    d.Path(),
		Signature: buildSignature(d),
		Body:      buildBody(d),
	}

	var buf bytes.Buffer
	if err := implTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", d.Name, err)
	}

	g.logger.Debug("emitted impl",
		zap.String("type", d.Summary()),
		zap.Int("predicates", len(data.Signature.Predicates)))

	return buf.Bytes(), nil
}

// GenerateFile emits implementations for every annotated item of one file.
// It returns nil when the file has no annotated item.
func (g *Generator) GenerateFile(ctx context.Context, file SourceFile) (*GeneratedFile, error) {
	scan, err := g.parser.Scan(ctx, file.Content)
	if err != nil {
		return nil, &FileError{Path: file.Path, Err: err}
	}

	for _, gated := range scan.Gated {
		g.logger.Warn("derive inside cfg_attr is not generated",
			zap.String("file", file.Path),
			zap.String("type", gated.Path),
			zap.Stringer("pos", gated.Pos))
	}

	decls := scan.Declarations

	if len(decls) == 0 {
		g.logger.Debug("no annotated items", zap.String("file", file.Path))
		return nil, nil
	}

	var buf bytes.Buffer
	if g.config.Header {
		fmt.Fprintf(&buf, "// Code generated by shallow-debug from %s. DO NOT EDIT.\n\n", filepath.Base(file.Path))
	}

	out := &GeneratedFile{
		Filename: g.outputName(file.Path),
		Source:   file.Path,
	}

	for i := range decls {
		impl, err := g.Emit(&decls[i])
		if err != nil {
			return nil, &FileError{Path: file.Path, Err: err}
		}

		if i > 0 {
			buf.WriteByte('\n')
		}

		buf.Write(impl)
		out.Types = append(out.Types, decls[i].Name)
	}

	out.Content = buf.Bytes()

	g.logger.Debug("generated file",
		zap.String("file", file.Path),
		zap.String("output", out.Filename),
		zap.Strings("types", out.Types))

	return out, nil
}

// GenerateFiles runs GenerateFile over files concurrently. The result keeps
// input order and skips files without annotated items. Any error aborts the
// whole batch; the earliest failing file in input order is reported. Two
// inputs mapping to the same output name fail with ErrDuplicateOutput.
func (g *Generator) GenerateFiles(ctx context.Context, files []SourceFile) ([]GeneratedFile, error) {
	results := make([]*GeneratedFile, len(files))
	errs := make([]error, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Jobs)

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			res, err := g.GenerateFile(egCtx, file)
			if err != nil {
				errs[i] = err
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}

		return nil, err
	}

	out := make([]GeneratedFile, 0, len(files))
	sources := make(map[string]string, len(files))

	for _, res := range results {
		if res == nil {
			continue
		}

		if prev, ok := sources[res.Filename]; ok {
			return nil, &FileError{
				Path: res.Source,
				Err:  fmt.Errorf("%w: %s is also generated from %s", ErrDuplicateOutput, res.Filename, prev),
			}
		}

		sources[res.Filename] = res.Source
		out = append(out, *res)
	}

	return out, nil
}

// outputName maps "src/model.rs" to "src/model_shallow_debug.rs".
// Paths that are absolute or leave the working directory keep only their
// base name, so the result always stays inside the output directory.
func (g *Generator) outputName(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsLocal(path) {
		path = filepath.Base(path)
	}

	return strings.TrimSuffix(path, ".rs") + g.config.OutputSuffix
}

// implData holds all data needed for the impl template.
type implData struct {
	Cfg       []string
	Fmt       string
	Target    string
	Signature signatureData
	Body      bodyData
}

var implTemplate = template.Must(
	template.New("impl").
		Parse(`{{range .Cfg}}{{.}}
{{end}}impl{{.Signature.Params}} {{.Fmt}}::Debug for {{.Target}}{{.Signature.Args}}
{{- if .Signature.Predicates}}
where
{{- range .Signature.Predicates}}
    {{.}},
{{- end}}
{
{{- else}} {
{{- end}}
    fn fmt(&self, f: &mut {{.Fmt}}::Formatter<'_>) -> {{.Fmt}}::Result {
{{- if .Body.Arms}}
        match self {
{{- range .Body.Arms}}
{{- range .Cfg}}
            {{.}}
{{- end}}
            {{.Pattern}} => f.write_str({{.Literal}}),
{{- end}}
        }
{{- else if .Body.Uninhabited}}
        match *self {}
{{- else}}
        f.write_str({{.Body.Literal}})
{{- end}}
    }
}
`))
