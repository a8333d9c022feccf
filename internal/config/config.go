package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"shallow-debug/internal/gen"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".shallow-debug.yaml"

// Config is the on-disk configuration.
type Config struct {
	Version string   `yaml:"version"`
	FmtPath string   `yaml:"fmt_path,omitempty"`
	Derive  []string `yaml:"derive,omitempty"`
	Output  Output   `yaml:"output"`
	Jobs    int      `yaml:"jobs,omitempty"`
}

// Output controls where and how generated files are written.
type Output struct {
	// Dir is the output directory. Empty means stdout.
	Dir    string `yaml:"dir,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
	// Header is a pointer so that an explicit false survives defaulting.
	Header *bool `yaml:"header,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Load reads path when given, else DefaultFile when it exists, else returns
// Default().
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	if _, err := os.Stat(DefaultFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to stat config file %s: %w", DefaultFile, err)
	}

	return LoadFile(DefaultFile)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := validate(&c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	return &c, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// GeneratorConfig converts c into a gen.GeneratorConfig.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.FmtPath = c.FmtPath
	cfg.DeriveNames = append([]string(nil), c.Derive...)
	cfg.OutputSuffix = c.Output.Suffix
	cfg.Jobs = c.Jobs

	if c.Output.Header != nil {
		cfg.Header = *c.Output.Header
	}

	return cfg
}

func validate(c *Config) error {
	if c.Version != "" && c.Version != "1" {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	for _, d := range c.Derive {
		if d == "" {
			return errors.New("derive names must not be empty")
		}
	}

	return nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	def := gen.DefaultGeneratorConfig()

	if c.Version == "" {
		c.Version = "1"
	}

	if c.FmtPath == "" {
		c.FmtPath = def.FmtPath
	}

	if len(c.Derive) == 0 {
		c.Derive = append([]string(nil), def.DeriveNames...)
	}

	if c.Output.Suffix == "" {
		c.Output.Suffix = def.OutputSuffix
	}

	if c.Output.Header == nil {
		header := def.Header
		c.Output.Header = &header
	}

	if c.Jobs == 0 {
		c.Jobs = def.Jobs
	}
}
