// Package config loads .typycheck.yaml project settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/typycheck/internal/types"
)

// FileName is the settings file looked up by Discover.
const FileName = ".typycheck.yaml"

// Dump formats accepted for the context dump.
const (
	DumpText = "text"
	DumpJSON = "json"
	DumpYAML = "yaml"
)

// Config holds project settings. The zero value is the default.
type Config struct {
	Path       string            `yaml:"-"`
	Permissive bool              `yaml:"permissive"`
	Dump       string            `yaml:"dump,omitempty"`
	Aliases    map[string]string `yaml:"aliases,omitempty"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses the settings file at path.
// An empty file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", abs, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover walks up from start looking for FileName and returns its path,
// or "" when no directory up to the root has one.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadNearest discovers and loads the settings file above start.
// Without one it returns the default configuration.
func LoadNearest(start string) (*Config, error) {
	path, err := Discover(start)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}
	return Load(path)
}

// Validate checks the dump format and that every alias targets a builtin.
func (c *Config) Validate() error {
	errs := &ValidationError{Path: c.Path}
	switch c.Dump {
	case "", DumpText, DumpJSON, DumpYAML:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("dump must be one of text, json, yaml (got %q)", c.Dump))
	}

	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := c.Aliases[name]
		if name == "" {
			errs.Issues = append(errs.Issues, "aliases: empty alias name")
			continue
		}
		if _, ok := types.LookupBuiltin(name); ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("aliases.%s shadows a builtin type", name))
		}
		if _, ok := types.LookupBuiltin(target); !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("aliases.%s: unknown type %q (want one of %s)",
				name, target, strings.Join(types.BuiltinNames(), ", ")))
		}
	}

	if len(errs.Issues) > 0 {
		return errs
	}
	return nil
}

// DumpFormat returns the configured dump format, defaulting to text.
func (c *Config) DumpFormat() string {
	if c == nil || c.Dump == "" {
		return DumpText
	}
	return c.Dump
}
