// Package config loads goswitch.yaml, the file that tells the generator which
// unions to render and where.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	goswitch "github.com/reoring/goswitch"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "goswitch.yaml"

// Config is the generator configuration.
type Config struct {
	Packages    []PackageConfig `yaml:"packages"`
	Schemas     []string        `yaml:"schemas"` // schema files, .yaml/.yml/.json
	Output      OutputConfig    `yaml:"output"`
	Parallelism int             `yaml:"parallelism"` // max unions rendered at once
	Watch       WatchConfig     `yaml:"watch"`
}

// PackageConfig names the unions to discover in one package directory.
type PackageConfig struct {
	Dir    string   `yaml:"dir"`
	Unions []string `yaml:"unions"`
	Enums  []string `yaml:"enums"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Suffix string `yaml:"suffix"` // appended to the snake-cased union name
	Dir    string `yaml:"dir"`    // overrides the target directory when set
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. Environment variables in the file are
// expanded, GOSWITCH_* overrides are applied, and relative paths are resolved
// against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default with the
// environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := &Config{}
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg, nil
}

// ApplyEnv applies the GOSWITCH_* overrides to cfg.
func (c *Config) ApplyEnv() { applyEnvOverrides(c) }

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOSWITCH_OUTPUT_SUFFIX"); v != "" {
		cfg.Output.Suffix = v
	}
	if v := os.Getenv("GOSWITCH_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GOSWITCH_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Parallelism = n
		}
	}
	if v := os.Getenv("GOSWITCH_WATCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Debounce = d
		}
	}
}

func setDefaults(cfg *Config) {
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = "_match.go"
	}
	if cfg.Parallelism == 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 200 * time.Millisecond
	}
}

func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	for i := range c.Packages {
		c.Packages[i].Dir = abs(c.Packages[i].Dir)
	}
	for i := range c.Schemas {
		c.Schemas[i] = abs(c.Schemas[i])
	}
	c.Output.Dir = abs(c.Output.Dir)
}

// Validate reports every problem in c as goswitch.Issues, or nil.
func (c *Config) Validate() error {
	var iss goswitch.Issues
	add := func(path, format string, args ...any) {
		iss = goswitch.AppendIssues(iss, goswitch.Issue{Path: path, Code: goswitch.CodeConfig, Message: fmt.Sprintf(format, args...)})
	}
	if len(c.Packages) == 0 && len(c.Schemas) == 0 {
		add("packages", "nothing to generate: configure packages or schemas")
	}
	for i, p := range c.Packages {
		path := fmt.Sprintf("packages[%d]", i)
		if p.Dir == "" {
			add(path+".dir", "is required")
		}
		if len(p.Unions) == 0 && len(p.Enums) == 0 {
			add(path, "lists no unions or enums")
		}
	}
	for i, s := range c.Schemas {
		if s == "" {
			add(fmt.Sprintf("schemas[%d]", i), "is empty")
		}
	}
	if !strings.HasSuffix(c.Output.Suffix, ".go") {
		add("output.suffix", "must end with .go, got %q", c.Output.Suffix)
	}
	if strings.HasSuffix(c.Output.Suffix, "_test.go") {
		add("output.suffix", "must not produce test files")
	}
	if c.Parallelism < 0 {
		add("parallelism", "must not be negative, got %d", c.Parallelism)
	}
	if c.Watch.Debounce < 0 {
		add("watch.debounce", "must not be negative")
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
