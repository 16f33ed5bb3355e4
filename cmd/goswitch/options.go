package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/goswitch/internal/config"
)

// options are the flags shared by generate and watch. Flags given on the
// command line are layered over the configuration file.
type options struct {
	configFile  string
	dir         string
	types       string
	enums       string
	schemas     []string
	suffix      string
	outputDir   string
	parallelism int
}

func (o *options) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configFile, "config", "c", config.DefaultFile, "configuration file (ignored when missing)")
	f.StringVarP(&o.dir, "dir", "d", ".", "package directory for --type and --enum")
	f.StringVarP(&o.types, "type", "t", "", "comma-separated sealed interface names")
	f.StringVarP(&o.enums, "enum", "e", "", "comma-separated enum type names")
	f.StringArrayVarP(&o.schemas, "schema", "s", nil, "schema file (.yaml, .yml, .json); repeatable")
	f.StringVar(&o.suffix, "suffix", "", "output file suffix (default _match.go)")
	f.StringVarP(&o.outputDir, "output", "o", "", "write every file into this directory")
	f.IntVarP(&o.parallelism, "parallelism", "p", 0, "max unions rendered at once (default GOMAXPROCS)")
}

func (o *options) config() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.configFile)
	if err != nil {
		return nil, err
	}
	unions, enums := splitCSV(o.types), splitCSV(o.enums)
	if len(unions) > 0 || len(enums) > 0 {
		dir, err := filepath.Abs(o.dir)
		if err != nil {
			return nil, err
		}
		cfg.Packages = append(cfg.Packages, config.PackageConfig{Dir: dir, Unions: unions, Enums: enums})
	}
	for _, s := range o.schemas {
		abs, err := filepath.Abs(s)
		if err != nil {
			return nil, err
		}
		cfg.Schemas = append(cfg.Schemas, abs)
	}
	if o.suffix != "" {
		cfg.Output.Suffix = o.suffix
	}
	if o.outputDir != "" {
		cfg.Output.Dir = o.outputDir
	}
	if o.parallelism > 0 {
		cfg.Parallelism = o.parallelism
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
