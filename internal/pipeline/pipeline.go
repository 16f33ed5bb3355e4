// Package pipeline drives generation: it collects targets from the configured
// providers, renders every union and writes the files that changed.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/config"
	"github.com/reoring/goswitch/internal/discover"
	"github.com/reoring/goswitch/internal/gen"
	"github.com/reoring/goswitch/internal/ir"
	"github.com/reoring/goswitch/internal/naming"
	"github.com/reoring/goswitch/internal/schemafile"
)

// Provider supplies unions to generate.
type Provider interface {
	Targets(ctx context.Context) ([]ir.Target, error)
}

// File is one generated file on disk.
type File struct {
	Path    string
	Union   string
	Changed bool // false when the file already had the same content
}

// Summary reports the outcome of a run.
type Summary struct {
	Files  []File
	Failed int
}

// Generator renders targets from its providers.
type Generator struct {
	Providers   []Provider
	Suffix      string
	OutputDir   string
	Parallelism int
	Logger      *zap.Logger
}

// New builds a Generator from cfg: one discovery provider for the configured
// packages and one schema file provider.
func New(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		Suffix:      cfg.Output.Suffix,
		OutputDir:   cfg.Output.Dir,
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	}
	if len(cfg.Packages) > 0 {
		pkgs := make([]discover.Package, len(cfg.Packages))
		for i, p := range cfg.Packages {
			pkgs[i] = discover.Package{Dir: p.Dir, Unions: p.Unions, Enums: p.Enums}
		}
		g.Providers = append(g.Providers, discover.New(pkgs...))
	}
	if len(cfg.Schemas) > 0 {
		g.Providers = append(g.Providers, schemafile.New(cfg.Schemas...))
	}
	return g
}

// Run generates every configured union once.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Summary, error) {
	return New(cfg, logger).Run(ctx)
}

// Run collects targets, renders them with bounded parallelism and writes the
// results. Failures of single unions do not stop the others; they are logged
// and returned together as goswitch.Issues.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	var (
		sum    Summary
		failed goswitch.Issues
		log    = g.Logger.With(zap.String("run", uuid.NewString()[:8]))
	)
	targets, err := g.collect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return sum, err
		}
		iss, ok := goswitch.AsIssues(err)
		if !ok {
			return sum, err
		}
		failed = goswitch.AppendIssues(failed, iss...)
	}

	tasks := make([]goswitch.Task[goswitch.Result[File, goswitch.Issues]], len(targets))
	claimed := map[string]string{}
	for i, t := range targets {
		path := g.outputPath(t)
		if prev, dup := claimed[path]; dup {
			tasks[i] = goswitch.FromResult(goswitch.Error[File](goswitch.Issues{{
				Path:    path,
				Code:    goswitch.CodeGenerate,
				Message: fmt.Sprintf("%s and %s write the same file", prev, t.Union.TypeName),
			}}))
			continue
		}
		claimed[path] = t.Union.TypeName
		tasks[i] = g.generate(path, t)
	}

	results, err := goswitch.AwaitAll(ctx, tasks, g.Parallelism)
	if err != nil {
		return sum, err
	}
	sum.Files = goswitch.Choose(results, func(iss goswitch.Issues) {
		sum.Failed++
		failed = goswitch.MergeIssues([]goswitch.Issues{failed, iss})
	})
	for _, f := range sum.Files {
		if f.Changed {
			log.Info("generated", zap.String("union", f.Union), zap.String("file", f.Path))
		} else {
			log.Debug("unchanged", zap.String("union", f.Union), zap.String("file", f.Path))
		}
	}
	for _, it := range failed {
		log.Error("generation failed", zap.String("path", it.Path), zap.String("code", it.Code), zap.String("message", it.Message))
	}
	log.Info("generation finished",
		zap.Int("targets", len(targets)),
		zap.Int("files", len(sum.Files)),
		zap.Int("failed", sum.Failed))
	if len(failed) > 0 {
		return sum, failed
	}
	return sum, nil
}

func (g *Generator) collect(ctx context.Context) ([]ir.Target, error) {
	var (
		out  []ir.Target
		errs []error
	)
	for _, p := range g.Providers {
		ts, err := p.Targets(ctx)
		out = append(out, ts...)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return out, nil
	}
	var iss goswitch.Issues
	for _, err := range errs {
		if more, ok := goswitch.AsIssues(err); ok {
			iss = goswitch.AppendIssues(iss, more...)
			continue
		}
		iss = goswitch.AppendIssues(iss, goswitch.Issue{Code: goswitch.CodeNotFound, Message: err.Error(), Cause: err})
	}
	return out, iss
}

func (g *Generator) outputPath(t ir.Target) string {
	dir := t.Dir
	if g.OutputDir != "" {
		dir = g.OutputDir
	}
	suffix := g.Suffix
	if suffix == "" {
		suffix = gen.DefaultSuffix
	}
	return filepath.Join(dir, naming.SnakeCase(t.Union.TypeName)+suffix)
}

// generate renders t and writes it to path unless the file is up to date.
func (g *Generator) generate(path string, t ir.Target) goswitch.Task[goswitch.Result[File, goswitch.Issues]] {
	return func(ctx context.Context) (goswitch.Result[File, goswitch.Issues], error) {
		rendered := gen.GenerateResult(filepath.Base(path), t.Union)
		return goswitch.Bind(rendered, func(out gen.Output) goswitch.Result[File, goswitch.Issues] {
			return goswitch.Try(func() (File, error) {
				changed, err := writeIfChanged(path, out.Source)
				return File{Path: path, Union: t.Union.TypeName, Changed: changed}, err
			}, func(err error) goswitch.Issues {
				return goswitch.Issues{{Path: path, Code: goswitch.CodeGenerate, Message: err.Error(), Cause: err}}
			})
		}), nil
	}
}

func writeIfChanged(path string, src []byte) (bool, error) {
	old, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(old, src):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
