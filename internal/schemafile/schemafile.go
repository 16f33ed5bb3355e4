package schemafile

// Package schemafile reads union schemas written by hand in YAML or JSON, for
// unions whose cases cannot be discovered from Go source.
//
// A document looks like:
//
//	unions:
//	  - package: shapes
//	    type: Shape
//	    cases:
//	      - type: Circle
//	      - type: Square
//	        pointer: true

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/ir"
)

// Document is one schema document.
type Document struct {
	Unions []UnionDoc `yaml:"unions" json:"unions"`
}

// UnionDoc describes one union.
type UnionDoc struct {
	Dir        string         `yaml:"dir,omitempty" json:"dir,omitempty"` // output directory, relative to the schema file
	Namespace  string         `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Package    string         `yaml:"package" json:"package"`
	Type       string         `yaml:"type" json:"type"`
	Kind       string         `yaml:"kind,omitempty" json:"kind,omitempty"`
	TypeParams []TypeParamDoc `yaml:"typeParams,omitempty" json:"typeParams,omitempty"`
	Cases      []CaseDoc      `yaml:"cases" json:"cases"`
}

type TypeParamDoc struct {
	Name       string `yaml:"name" json:"name"`
	Constraint string `yaml:"constraint,omitempty" json:"constraint,omitempty"`
}

type CaseDoc struct {
	Type     string   `yaml:"type" json:"type"`
	Pointer  bool     `yaml:"pointer,omitempty" json:"pointer,omitempty"`
	TypeArgs []string `yaml:"typeArgs,omitempty" json:"typeArgs,omitempty"`
}

// Union converts d into the schema model. The result is not validated;
// validation happens when the union is rendered.
func (d UnionDoc) Union() (*ir.Union, error) {
	kind, err := ir.ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	u := &ir.Union{
		Namespace: d.Namespace,
		Package:   d.Package,
		TypeName:  d.Type,
		Kind:      kind,
	}
	for _, p := range d.TypeParams {
		u.TypeParams = append(u.TypeParams, ir.TypeParam{Name: p.Name, Constraint: p.Constraint})
	}
	for _, c := range d.Cases {
		u.Cases = append(u.Cases, ir.Case{TypeName: c.Type, Pointer: c.Pointer, TypeArgs: c.TypeArgs})
	}
	return u, nil
}

// Parse decodes data according to the extension of name (.yaml, .yml or
// .json). YAML input may hold several documents.
func Parse(name string, data []byte) ([]Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".json":
		var doc Document
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return []Document{doc}, nil
	default:
		return nil, fmt.Errorf("unsupported schema file %s: want .yaml, .yml or .json", name)
	}
}

func parseYAML(data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var docs []Document
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Provider reads targets from schema files.
type Provider struct {
	Files []string
}

// New returns a Provider over the given schema files.
func New(files ...string) *Provider { return &Provider{Files: files} }

// Targets reads every schema file. Unreadable files and bad entries are
// reported together as goswitch.Issues; other targets are still returned.
func (p *Provider) Targets(ctx context.Context) ([]ir.Target, error) {
	var (
		out []ir.Target
		iss goswitch.Issues
	)
	for _, file := range p.Files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		ts, err := Load(file)
		if err != nil {
			iss = goswitch.AppendIssues(iss, goswitch.Issue{Path: file, Code: goswitch.CodeValidation, Message: err.Error(), Cause: err})
		}
		out = append(out, ts...)
	}
	if len(iss) > 0 {
		return out, iss
	}
	return out, nil
}

// Load reads one schema file. The output directory of a union defaults to the
// directory of the file.
func Load(file string) ([]ir.Target, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	docs, err := Parse(file, data)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(file)
	var (
		out  []ir.Target
		errs []error
	)
	for _, doc := range docs {
		for _, ud := range doc.Unions {
			u, err := ud.Union()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ud.Type, err))
				continue
			}
			dir := base
			if ud.Dir != "" {
				dir = ud.Dir
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(base, dir)
				}
			}
			out = append(out, ir.Target{Dir: dir, Union: u})
		}
	}
	return out, goswitch.MergeErrors(errs)
}
