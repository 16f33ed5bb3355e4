package gen

// Package gen renders exhaustive Match and Switch functions for a union. This
// package is internal and not part of the public API.

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/ir"
	"github.com/reoring/goswitch/internal/naming"
)

// RuntimeImport is the import path of the runtime package referenced by
// generated code.
const RuntimeImport = "github.com/reoring/goswitch"

// DefaultSuffix is appended to the snake-cased union name to form the default
// output file name.
const DefaultSuffix = "_match.go"

// Output is one generated source file.
type Output struct {
	HintName string // file name used to address the output; never affects Source
	Source   []byte
}

type caseView struct {
	Label     string // switch case label: type expression or constant name
	Param     string
	ParamType string // continuation argument type; empty for enum cases
	Arg       string
}

type fileView struct {
	Header           string
	Package          string
	RuntimeImport    string
	Union            string
	UnionExpr        string
	Subject          string
	R                string
	TypeParamsDecl   string
	TypeArgs         string
	SwitchTypeParams string
	SwitchTypeArgs   string
	Enum             bool
	Cases            []caseView
}

// Render validates u and returns the gofmt-formatted dispatch file for it.
// Identical unions render byte-identical output.
func Render(u *ir.Union) ([]byte, error) {
	if u == nil {
		return nil, errors.New("render: nil union")
	}
	nu, err := ir.NewUnion(*u)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, view(nu)); err != nil {
		return nil, fmt.Errorf("render %s: %w", nu.TypeName, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", nu.TypeName, err)
	}
	return src, nil
}

// Generate renders u under the given hint name. An empty hint selects
// OutputName(u).
func Generate(hint string, u *ir.Union) (Output, error) {
	if hint == "" && u != nil {
		hint = OutputName(u)
	}
	src, err := Render(u)
	if err != nil {
		return Output{}, err
	}
	return Output{HintName: hint, Source: src}, nil
}

// GenerateAll renders every union independently. Outputs of the unions that
// render are returned in input order even when others fail; the failures are
// reported together as goswitch.Issues.
func GenerateAll(unions []*ir.Union) ([]Output, error) {
	results := make([]goswitch.Result[Output, goswitch.Issues], len(unions))
	for i, u := range unions {
		results[i] = GenerateResult("", u)
	}
	var failed goswitch.Issues
	outs := goswitch.Choose(results, func(iss goswitch.Issues) {
		failed = goswitch.AppendIssues(failed, iss...)
	})
	if len(failed) > 0 {
		return outs, failed
	}
	return outs, nil
}

// GenerateResult is Generate with the failure reported as an Issues payload.
func GenerateResult(hint string, u *ir.Union) goswitch.Result[Output, goswitch.Issues] {
	out, err := Generate(hint, u)
	if err != nil {
		return goswitch.Error[Output](issuesOf(u, err))
	}
	return goswitch.Ok[Output, goswitch.Issues](out)
}

// OutputName returns the default file name for u (Shape -> shape_match.go).
func OutputName(u *ir.Union) string {
	return naming.SnakeCase(u.TypeName) + DefaultSuffix
}

func issuesOf(u *ir.Union, err error) goswitch.Issues {
	var mse *ir.MalformedSchemaError
	if errors.As(err, &mse) {
		return mse.Issues
	}
	path := "(nil)"
	if u != nil {
		path = u.TypeName
	}
	return goswitch.Issues{{Path: path, Code: goswitch.CodeGenerate, Message: err.Error(), Cause: err}}
}

func view(u *ir.Union) fileView {
	v := fileView{
		Header:        Header,
		Package:       u.Package,
		RuntimeImport: RuntimeImport,
		Union:         u.TypeName,
		UnionExpr:     u.TypeExpr(),
		Subject:       u.Subject,
		R:             u.ResultParam,
		Enum:          u.Kind == ir.KindEnum,
	}
	if len(u.TypeParams) > 0 {
		decl := make([]string, len(u.TypeParams))
		names := make([]string, len(u.TypeParams))
		for i, p := range u.TypeParams {
			decl[i] = p.Name + " " + p.Constraint
			names[i] = p.Name
		}
		v.TypeParamsDecl = strings.Join(decl, ", ") + ", "
		v.TypeArgs = strings.Join(names, ", ") + ", "
		v.SwitchTypeParams = "[" + strings.Join(decl, ", ") + "]"
		v.SwitchTypeArgs = "[" + strings.Join(names, ", ") + "]"
	}
	for _, c := range u.Cases {
		cv := caseView{Param: c.ParameterName}
		if v.Enum {
			cv.Label = c.TypeName
		} else {
			cv.Label = c.TypeExpr()
			cv.ParamType = c.TypeExpr()
			cv.Arg = "v"
		}
		v.Cases = append(v.Cases, cv)
	}
	return v
}

// params renders the continuation parameters, each returning ret.
func params(cases []caseView, ret string) string {
	var b strings.Builder
	for _, c := range cases {
		fmt.Fprintf(&b, ", %s func(%s)", c.Param, c.ParamType)
		if ret != "" {
			b.WriteString(" " + ret)
		}
	}
	return b.String()
}

// args renders the continuation arguments of a forwarding call.
func args(cases []caseView) string {
	var b strings.Builder
	for _, c := range cases {
		b.WriteString(", " + c.Param)
	}
	return b.String()
}
