package ir

// Package ir defines the schema model consumed by the code generator: a union
// (sealed interface or enum-like constant type) and its ordered cases. This
// package is internal and not part of the public API.

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/naming"
)

// Kind identifies how cases are told apart at run time.
type Kind int

const (
	// KindInterface dispatches on the dynamic type of an interface value.
	KindInterface Kind = iota
	// KindEnum dispatches on the value of a named constant type.
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "interface" (or "") and "enum".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interface", "union":
		return KindInterface, nil
	case "enum":
		return KindEnum, nil
	}
	return 0, fmt.Errorf("unknown union kind %q", s)
}

// TypeParam is a type parameter of a generic union.
type TypeParam struct {
	Name       string
	Constraint string // defaults to "any"
}

// Case is one variant of a union.
type Case struct {
	TypeName string   // simple name of the case type, or the constant name for enums
	Pointer  bool     // the case is implemented on the pointer type
	TypeArgs []string // union type parameters the case is instantiated with

	// ParameterName is the continuation parameter name. It is assigned by
	// NewUnion and must not be changed afterwards.
	ParameterName string
}

// TypeExpr renders the Go type expression of the case (Circle, *Square,
// Leaf[T]).
func (c Case) TypeExpr() string {
	var b strings.Builder
	if c.Pointer {
		b.WriteByte('*')
	}
	b.WriteString(c.TypeName)
	if len(c.TypeArgs) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(c.TypeArgs, ", "))
		b.WriteByte(']')
	}
	return b.String()
}

// FullTypeName qualifies the case with ns. Two cases with the same full type
// name are the same case.
func (c Case) FullTypeName(ns string) string {
	if ns == "" {
		return c.TypeName
	}
	return ns + "." + c.TypeName
}

// Union describes a base type and its finite ordered set of cases.
type Union struct {
	Namespace  string // import path of the declaring package, optional
	Package    string // package name of the generated file
	TypeName   string
	TypeParams []TypeParam
	Kind       Kind
	Cases      []Case // declaration order, never sorted

	// Assigned by NewUnion.
	Subject     string // parameter name of the dispatched value
	ResultParam string // type parameter name of Match results
}

// FullTypeName returns the qualified name of the union.
func (u *Union) FullTypeName() string {
	if u.Namespace != "" {
		return u.Namespace + "." + u.TypeName
	}
	return u.Package + "." + u.TypeName
}

// TypeExpr renders the union type with its parameters (Shape, Tree[T]).
func (u *Union) TypeExpr() string {
	if len(u.TypeParams) == 0 {
		return u.TypeName
	}
	names := make([]string, len(u.TypeParams))
	for i, p := range u.TypeParams {
		names[i] = p.Name
	}
	return u.TypeName + "[" + strings.Join(names, ", ") + "]"
}

// CaseNames returns the simple case type names in order.
func (u *Union) CaseNames() []string {
	out := make([]string, len(u.Cases))
	for i, c := range u.Cases {
		out[i] = c.TypeName
	}
	return out
}

// ErrMalformedSchema is matched by errors.Is for every *MalformedSchemaError.
var ErrMalformedSchema = errors.New("malformed schema")

// MalformedSchemaError reports why a union cannot be generated.
type MalformedSchemaError struct {
	Union  string
	Issues goswitch.Issues
}

func (e *MalformedSchemaError) Error() string {
	return fmt.Sprintf("malformed schema %s: %v", e.Union, e.Issues)
}

func (e *MalformedSchemaError) Is(target error) bool { return target == ErrMalformedSchema }

func (e *MalformedSchemaError) Unwrap() error { return e.Issues }

// NewUnion validates spec and returns a copy with parameter names, the subject
// name and the result type parameter assigned. A malformed spec yields a
// *MalformedSchemaError listing every problem found.
func NewUnion(spec Union) (*Union, error) {
	u := spec
	u.TypeParams = append([]TypeParam(nil), spec.TypeParams...)
	u.Cases = make([]Case, len(spec.Cases))
	for i, c := range spec.Cases {
		c.TypeArgs = append([]string(nil), c.TypeArgs...)
		u.Cases[i] = c
	}
	for i := range u.TypeParams {
		if strings.TrimSpace(u.TypeParams[i].Constraint) == "" {
			u.TypeParams[i].Constraint = "any"
		}
	}

	if iss := validate(&u); len(iss) > 0 {
		return nil, &MalformedSchemaError{Union: u.FullTypeName(), Issues: iss}
	}

	reserved := reservedNames(&u)
	u.ResultParam = naming.TypeParamName(reserved...)
	u.Subject = naming.SubjectName(u.TypeName, append(reserved, u.ResultParam)...)
	names := naming.Assign(u.CaseNames(), append(reserved, u.ResultParam, u.Subject)...)
	for i := range u.Cases {
		u.Cases[i].ParameterName = names[i]
	}
	return &u, nil
}

// MustUnion is NewUnion for statically known schemas; it panics on error.
func MustUnion(spec Union) *Union {
	u, err := NewUnion(spec)
	if err != nil {
		panic(err)
	}
	return u
}

// Identifiers referenced by generated bodies besides the parameters.
var bodyIdentifiers = []string{"goswitch", "ctx", "v", "panic", "any"}

func reservedNames(u *Union) []string {
	out := append([]string(nil), bodyIdentifiers...)
	out = append(out, u.TypeName,
		"Match"+u.TypeName, "Match"+u.TypeName+"Async", "Match"+u.TypeName+"Task", "Match"+u.TypeName+"TaskAsync",
		"Switch"+u.TypeName, "Switch"+u.TypeName+"Async", "Switch"+u.TypeName+"Task", "Switch"+u.TypeName+"TaskAsync")
	for _, p := range u.TypeParams {
		out = append(out, p.Name)
	}
	return append(out, u.CaseNames()...)
}

func validate(u *Union) goswitch.Issues {
	var iss goswitch.Issues
	add := func(path, code, format string, args ...any) {
		iss = goswitch.AppendIssues(iss, goswitch.Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
	}
	root := u.TypeName
	if root == "" {
		root = "(unnamed)"
	}

	if u.Package == "" {
		add(root, goswitch.CodeMissingPackage, "package name is required")
	} else if !naming.IsValid(u.Package) {
		add(root, goswitch.CodeInvalidIdentifier, "package %q is not a valid identifier", u.Package)
	}
	if !naming.IsValid(u.TypeName) {
		add(root, goswitch.CodeInvalidIdentifier, "type name %q is not a valid identifier", u.TypeName)
	}
	if u.Kind != KindInterface && u.Kind != KindEnum {
		add(root, goswitch.CodeValidation, "unknown kind %v", u.Kind)
	}

	params := map[string]struct{}{}
	taken := reservedNames(&Union{TypeName: u.TypeName, Cases: u.Cases})
	for _, p := range u.TypeParams {
		if !naming.IsValid(p.Name) {
			add(root, goswitch.CodeInvalidIdentifier, "type parameter %q is not a valid identifier", p.Name)
			continue
		}
		if slices.Contains(taken, p.Name) {
			add(root, goswitch.CodeInvalidIdentifier, "type parameter %s clashes with a name used by generated code", p.Name)
		}
		if _, dup := params[p.Name]; dup {
			add(root, goswitch.CodeDuplicateCase, "type parameter %s declared twice", p.Name)
		}
		params[p.Name] = struct{}{}
	}
	if u.Kind == KindEnum && len(u.TypeParams) > 0 {
		add(root, goswitch.CodeValidation, "enum unions cannot be generic")
	}

	if len(u.Cases) == 0 {
		add(root, goswitch.CodeEmptyCases, "union has no cases")
	}
	seen := map[string]struct{}{}
	for _, c := range u.Cases {
		path := root + "." + c.TypeName
		if !naming.IsValid(c.TypeName) {
			add(path, goswitch.CodeInvalidIdentifier, "case name %q is not a valid identifier", c.TypeName)
			continue
		}
		full := c.FullTypeName(u.Namespace)
		if _, dup := seen[full]; dup {
			add(path, goswitch.CodeDuplicateCase, "case %s declared twice", full)
		}
		seen[full] = struct{}{}
		if c.TypeName == u.TypeName {
			add(path, goswitch.CodeDuplicateCase, "case %s has the name of its union", c.TypeName)
		}
		if u.Kind == KindEnum && (c.Pointer || len(c.TypeArgs) > 0) {
			add(path, goswitch.CodeValidation, "enum case %s cannot be a pointer or generic", c.TypeName)
		}
		for _, a := range c.TypeArgs {
			if _, ok := params[a]; !ok {
				add(path, goswitch.CodeUnresolvedTypeParam, "type argument %s is not a type parameter of %s", a, u.TypeName)
			}
		}
	}
	return iss
}

// Target pairs a union with the directory its generated file is written to.
type Target struct {
	Dir   string
	Union *Union
}
