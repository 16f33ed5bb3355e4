package discover

// Package discover finds unions and their cases by type-checking Go packages.
// Cases of an interface union are the named types of the same package that
// implement it; cases of an enum union are the constants of its type. Both
// are returned in declaration order.

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/gen"
	"github.com/reoring/goswitch/internal/ir"
)

// Package selects the unions to look up in one package directory.
type Package struct {
	Dir    string
	Unions []string // sealed interface type names
	Enums  []string // named constant type names
}

// Provider discovers targets from Go source.
type Provider struct {
	Packages []Package
}

// New returns a Provider for the given packages.
func New(pkgs ...Package) *Provider { return &Provider{Packages: pkgs} }

// Targets loads every configured package and resolves the requested unions.
// Lookup failures are reported together as goswitch.Issues; the targets that
// were resolved are returned alongside.
func (p *Provider) Targets(ctx context.Context) ([]ir.Target, error) {
	var (
		out []ir.Target
		iss goswitch.Issues
	)
	for _, req := range p.Packages {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		pkg, err := load(ctx, req.Dir)
		if err != nil {
			iss = goswitch.AppendIssues(iss, goswitch.Issue{Path: req.Dir, Code: goswitch.CodeNotFound, Message: err.Error(), Cause: err})
			continue
		}
		for _, name := range req.Unions {
			u, err := Interface(pkg, name)
			if err != nil {
				iss = goswitch.AppendIssues(iss, issueFor(req.Dir, name, err))
				continue
			}
			out = append(out, ir.Target{Dir: req.Dir, Union: u})
		}
		for _, name := range req.Enums {
			u, err := Enum(pkg, name)
			if err != nil {
				iss = goswitch.AppendIssues(iss, issueFor(req.Dir, name, err))
				continue
			}
			out = append(out, ir.Target{Dir: req.Dir, Union: u})
		}
	}
	if len(iss) > 0 {
		return out, iss
	}
	return out, nil
}

func issueFor(dir, name string, err error) goswitch.Issue {
	return goswitch.Issue{Path: filepath.Join(dir, name), Code: goswitch.CodeNotFound, Message: err.Error(), Cause: err}
}

// load type-checks the package in dir from source, dependencies included, so
// that a package which does not compile yet can still be inspected. Files
// written by the generator are reduced to their package clause so stale
// output never breaks discovery.
func load(ctx context.Context, dir string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedSyntax |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedDeps,
		Dir:       dir,
		Env:       append(os.Environ(), "GOWORK=off"),
		ParseFile: parseSkippingGenerated,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading package: %w", err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}
	pkg := pkgs[0]
	// Type errors are expected while generated code is missing or stale; the
	// declarations needed for discovery are still recorded.
	var errs []string
	for _, e := range pkg.Errors {
		if e.Kind != packages.TypeError {
			errs = append(errs, e.Msg)
		}
	}
	if len(errs) > 0 || pkg.Types == nil {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	return pkg, nil
}

func parseSkippingGenerated(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if bytes.HasPrefix(src, []byte(gen.Header)) {
		mode = parser.PackageClauseOnly
	}
	return parser.ParseFile(fset, filename, src, mode)
}

// Interface resolves the sealed interface name in pkg.
func Interface(pkg *packages.Package, name string) (*ir.Union, error) {
	named, err := lookupNamed(pkg, name)
	if err != nil {
		return nil, err
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%s is not an interface", name)
	}
	u := newUnion(pkg, named, ir.KindInterface)

	for _, obj := range declared(pkg.Types.Scope()) {
		tn, ok := obj.(*types.TypeName)
		if !ok || tn.IsAlias() || tn == named.Obj() {
			continue
		}
		cand, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if _, isIface := cand.Underlying().(*types.Interface); isIface {
			continue
		}
		c, ok, err := implementation(named, iface, cand)
		if err != nil {
			return nil, err
		}
		if ok {
			u.Cases = append(u.Cases, c)
		}
	}
	return u, nil
}

// implementation reports whether cand (or *cand) implements the union. A
// generic case must take as many type parameters as the union; it is checked
// with both instantiated over the case's own parameters.
func implementation(union *types.Named, iface *types.Interface, cand *types.Named) (ir.Case, bool, error) {
	c := ir.Case{TypeName: cand.Obj().Name()}
	up, cp := union.TypeParams(), cand.TypeParams()
	if up.Len() != cp.Len() {
		return c, false, nil
	}
	var typ types.Type = cand
	if cp.Len() > 0 {
		targs := make([]types.Type, cp.Len())
		for i := range targs {
			targs[i] = cp.At(i)
		}
		tctx := types.NewContext()
		inst, err := types.Instantiate(tctx, cand, targs, false)
		if err != nil {
			return c, false, fmt.Errorf("instantiating %s: %w", c.TypeName, err)
		}
		uinst, err := types.Instantiate(tctx, union, targs, false)
		if err != nil {
			// constraints differ; not a case of this union
			return c, false, nil
		}
		typ = inst
		var ok bool
		if iface, ok = uinst.Underlying().(*types.Interface); !ok {
			return c, false, nil
		}
		for i := range up.Len() {
			c.TypeArgs = append(c.TypeArgs, up.At(i).Obj().Name())
		}
	}
	switch {
	case types.Implements(typ, iface):
		return c, true, nil
	case types.Implements(types.NewPointer(typ), iface):
		c.Pointer = true
		return c, true, nil
	}
	return c, false, nil
}

// Enum resolves the named constant type name in pkg.
func Enum(pkg *packages.Package, name string) (*ir.Union, error) {
	named, err := lookupNamed(pkg, name)
	if err != nil {
		return nil, err
	}
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil, fmt.Errorf("%s is not a basic type", name)
	}
	u := newUnion(pkg, named, ir.KindEnum)
	seen := map[string]bool{}
	for _, obj := range declared(pkg.Types.Scope()) {
		cn, ok := obj.(*types.Const)
		if !ok || !types.Identical(cn.Type(), named) {
			continue
		}
		// aliases of one value would make the value switch ambiguous
		val := cn.Val().ExactString()
		if seen[val] {
			continue
		}
		seen[val] = true
		u.Cases = append(u.Cases, ir.Case{TypeName: cn.Name()})
	}
	return u, nil
}

func lookupNamed(pkg *packages.Package, name string) (*types.Named, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found in package %s", name, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%q is not a type in package %s", name, pkg.PkgPath)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%q is not a named type in package %s", name, pkg.PkgPath)
	}
	return named, nil
}

func newUnion(pkg *packages.Package, named *types.Named, kind ir.Kind) *ir.Union {
	u := &ir.Union{
		Namespace: pkg.PkgPath,
		Package:   pkg.Name,
		TypeName:  named.Obj().Name(),
		Kind:      kind,
	}
	qual := types.RelativeTo(pkg.Types)
	tparams := named.TypeParams()
	for i := range tparams.Len() {
		tp := tparams.At(i)
		u.TypeParams = append(u.TypeParams, ir.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), qual),
		})
	}
	return u
}

// declared returns the package-level objects of scope in declaration order.
func declared(scope *types.Scope) []types.Object {
	names := scope.Names()
	objs := make([]types.Object, 0, len(names))
	for _, n := range names {
		objs = append(objs, scope.Lookup(n))
	}
	sort.SliceStable(objs, func(i, j int) bool { return objs[i].Pos() < objs[j].Pos() })
	return objs
}
