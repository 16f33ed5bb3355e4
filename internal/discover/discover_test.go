package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/ir"
)

const shapesSrc = `package shapes

type Shape interface{ isShape() }

type Square struct{ Side float64 }

func (*Square) isShape() {}

type Circle struct{ R float64 }

func (Circle) isShape() {}

type notAShape struct{}

type Tree[T any] interface{ isTree(T) }

type Leaf[T any] struct{ Value T }

func (Leaf[T]) isTree(T) {}

type Node[T any] struct{ Left, Right Tree[T] }

func (*Node[T]) isTree(T) {}

type Color int

const (
	Red Color = iota
	Green
	Blue
	Crimson = Red
)

const unrelated = 3

func describe(s Shape) string {
	return MatchShape(s, func(*Square) string { return "square" }, func(Circle) string { return "circle" })
}
`

// a stale generated file that no longer compiles must not break discovery,
// nor must the calls into it from shapes.go
const staleGenerated = `// Code generated by goswitch. DO NOT EDIT.

package shapes

func MatchShape(removed Removed) {}
`

func writeModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"go.mod":         "module example.com/shapes\n\ngo 1.22\n",
		"shapes.go":      shapesSrc,
		"shape_match.go": staleGenerated,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestProvider_Targets(t *testing.T) {
	dir := writeModule(t)
	p := New(Package{Dir: dir, Unions: []string{"Shape", "Tree"}, Enums: []string{"Color"}})

	targets, err := p.Targets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 3)

	shape := targets[0].Union
	assert.Equal(t, dir, targets[0].Dir)
	assert.Equal(t, "example.com/shapes", shape.Namespace)
	assert.Equal(t, "shapes", shape.Package)
	assert.Equal(t, ir.KindInterface, shape.Kind)
	assert.Equal(t, []ir.Case{
		{TypeName: "Square", Pointer: true},
		{TypeName: "Circle"},
	}, shape.Cases, "declaration order, pointer receivers detected")

	tree := targets[1].Union
	assert.Equal(t, []ir.TypeParam{{Name: "T", Constraint: "any"}}, tree.TypeParams)
	assert.Equal(t, []ir.Case{
		{TypeName: "Leaf", TypeArgs: []string{"T"}},
		{TypeName: "Node", Pointer: true, TypeArgs: []string{"T"}},
	}, tree.Cases)

	color := targets[2].Union
	assert.Equal(t, ir.KindEnum, color.Kind)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, color.CaseNames())
}

func TestProvider_ReportsMissingTypes(t *testing.T) {
	dir := writeModule(t)
	p := New(Package{Dir: dir, Unions: []string{"Shape", "Missing", "Color"}})

	targets, err := p.Targets(context.Background())
	require.Len(t, targets, 1, "resolved unions are still returned")

	iss, ok := goswitch.AsIssues(err)
	require.True(t, ok, "expected issues, got %v", err)
	require.Len(t, iss, 2)
	assert.Equal(t, goswitch.CodeNotFound, iss[0].Code)
	assert.Contains(t, iss[0].Message, `"Missing" not found`)
	assert.Contains(t, iss[1].Message, "not an interface")
}

func TestProvider_PackageCallingUngeneratedCode(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/fresh\n\ngo 1.22\n",
		"shape.go": `package fresh

type Shape interface{ isShape() }

type Circle struct{}

func (Circle) isShape() {}

type Square struct{}

func (Square) isShape() {}
`,
		"area.go": `package fresh

func name(s Shape) string {
	return MatchShape(s, func(Circle) string { return "circle" }, func(Square) string { return "square" })
}
`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	targets, err := New(Package{Dir: dir, Unions: []string{"Shape"}}).Targets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, []string{"Circle", "Square"}, targets[0].Union.CaseNames())
}
