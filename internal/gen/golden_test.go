package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	ir "github.com/reoring/goswitch/internal/ir"
)

// The files under examples/ are checked-in generator output.
func TestRender_MatchesExamples(t *testing.T) {
	cases := []struct {
		file  string
		union ir.Union
	}{
		{"../../examples/shapes/shape_match.go", ir.Union{
			Package:  "shapes",
			TypeName: "Shape",
			Cases:    []ir.Case{{TypeName: "Circle"}, {TypeName: "Square", Pointer: true}, {TypeName: "Triangle_"}},
		}},
		{"../../examples/shapes/color_match.go", ir.Union{
			Package:  "shapes",
			TypeName: "Color",
			Kind:     ir.KindEnum,
			Cases:    []ir.Case{{TypeName: "Red"}, {TypeName: "Green"}, {TypeName: "Blue"}},
		}},
		{"../../examples/tree/tree_match.go", ir.Union{
			Package:    "tree",
			TypeName:   "Tree",
			TypeParams: []ir.TypeParam{{Name: "T"}},
			Cases: []ir.Case{
				{TypeName: "Leaf", TypeArgs: []string{"T"}},
				{TypeName: "Node", Pointer: true, TypeArgs: []string{"T"}},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(filepath.Base(tc.file), func(t *testing.T) {
			want, err := os.ReadFile(tc.file)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Render(&tc.union)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(want), string(got)); diff != "" {
				t.Fatalf("%s is stale (-checked in +rendered):\n%s", tc.file, diff)
			}
		})
	}
}
