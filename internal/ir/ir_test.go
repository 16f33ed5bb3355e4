package ir

import (
	"errors"
	"testing"

	goswitch "github.com/reoring/goswitch"
)

func shapeSpec() Union {
	return Union{
		Namespace: "example.com/shapes",
		Package:   "shapes",
		TypeName:  "Shape",
		Cases: []Case{
			{TypeName: "Circle"},
			{TypeName: "Square", Pointer: true},
			{TypeName: "Generic_"},
		},
	}
}

func TestNewUnion_AssignsNames(t *testing.T) {
	u, err := NewUnion(shapeSpec())
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}
	if u.Subject != "shape" || u.ResultParam != "R" {
		t.Fatalf("subject=%q result=%q", u.Subject, u.ResultParam)
	}
	want := []string{"circle", "square", "generic"}
	for i, c := range u.Cases {
		if c.ParameterName != want[i] {
			t.Fatalf("case %d: got %q want %q", i, c.ParameterName, want[i])
		}
	}
	if got := u.Cases[1].TypeExpr(); got != "*Square" {
		t.Fatalf("TypeExpr: %s", got)
	}
	if got := u.FullTypeName(); got != "example.com/shapes.Shape" {
		t.Fatalf("FullTypeName: %s", got)
	}
}

func TestNewUnion_DoesNotAliasInput(t *testing.T) {
	in := shapeSpec()
	u, err := NewUnion(in)
	if err != nil {
		t.Fatal(err)
	}
	u.Cases[0].TypeName = "Changed"
	if in.Cases[0].TypeName != "Circle" || in.Cases[0].ParameterName != "" {
		t.Fatalf("NewUnion modified its input: %+v", in.Cases[0])
	}
}

func TestNewUnion_OrdinalFallback(t *testing.T) {
	in := Union{Package: "p", TypeName: "U", Cases: []Case{{TypeName: "X"}, {TypeName: "X_"}}}
	u, err := NewUnion(in)
	if err != nil {
		t.Fatal(err)
	}
	if u.Cases[0].ParameterName != "case1" || u.Cases[1].ParameterName != "case2" {
		t.Fatalf("expected ordinal names, got %+v", u.Cases)
	}
}

func TestNewUnion_CaseShadowingSubject(t *testing.T) {
	in := Union{Package: "p", TypeName: "Node", Cases: []Case{{TypeName: "Node_"}, {TypeName: "Leaf"}}}
	u, err := NewUnion(in)
	if err != nil {
		t.Fatal(err)
	}
	if u.Cases[0].ParameterName != "case1" {
		t.Fatalf("case deriving the subject name must fall back, got %+v", u.Cases)
	}
}

func TestNewUnion_Generic(t *testing.T) {
	in := Union{
		Package:    "tree",
		TypeName:   "Tree",
		TypeParams: []TypeParam{{Name: "T"}, {Name: "R", Constraint: "comparable"}},
		Cases:      []Case{{TypeName: "Leaf", TypeArgs: []string{"T", "R"}}, {TypeName: "Node", Pointer: true, TypeArgs: []string{"T", "R"}}},
	}
	u, err := NewUnion(in)
	if err != nil {
		t.Fatal(err)
	}
	if u.ResultParam != "R1" {
		t.Fatalf("result param must avoid union params, got %s", u.ResultParam)
	}
	if u.TypeParams[0].Constraint != "any" {
		t.Fatalf("default constraint: %q", u.TypeParams[0].Constraint)
	}
	if got := u.TypeExpr(); got != "Tree[T, R]" {
		t.Fatalf("union TypeExpr: %s", got)
	}
	if got := u.Cases[1].TypeExpr(); got != "*Node[T, R]" {
		t.Fatalf("case TypeExpr: %s", got)
	}
}

func TestNewUnion_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   Union
		code string
	}{
		{"empty", Union{Package: "p", TypeName: "U"}, goswitch.CodeEmptyCases},
		{"duplicate", Union{Package: "p", TypeName: "U", Cases: []Case{{TypeName: "A"}, {TypeName: "A", Pointer: true}}}, goswitch.CodeDuplicateCase},
		{"unresolved", Union{Package: "p", TypeName: "U", Cases: []Case{{TypeName: "A", TypeArgs: []string{"T"}}}}, goswitch.CodeUnresolvedTypeParam},
		{"invalid case", Union{Package: "p", TypeName: "U", Cases: []Case{{TypeName: "func"}}}, goswitch.CodeInvalidIdentifier},
		{"missing package", Union{TypeName: "U", Cases: []Case{{TypeName: "A"}}}, goswitch.CodeMissingPackage},
		{"type param named v", Union{Package: "p", TypeName: "Tree", TypeParams: []TypeParam{{Name: "v"}}, Cases: []Case{{TypeName: "Leaf", TypeArgs: []string{"v"}}}}, goswitch.CodeInvalidIdentifier},
		{"type param named goswitch", Union{Package: "p", TypeName: "Tree", TypeParams: []TypeParam{{Name: "goswitch"}}, Cases: []Case{{TypeName: "Leaf"}}}, goswitch.CodeInvalidIdentifier},
		{"type param named like a case", Union{Package: "p", TypeName: "Tree", TypeParams: []TypeParam{{Name: "Leaf"}}, Cases: []Case{{TypeName: "Leaf", TypeArgs: []string{"Leaf"}}}}, goswitch.CodeInvalidIdentifier},
		{"type param named like a function", Union{Package: "p", TypeName: "Tree", TypeParams: []TypeParam{{Name: "MatchTree"}}, Cases: []Case{{TypeName: "Leaf"}}}, goswitch.CodeInvalidIdentifier},
		{"generic enum", Union{Package: "p", TypeName: "U", Kind: KindEnum, TypeParams: []TypeParam{{Name: "T"}}, Cases: []Case{{TypeName: "A"}}}, goswitch.CodeValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUnion(tc.in)
			if !errors.Is(err, ErrMalformedSchema) {
				t.Fatalf("expected ErrMalformedSchema, got %v", err)
			}
			iss, ok := goswitch.AsIssues(err)
			if !ok || len(iss) == 0 {
				t.Fatalf("expected issues, got %v", err)
			}
			if iss[0].Code != tc.code {
				t.Fatalf("code = %s, want %s (%v)", iss[0].Code, tc.code, iss)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindInterface, "interface": KindInterface, "Enum": KindEnum} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("struct"); err == nil {
		t.Fatalf("expected error")
	}
}
