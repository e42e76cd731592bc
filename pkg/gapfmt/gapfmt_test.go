package gapfmt

import (
	"testing"

	"github.com/permkit/permkit/pkg/errors"
	"github.com/permkit/permkit/pkg/perm"
)

func TestParsePerm(t *testing.T) {
	p, err := ParsePerm("(1,2,3)(4,5)", 5)
	if err != nil {
		t.Fatalf("ParsePerm failed: %v", err)
	}
	want := perm.Perm{1, 2, 0, 4, 3}
	if !p.Equal(want) {
		t.Errorf("ParsePerm = %v, want %v", []int(p), []int(want))
	}
}

func TestParsePermIdentity(t *testing.T) {
	p, err := ParsePerm("()", 3)
	if err != nil {
		t.Fatalf("ParsePerm failed: %v", err)
	}
	if !p.IsIdentity() {
		t.Errorf("ParsePerm(\"()\") = %v, want identity", []int(p))
	}
}

func TestParsePermErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		degree int
		code   errors.Code
	}{
		{"bad degree", "(1,2)", 0, errors.ErrCodeInvalidDegree},
		{"zero point", "(0,1)", 3, errors.ErrCodeInvalidCycle},
		{"garbage", "(1,x)", 3, errors.ErrCodeInvalidCycle},
		{"unterminated", "(1,2", 3, errors.ErrCodeInvalidCycle},
		{"missing paren", "1,2)", 3, errors.ErrCodeInvalidCycle},
		{"empty", "", 3, errors.ErrCodeInvalidCycle},
		{"out of range", "(1,4)", 3, errors.ErrCodeInvalidCycle},
		{"repeated point", "(1,2)(2,3)", 3, errors.ErrCodeInvalidCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePerm(tt.input, tt.degree)
			if errors.GetCode(err) != tt.code {
				t.Errorf("ParsePerm(%q, %d) code = %v, want %v", tt.input, tt.degree, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestFormatPerm(t *testing.T) {
	p, _ := perm.FromCycles(5, [][]int{{0, 1, 2}, {3, 4}})
	if got, want := FormatPerm(p), "(1,2,3)(4,5)"; got != want {
		t.Errorf("FormatPerm = %q, want %q", got, want)
	}
	if got := FormatPerm(perm.Identity(4)); got != "()" {
		t.Errorf("FormatPerm(identity) = %q, want %q", got, "()")
	}
}

func TestParseGenerators(t *testing.T) {
	degree, gens, err := ParseGenerators("Group((1,2),(1,2,3))")
	if err != nil {
		t.Fatalf("ParseGenerators failed: %v", err)
	}
	if degree != 3 {
		t.Errorf("degree = %d, want 3", degree)
	}
	if gens.Len() != 2 {
		t.Errorf("Len() = %d, want 2", gens.Len())
	}
}

func TestParseGeneratorsIdentityOnly(t *testing.T) {
	degree, gens, err := ParseGenerators("Group(())")
	if err != nil {
		t.Fatalf("ParseGenerators failed: %v", err)
	}
	if degree != 1 {
		t.Errorf("degree = %d, want 1", degree)
	}
	if !gens.Identity() {
		t.Error("generator set should be trivial")
	}
}

func TestParseGeneratorsToleratesWhitespace(t *testing.T) {
	degree, gens, err := ParseGenerators("Group( (1,2), (3, 4) )")
	if err != nil {
		t.Fatalf("ParseGenerators failed: %v", err)
	}
	if degree != 4 || gens.Len() != 2 {
		t.Errorf("degree/Len = %d/%d, want 4/2", degree, gens.Len())
	}
}

func TestParseGeneratorsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"no wrapper", "(1,2)", errors.ErrCodeInvalidGroupExpr},
		{"bad charset", "Group([1,2])", errors.ErrCodeInvalidGroupExpr},
		{"empty generator", "Group((1,2),,(3,4))", errors.ErrCodeInvalidGroupExpr},
		{"unbalanced", "Group((1,2)", errors.ErrCodeInvalidGroupExpr},
		{"empty expr", "", errors.ErrCodeInvalidGroupExpr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseGenerators(tt.input)
			if errors.GetCode(err) != tt.code {
				t.Errorf("ParseGenerators(%q) code = %v, want %v", tt.input, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup("Group((1,2),(1,2,3,4))")
	if err != nil {
		t.Fatalf("ParseGroup failed: %v", err)
	}
	if g.Degree() != 4 {
		t.Errorf("Degree() = %d, want 4", g.Degree())
	}
	if !g.OrderIs(24) {
		t.Errorf("Order() = %s, want 24", g.Order())
	}
}

func TestParseGroupWithDegree(t *testing.T) {
	g, err := ParseGroupWithDegree(6, "Group((1,2),(1,2,3))")
	if err != nil {
		t.Fatalf("ParseGroupWithDegree failed: %v", err)
	}
	if g.Degree() != 6 {
		t.Errorf("Degree() = %d, want 6", g.Degree())
	}
	if !g.OrderIs(6) {
		t.Errorf("Order() = %s, want 6", g.Order())
	}
}

func TestParseGroupWithDegreeErrors(t *testing.T) {
	if _, err := ParseGroupWithDegree(2, "Group((1,2,3))"); !errors.Is(err, errors.ErrCodeInvalidDegree) {
		t.Errorf("degree 2 with 3-cycle: error = %v, want %s", err, errors.ErrCodeInvalidDegree)
	}
	if _, err := ParseGroupWithDegree(0, "Group((1,2))"); !errors.Is(err, errors.ErrCodeInvalidDegree) {
		t.Errorf("degree 0: error = %v, want %s", err, errors.ErrCodeInvalidDegree)
	}
}

func TestFormatGenerators(t *testing.T) {
	a, _ := perm.FromCycles(3, [][]int{{0, 1}})
	b, _ := perm.FromCycles(3, [][]int{{0, 1, 2}})
	gens := perm.SetOf(3, a, b)
	if got, want := FormatGenerators(gens), "Group((1,2),(1,2,3))"; got != want {
		t.Errorf("FormatGenerators = %q, want %q", got, want)
	}
}

func TestFormatGeneratorsTrivial(t *testing.T) {
	if got := FormatGenerators(perm.NewSet(2)); got != "Group(())" {
		t.Errorf("FormatGenerators(empty) = %q, want %q", got, "Group(())")
	}
	if got := FormatGenerators(perm.SetOf(2, perm.Identity(2))); got != "Group(())" {
		t.Errorf("FormatGenerators(identity) = %q, want %q", got, "Group(())")
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	exprs := []string{
		"Group((1,2),(1,2,3))",
		"Group((1,2,3)(4,5))",
		"Group((2,4),(1,2,3,4))",
		"Group(())",
	}
	for _, expr := range exprs {
		_, gens, err := ParseGenerators(expr)
		if err != nil {
			t.Fatalf("ParseGenerators(%q) failed: %v", expr, err)
		}
		if got := FormatGenerators(gens); got != expr {
			t.Errorf("round trip of %q produced %q", expr, got)
		}
	}
}
