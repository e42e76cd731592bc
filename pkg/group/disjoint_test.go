package group

import (
	"testing"
)

func TestDisjointDecompositionBySupport(t *testing.T) {
	g := mustGroup(t, 5,
		cyclesPerm(t, 5, [][]int{{0, 1}}),
		cyclesPerm(t, 5, [][]int{{2, 3, 4}}),
	)

	factors := g.DisjointDecomposition(false, false)
	if len(factors) != 2 {
		t.Fatalf("got %d factors, want 2", len(factors))
	}
	if !factors[0].OrderIs(2) {
		t.Errorf("first factor order = %s, want 2", factors[0].Order())
	}
	if !factors[1].OrderIs(3) {
		t.Errorf("second factor order = %s, want 3", factors[1].Order())
	}
	for _, f := range factors {
		if f.Degree() != 5 {
			t.Errorf("factor degree = %d, want 5", f.Degree())
		}
	}
}

func TestDisjointDecompositionIndivisible(t *testing.T) {
	// one generator moving both orbits: the group of order 2 cannot split
	g := mustGroup(t, 4, cyclesPerm(t, 4, [][]int{{0, 1}, {2, 3}}))

	for _, complete := range []bool{false, true} {
		factors := g.DisjointDecomposition(complete, false)
		if len(factors) != 1 {
			t.Errorf("complete=%v: got %d factors, want 1", complete, len(factors))
		}
		if factors[0] != g {
			t.Errorf("complete=%v: indivisible group should be returned as is", complete)
		}
	}
}

func TestDisjointDecompositionCompleteSplitsSharedSupport(t *testing.T) {
	// the generators overlap in support, but the group is still C2 x C2
	g := mustGroup(t, 4,
		cyclesPerm(t, 4, [][]int{{0, 1}}),
		cyclesPerm(t, 4, [][]int{{0, 1}, {2, 3}}),
	)

	if quick := g.DisjointDecomposition(false, false); len(quick) != 1 {
		t.Errorf("support-based search found %d factors, want 1", len(quick))
	}

	factors := g.DisjointDecomposition(true, false)
	if len(factors) != 2 {
		t.Fatalf("complete search found %d factors, want 2", len(factors))
	}
	for i, f := range factors {
		if !f.OrderIs(2) {
			t.Errorf("factor %d order = %s, want 2", i, f.Order())
		}
		for _, p := range f.Generators().Perms() {
			if !g.Contains(p) {
				t.Errorf("factor %d escapes the group: %s", i, p)
			}
		}
	}
	if factors[0].Generators().SmallestMoved() >= factors[1].Generators().SmallestMoved() {
		t.Error("factors should be ordered by smallest moved point")
	}
}

func TestDisjointDecompositionOptimizeOrbits(t *testing.T) {
	g, err := DirectProduct(Symmetric(3), Cyclic(2), Cyclic(2))
	if err != nil {
		t.Fatalf("DirectProduct failed: %v", err)
	}

	for _, optimize := range []bool{false, true} {
		factors := g.DisjointDecomposition(true, optimize)
		if len(factors) != 3 {
			t.Fatalf("optimize=%v: got %d factors, want 3", optimize, len(factors))
		}
		product := factors[0].Order()
		for _, f := range factors[1:] {
			product.Mul(product, f.Order())
		}
		if product.Cmp(g.Order()) != 0 {
			t.Errorf("optimize=%v: factor orders multiply to %s, want %s", optimize, product, g.Order())
		}
	}
}

func TestDisjointDecompositionTrivial(t *testing.T) {
	g := Trivial(3)
	factors := g.DisjointDecomposition(true, true)
	if len(factors) != 1 || factors[0] != g {
		t.Errorf("trivial group should decompose to itself, got %d factors", len(factors))
	}
}
