package group

import (
	"math/rand/v2"
	"testing"

	"github.com/permkit/permkit/pkg/perm"
)

func cyclesPerm(t *testing.T, degree int, cycles [][]int) perm.Perm {
	t.Helper()
	p, err := perm.FromCycles(degree, cycles)
	if err != nil {
		t.Fatalf("FromCycles(%d, %v) failed: %v", degree, cycles, err)
	}
	return p
}

func mustGroup(t *testing.T, degree int, gens ...perm.Perm) *Group {
	t.Helper()
	g, err := New(degree, perm.SetOf(degree, gens...))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestNewRejectsNonPositiveDegree(t *testing.T) {
	if _, err := New(0, perm.NewSet(0)); err != ErrInvalidDegree {
		t.Errorf("New(0) error = %v, want ErrInvalidDegree", err)
	}
}

func TestOrderOfTranspositionGroup(t *testing.T) {
	g := mustGroup(t, 3, cyclesPerm(t, 3, [][]int{{0, 1}}))
	if !g.OrderIs(2) {
		t.Errorf("Order() = %s, want 2", g.Order())
	}
	if g.IsTransitive() {
		t.Error("a single transposition on 3 points should not be transitive")
	}
}

func TestContains(t *testing.T) {
	g := mustGroup(t, 4,
		cyclesPerm(t, 4, [][]int{{0, 1}}),
		cyclesPerm(t, 4, [][]int{{0, 1, 2, 3}}),
	)
	if !g.OrderIs(24) {
		t.Fatalf("Order() = %s, want 24", g.Order())
	}
	if !g.Contains(cyclesPerm(t, 4, [][]int{{1, 3, 2}})) {
		t.Error("S4 should contain (1, 3, 2)")
	}

	h := mustGroup(t, 4, cyclesPerm(t, 4, [][]int{{0, 1, 2, 3}}))
	if h.Contains(cyclesPerm(t, 4, [][]int{{0, 1}})) {
		t.Error("C4 should not contain a transposition")
	}
}

func TestConstructionAndStorageMatrix(t *testing.T) {
	gens := perm.SetOf(4,
		cyclesPerm(t, 4, [][]int{{0, 1}}),
		cyclesPerm(t, 4, [][]int{{0, 1, 2, 3}}),
	)

	constructions := []Construction{ConstructionDeterministic, ConstructionRandomized}
	storages := []Storage{StorageExplicit, StorageSchreierTree, StorageShallowSchreierTree}

	for _, c := range constructions {
		for _, s := range storages {
			t.Run(c.String()+"/"+s.String(), func(t *testing.T) {
				g, err := NewWithOptions(4, gens, &Options{Construction: c, Storage: s})
				if err != nil {
					t.Fatalf("NewWithOptions failed: %v", err)
				}
				if !g.OrderIs(24) {
					t.Errorf("Order() = %s, want 24", g.Order())
				}
				if !g.Contains(cyclesPerm(t, 4, [][]int{{2, 3}})) {
					t.Error("group should contain (2, 3)")
				}
			})
		}
	}
}

func TestReduceGeneratorsOption(t *testing.T) {
	gens := perm.SetOf(5,
		cyclesPerm(t, 5, [][]int{{0, 1}}),
		cyclesPerm(t, 5, [][]int{{0, 1, 2, 3, 4}}),
	)
	g, err := NewWithOptions(5, gens, &Options{ReduceGenerators: true})
	if err != nil {
		t.Fatalf("NewWithOptions failed: %v", err)
	}
	if !g.OrderIs(120) {
		t.Errorf("Order() = %s, want 120", g.Order())
	}
}

func TestIsSymmetricAndAlternating(t *testing.T) {
	if !Symmetric(5).IsSymmetric() {
		t.Error("Symmetric(5).IsSymmetric() = false")
	}
	if Symmetric(5).IsAlternating() {
		t.Error("Symmetric(5).IsAlternating() = true")
	}
	if !Alternating(5).IsAlternating() {
		t.Error("Alternating(5).IsAlternating() = false")
	}
	if Alternating(5).IsSymmetric() {
		t.Error("Alternating(5).IsSymmetric() = true")
	}
	if !Trivial(2).IsAlternating() {
		t.Error("the alternating group on 2 points is trivial")
	}
}

func TestEqual(t *testing.T) {
	a := mustGroup(t, 3,
		cyclesPerm(t, 3, [][]int{{0, 1}}),
		cyclesPerm(t, 3, [][]int{{0, 1, 2}}),
	)
	b := Symmetric(3)
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("two presentations of S3 should be equal")
	}
	if a.Equal(Alternating(3)) {
		t.Error("S3 should differ from A3")
	}
}

func TestTrivialGroup(t *testing.T) {
	g := Trivial(4)
	if !g.IsTrivial() {
		t.Error("IsTrivial() = false")
	}
	if !g.OrderIs(1) {
		t.Errorf("Order() = %s, want 1", g.Order())
	}
	if !g.Contains(perm.Identity(4)) {
		t.Error("trivial group should contain the identity")
	}
}

func TestRandomElementIsMember(t *testing.T) {
	g := Dihedral(6)
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		if p := g.RandomElement(rng); !g.Contains(p) {
			t.Fatalf("RandomElement returned a non-member: %s", p)
		}
	}
}

func TestElementsEnumeratesWholeGroup(t *testing.T) {
	g := Dihedral(4)
	seen := make(map[string]bool)
	for p := range g.Elements() {
		if !g.Contains(p) {
			t.Fatalf("Elements yielded a non-member: %s", p)
		}
		seen[p.String()] = true
	}
	if len(seen) != 8 {
		t.Errorf("enumerated %d distinct elements, want 8", len(seen))
	}
}

func TestElementsIsRestartable(t *testing.T) {
	g := Cyclic(5)
	elements := g.Elements()

	count := 0
	for range elements {
		count++
		if count == 2 {
			break
		}
	}
	total := 0
	for range elements {
		total++
	}
	if total != 5 {
		t.Errorf("second iteration yielded %d elements, want 5", total)
	}
}

func TestDirectProduct(t *testing.T) {
	g, err := DirectProduct(Cyclic(2), Cyclic(3))
	if err != nil {
		t.Fatalf("DirectProduct failed: %v", err)
	}
	if g.Degree() != 5 {
		t.Errorf("Degree() = %d, want 5", g.Degree())
	}
	if !g.OrderIs(6) {
		t.Errorf("Order() = %s, want 6", g.Order())
	}
	if g.IsTransitive() {
		t.Error("a direct product on disjoint points should not be transitive")
	}
}

func TestDirectProductOfNothing(t *testing.T) {
	if _, err := DirectProduct(); err != ErrNoFactors {
		t.Errorf("DirectProduct() error = %v, want ErrNoFactors", err)
	}
}

func TestWreathProduct(t *testing.T) {
	g, err := WreathProduct(Symmetric(2), Symmetric(2))
	if err != nil {
		t.Fatalf("WreathProduct failed: %v", err)
	}
	if g.Degree() != 4 {
		t.Errorf("Degree() = %d, want 4", g.Degree())
	}
	if !g.OrderIs(8) {
		t.Errorf("Order() = %s, want 8", g.Order())
	}

	big, err := WreathProduct(Symmetric(3), Symmetric(2))
	if err != nil {
		t.Fatalf("WreathProduct failed: %v", err)
	}
	// |S3 wr S2| = 6^2 * 2
	if !big.OrderIs(72) {
		t.Errorf("Order() = %s, want 72", big.Order())
	}
}
