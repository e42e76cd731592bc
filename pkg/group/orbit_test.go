package group

import (
	"slices"
	"testing"

	"github.com/permkit/permkit/pkg/perm"
)

func TestOrbit(t *testing.T) {
	gens := []perm.Perm{
		cyclesPerm(t, 6, [][]int{{0, 1, 2}}),
		cyclesPerm(t, 6, [][]int{{4, 5}}),
	}

	orbit := Orbit(0, gens)
	if orbit[0] != 0 {
		t.Errorf("orbit starts with %d, want the seed 0", orbit[0])
	}
	sorted := slices.Clone(orbit)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{0, 1, 2}) {
		t.Errorf("Orbit(0) = %v, want a permutation of [0 1 2]", orbit)
	}

	if got := Orbit(3, gens); !slices.Equal(got, []int{3}) {
		t.Errorf("Orbit(3) = %v, want [3]", got)
	}
}

func TestOrbitWithoutGenerators(t *testing.T) {
	if got := Orbit(2, nil); !slices.Equal(got, []int{2}) {
		t.Errorf("Orbit(2, nil) = %v, want [2]", got)
	}
}

func TestOrbitSet(t *testing.T) {
	gens := []perm.Perm{cyclesPerm(t, 6, [][]int{{0, 2}, {1, 3}})}

	if got := OrbitSet([]int{0, 1}, gens); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("OrbitSet({0,1}) = %v, want [0 1 2 3]", got)
	}
	if got := OrbitSet([]int{4, 4, 5}, nil); !slices.Equal(got, []int{4, 5}) {
		t.Errorf("OrbitSet without generators = %v, want [4 5]", got)
	}
}

func TestOrbitPartition(t *testing.T) {
	gens := []perm.Perm{
		cyclesPerm(t, 5, [][]int{{0, 1}}),
		cyclesPerm(t, 5, [][]int{{2, 3, 4}}),
	}
	p := NewOrbitPartition(5, gens)

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if !slices.Equal(p.Orbit(0), []int{0, 1}) {
		t.Errorf("Orbit(0) = %v, want [0 1]", p.Orbit(0))
	}
	if !slices.Equal(p.Orbit(1), []int{2, 3, 4}) {
		t.Errorf("Orbit(1) = %v, want [2 3 4]", p.Orbit(1))
	}
	if p.IndexOf(3) != 1 {
		t.Errorf("IndexOf(3) = %d, want 1", p.IndexOf(3))
	}
	if p.IndexOf(1) != 0 {
		t.Errorf("IndexOf(1) = %d, want 0", p.IndexOf(1))
	}
}
