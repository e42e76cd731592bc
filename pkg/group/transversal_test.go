package group

import (
	"slices"
	"testing"

	"github.com/permkit/permkit/pkg/perm"
)

var allStorages = []Storage{StorageExplicit, StorageSchreierTree, StorageShallowSchreierTree}

func TestTransversalsContract(t *testing.T) {
	gens := []perm.Perm{
		mustFromImages(t, []int{1, 2, 3, 4, 5, 0}), // 6-cycle
	}

	for _, storage := range allStorages {
		t.Run(storage.String(), func(t *testing.T) {
			tr := NewTransversals(storage, 6, 0, gens)

			if tr.Root() != 0 {
				t.Errorf("Root() = %d, want 0", tr.Root())
			}
			orbit := tr.Orbit()
			if len(orbit) != 6 || orbit[0] != 0 {
				t.Fatalf("Orbit() = %v, want all 6 points starting at the root", orbit)
			}
			sorted := slices.Clone(orbit)
			slices.Sort(sorted)
			if !slices.Equal(sorted, []int{0, 1, 2, 3, 4, 5}) {
				t.Fatalf("Orbit() = %v, want a permutation of 0..5", orbit)
			}

			for _, pt := range orbit {
				if !tr.Contains(pt) {
					t.Errorf("Contains(%d) = false for an orbit point", pt)
				}
				u := tr.Transversal(pt)
				if got := u.Image(0); got != pt {
					t.Errorf("Transversal(%d) maps root to %d", pt, got)
				}
			}
			if !tr.Transversal(0).IsIdentity() {
				t.Error("root representative should be the identity")
			}
		})
	}
}

func TestTransversalsPartialOrbit(t *testing.T) {
	gens := []perm.Perm{mustFromImages(t, []int{1, 0, 2, 3})}

	for _, storage := range allStorages {
		t.Run(storage.String(), func(t *testing.T) {
			tr := NewTransversals(storage, 4, 0, gens)
			if got := len(tr.Orbit()); got != 2 {
				t.Errorf("orbit size = %d, want 2", got)
			}
			if tr.Contains(2) {
				t.Error("Contains(2) = true for a point outside the orbit")
			}
		})
	}
}

func TestShallowTreeBoundsLookupDepth(t *testing.T) {
	// a long cycle produces deep tree paths; the shallow variant must keep
	// representatives correct while re-rooting long paths
	const degree = 64
	images := make([]int, degree)
	for i := range images {
		images[i] = (i + 1) % degree
	}
	gens := []perm.Perm{mustFromImages(t, images)}

	tr := NewTransversals(StorageShallowSchreierTree, degree, 0, gens)
	st := tr.(*schreierTree)

	bound := maxTreeDepth(degree)
	for _, pt := range tr.Orbit() {
		if st.depth[pt] > bound {
			t.Errorf("depth of %d is %d, exceeds bound %d", pt, st.depth[pt], bound)
		}
		if got := tr.Transversal(pt).Image(0); got != pt {
			t.Errorf("Transversal(%d) maps root to %d", pt, got)
		}
	}
	if len(st.gens) == st.numGens {
		t.Error("expected shortcut edges to be attached for a deep orbit")
	}
}

func TestIncoming(t *testing.T) {
	gens := []perm.Perm{mustFromImages(t, []int{1, 2, 0})}
	for _, storage := range allStorages {
		t.Run(storage.String(), func(t *testing.T) {
			tr := NewTransversals(storage, 3, 0, gens)
			// 1 is discovered from 0 via the only generator
			if !tr.Incoming(0, 0) {
				t.Error("Incoming(0, 0) = false for the discovery edge of 1")
			}
			// 0 is the root, not discovered from 2
			if tr.Incoming(2, 0) {
				t.Error("Incoming(2, 0) = true, but 0 is the root")
			}
		})
	}
}

func mustFromImages(t *testing.T, images []int) perm.Perm {
	t.Helper()
	p, err := perm.New(images)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", images, err)
	}
	return p
}
