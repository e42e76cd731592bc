package group

import (
	"math/bits"
	"slices"

	"github.com/permkit/permkit/pkg/perm"
)

// Transversals stores, for one fundamental orbit, a representative
// permutation per orbit point mapping the orbit root to that point. The
// three implementations share this contract and are interchangeable at any
// BSGS level; they differ only in storage and lookup cost.
type Transversals interface {
	// Root returns the orbit seed; Transversal(Root()) is the identity.
	Root() int
	// Orbit returns the orbit points in breadth-first discovery order,
	// starting with the root. The slice is shared and must not be modified.
	Orbit() []int
	// Contains reports whether the point lies in the orbit.
	Contains(point int) bool
	// Transversal returns the representative u with u(Root()) == point. The
	// point must lie in the orbit.
	Transversal(point int) perm.Perm
	// Incoming reports whether the edge origin --gen--> gen(origin) is the
	// discovery edge of gen(origin). Schreier generators along discovery
	// edges are trivial and can be skipped.
	Incoming(origin, gen int) bool

	// extend records the discovery of gen(parent) via the given generator.
	extend(parent, gen int)
}

// NewTransversals computes the orbit of root under the generators by
// breadth-first closure and returns a transversal structure with the
// requested storage strategy. Generators must all have the given degree.
func NewTransversals(storage Storage, degree, root int, gens []perm.Perm) Transversals {
	var t Transversals
	switch storage {
	case StorageSchreierTree:
		t = newSchreierTree(degree, root, gens, -1)
	case StorageShallowSchreierTree:
		t = newSchreierTree(degree, root, gens, maxTreeDepth(degree))
	default:
		t = newExplicitTransversals(degree, root, gens)
	}

	orbit := t.Orbit()
	for head := 0; head < len(orbit); head++ {
		pt := orbit[head]
		for gi, g := range gens {
			if !t.Contains(g.Image(pt)) {
				t.extend(pt, gi)
			}
		}
		orbit = t.Orbit()
	}
	return t
}

// maxTreeDepth bounds shallow Schreier tree paths at roughly log2(degree).
func maxTreeDepth(degree int) int {
	return max(1, bits.Len(uint(degree)))
}

// explicitTransversals keeps one composed permutation per orbit point.
type explicitTransversals struct {
	root   int
	orbit  []int
	table  []perm.Perm // per point, nil outside the orbit
	parent []int
	label  []int
	gens   []perm.Perm
}

func newExplicitTransversals(degree, root int, gens []perm.Perm) *explicitTransversals {
	t := &explicitTransversals{
		root:   root,
		orbit:  []int{root},
		table:  make([]perm.Perm, degree),
		parent: make([]int, degree),
		label:  make([]int, degree),
		gens:   gens,
	}
	for i := range t.parent {
		t.parent[i] = -1
		t.label[i] = -1
	}
	t.table[root] = perm.Identity(degree)
	t.parent[root] = root
	return t
}

func (t *explicitTransversals) Root() int                       { return t.root }
func (t *explicitTransversals) Orbit() []int                    { return t.orbit }
func (t *explicitTransversals) Contains(point int) bool         { return t.table[point] != nil }
func (t *explicitTransversals) Transversal(point int) perm.Perm { return t.table[point] }

func (t *explicitTransversals) Incoming(origin, gen int) bool {
	dest := t.gens[gen].Image(origin)
	return t.table[dest] != nil && t.parent[dest] == origin && t.label[dest] == gen
}

func (t *explicitTransversals) extend(parent, gen int) {
	dest := t.gens[gen].Image(parent)
	t.table[dest] = t.table[parent].Mul(t.gens[gen])
	t.parent[dest] = parent
	t.label[dest] = gen
	t.orbit = append(t.orbit, dest)
}

// schreierTree keeps one edge label per orbit point and recomposes
// transversal elements along the tree path on demand. With a non-negative
// maxDepth it behaves as a shallow tree: whenever a path would exceed the
// bound, the composed representative is attached to the root as a shortcut
// edge, keeping all future lookups below the bound.
type schreierTree struct {
	root     int
	degree   int
	orbit    []int
	inOrbit  []bool
	parent   []int
	label    []int
	depth    []int
	gens     []perm.Perm // generators, then shortcut edges
	numGens  int         // count of real generators
	maxDepth int         // -1 = unbounded
}

func newSchreierTree(degree, root int, gens []perm.Perm, maxDepth int) *schreierTree {
	t := &schreierTree{
		root:     root,
		degree:   degree,
		orbit:    []int{root},
		inOrbit:  make([]bool, degree),
		parent:   make([]int, degree),
		label:    make([]int, degree),
		depth:    make([]int, degree),
		gens:     slices.Clone(gens),
		numGens:  len(gens),
		maxDepth: maxDepth,
	}
	for i := range t.parent {
		t.parent[i] = -1
		t.label[i] = -1
	}
	t.inOrbit[root] = true
	t.parent[root] = root
	return t
}

func (t *schreierTree) Root() int               { return t.root }
func (t *schreierTree) Orbit() []int            { return t.orbit }
func (t *schreierTree) Contains(point int) bool { return t.inOrbit[point] }

func (t *schreierTree) Transversal(point int) perm.Perm {
	var labels []int
	for pt := point; pt != t.root; pt = t.parent[pt] {
		labels = append(labels, t.label[pt])
	}

	u := perm.Identity(t.degree)
	for i := len(labels) - 1; i >= 0; i-- {
		u = u.Mul(t.gens[labels[i]])
	}
	return u
}

func (t *schreierTree) Incoming(origin, gen int) bool {
	if gen >= t.numGens {
		return false
	}
	dest := t.gens[gen].Image(origin)
	return t.inOrbit[dest] && t.parent[dest] == origin && t.label[dest] == gen
}

func (t *schreierTree) extend(parent, gen int) {
	dest := t.gens[gen].Image(parent)
	t.parent[dest] = parent
	t.label[dest] = gen
	t.depth[dest] = t.depth[parent] + 1
	t.inOrbit[dest] = true
	t.orbit = append(t.orbit, dest)

	if t.maxDepth >= 0 && t.depth[dest] > t.maxDepth {
		// attach the composed representative directly to the root
		shortcut := t.Transversal(dest)
		t.gens = append(t.gens, shortcut)
		t.parent[dest] = t.root
		t.label[dest] = len(t.gens) - 1
		t.depth[dest] = 1
	}
}
