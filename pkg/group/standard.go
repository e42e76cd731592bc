package group

import "github.com/permkit/permkit/pkg/perm"

// Standard group constructors. Each assembles its base and strong
// generating set directly from the known structure of the group instead of
// running the general Schreier-Sims closure, and takes its order from the
// closed form. Degrees below 1 are contract violations.

// newDirectBSGS assembles a chain from a base and strong generating set
// already known to satisfy the chain invariant.
func newDirectBSGS(degree int, base []int, gens *perm.Set) *BSGS {
	b := newTrivialBSGS(degree, nil)
	b.strongGens = gens
	for _, pt := range base {
		b.extendBase(pt)
	}
	for level := range b.base {
		b.rebuildTransversals(level)
	}
	return b
}

// Symmetric returns the symmetric group on 0..degree-1, generated by the
// adjacent transpositions (i, i+1).
func Symmetric(degree int) *Group {
	if degree <= 1 {
		return Trivial(max(degree, 1))
	}

	gens := perm.NewSet(degree)
	base := make([]int, degree-1)
	for i := 0; i < degree-1; i++ {
		t, _ := perm.FromCycles(degree, [][]int{{i, i + 1}})
		gens.Insert(t)
		base[i] = i
	}

	return &Group{
		bsgs:  newDirectBSGS(degree, base, gens),
		order: symmetricOrder(degree),
	}
}

// Cyclic returns the cyclic group generated by the full cycle
// (0, 1, ..., degree-1).
func Cyclic(degree int) *Group {
	if degree <= 1 {
		return Trivial(max(degree, 1))
	}

	cycle := make([]int, degree)
	for i := range cycle {
		cycle[i] = i
	}
	rot, _ := perm.FromCycles(degree, [][]int{cycle})

	b := newDirectBSGS(degree, []int{0}, perm.SetOf(degree, rot))
	return &Group{bsgs: b, order: b.Order()}
}

// Alternating returns the alternating group on 0..degree-1, generated by
// the consecutive 3-cycles (i, i+1, i+2). Its order is the falling
// factorial degree * (degree-1) * ... * 3, i.e. degree!/2.
func Alternating(degree int) *Group {
	if degree <= 2 {
		return Trivial(max(degree, 1))
	}

	gens := perm.NewSet(degree)
	base := make([]int, degree-2)
	for i := 0; i < degree-2; i++ {
		c, _ := perm.FromCycles(degree, [][]int{{i, i + 1, i + 2}})
		gens.Insert(c)
		base[i] = i
	}

	return &Group{
		bsgs:  newDirectBSGS(degree, base, gens),
		order: alternatingOrder(degree),
	}
}

// Dihedral returns the symmetry group of a regular n-gon acting on its n
// vertices, of order 2n, generated by a rotation and a reflection. The
// degenerate cases n = 1 and n = 2 are the groups of order 2 on two
// points and the Klein four-group on four points.
func Dihedral(n int) *Group {
	switch {
	case n <= 1:
		return Symmetric(2)
	case n == 2:
		a, _ := perm.FromCycles(4, [][]int{{0, 1}})
		c, _ := perm.FromCycles(4, [][]int{{2, 3}})
		b := newDirectBSGS(4, []int{0, 2}, perm.SetOf(4, a, c))
		return &Group{bsgs: b, order: b.Order()}
	}

	rotation := make([]int, n)
	reflection := make([]int, n)
	for i := 0; i < n; i++ {
		rotation[i] = (i + 1) % n
		reflection[i] = (n - i) % n
	}
	rot, _ := perm.New(rotation)
	refl, _ := perm.New(reflection)

	// the reflection fixes 0, so {rot, refl} and base (0, 1) already form
	// a valid chain: the stabilizer of 0 is generated by the reflection
	b := newDirectBSGS(n, []int{0, 1}, perm.SetOf(n, rot, refl))
	return &Group{bsgs: b, order: b.Order()}
}
