package group

import (
	"slices"
	"time"

	"github.com/permkit/permkit/pkg/observability"
	"github.com/permkit/permkit/pkg/perm"
)

// DisjointDecomposition splits the group into a direct product of
// subgroups with pairwise disjoint support, all of the original degree.
// The product of the returned factors is the group itself; a group that
// does not split is returned as its own single factor.
//
// The quick variant partitions the generators by overlapping support and
// cannot split inside a single generator class. With complete set, a
// recursive bipartition search over the orbit components finds the finest
// disjoint decomposition; optimizeOrbits pre-merges orbits whose actions
// are correlated, shrinking the search space without changing the result.
func (g *Group) DisjointDecomposition(complete, optimizeOrbits bool) []*Group {
	if g.IsTrivial() {
		return []*Group{g}
	}

	start := time.Now()
	observability.Decomposition().OnStart("disjoint", g.Degree())

	var factors []*Group
	if complete {
		factors = g.disjointComplete(optimizeOrbits)
	} else {
		factors = g.disjointByGeneratorSupport()
	}

	observability.Decomposition().OnComplete("disjoint", g.Degree(), len(factors), time.Since(start))
	return factors
}

// disjointByGeneratorSupport merges generators with overlapping moved
// points into classes and emits one factor per class.
func (g *Group) disjointByGeneratorSupport() []*Group {
	gens := g.Generators().WithoutIdentity().Perms()

	parent := make([]int, g.Degree())
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(pt int) int {
		if parent[pt] != pt {
			parent[pt] = find(parent[pt])
		}
		return parent[pt]
	}

	for _, gen := range gens {
		moved := gen.Moved()
		for _, pt := range moved[1:] {
			parent[find(pt)] = find(moved[0])
		}
	}

	byClass := make(map[int]*perm.Set)
	for _, gen := range gens {
		class := find(gen.Moved()[0])
		if byClass[class] == nil {
			byClass[class] = perm.NewSet(g.Degree())
		}
		byClass[class].Insert(gen)
	}
	if len(byClass) <= 1 {
		return []*Group{g}
	}

	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	slices.Sort(classes)

	factors := make([]*Group, 0, len(classes))
	for _, class := range classes {
		factor, err := New(g.Degree(), byClass[class])
		if err != nil {
			return []*Group{g}
		}
		factors = append(factors, factor)
	}
	return factors
}

func (g *Group) disjointComplete(optimizeOrbits bool) []*Group {
	gens := g.Generators().WithoutIdentity().Perms()

	components := movedOrbits(g.Degree(), gens)
	if optimizeOrbits {
		components = mergeDependentOrbits(g.Degree(), gens, components)
	}
	if len(components) < 2 {
		return []*Group{g}
	}

	type task struct {
		group      *Group
		components [][]int
	}

	var factors []*Group
	stack := []task{{group: g, components: components}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right, ok := t.group.bipartition(t.components)
		if !ok {
			factors = append(factors, t.group)
			continue
		}
		stack = append(stack, task{left.group, left.components}, task{right.group, right.components})
	}

	slices.SortFunc(factors, func(a, b *Group) int {
		return a.Generators().SmallestMoved() - b.Generators().SmallestMoved()
	})
	return factors
}

// movedOrbits returns the orbits of the moved points, sorted by smallest
// element.
func movedOrbits(degree int, gens []perm.Perm) [][]int {
	partition := NewOrbitPartition(degree, gens)
	var components [][]int
	for _, orbit := range partition.Orbits() {
		if len(orbit) > 1 {
			components = append(components, orbit)
		}
	}
	return components
}

// mergeDependentOrbits coalesces orbit pairs whose actions are not
// independent: two orbits can only end up in different factors when the
// restriction of the group to their union is the direct product of the
// two projections, which is an order comparison.
func mergeDependentOrbits(degree int, gens []perm.Perm, orbits [][]int) [][]int {
	parent := make([]int, len(orbits))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < len(orbits); i++ {
		for j := i + 1; j < len(orbits); j++ {
			if find(i) == find(j) {
				continue
			}
			if orbitsDependent(gens, orbits[i], orbits[j]) {
				parent[find(j)] = find(i)
			}
		}
	}

	byClass := make(map[int][]int)
	for i, orbit := range orbits {
		class := find(i)
		byClass[class] = append(byClass[class], orbit...)
	}

	var merged [][]int
	for _, component := range byClass {
		slices.Sort(component)
		merged = append(merged, component)
	}
	slices.SortFunc(merged, func(a, b []int) int { return a[0] - b[0] })
	return merged
}

func orbitsDependent(gens []perm.Perm, o1, o2 []int) bool {
	union := make([]int, 0, len(o1)+len(o2))
	union = append(union, o1...)
	union = append(union, o2...)
	slices.Sort(union)

	restricted, err := New(len(union), restrictGens(gens, union))
	if err != nil {
		return true
	}
	proj1, err := New(len(o1), restrictGens(gens, o1))
	if err != nil {
		return true
	}
	proj2, err := New(len(o2), restrictGens(gens, o2))
	if err != nil {
		return true
	}

	product := proj1.Order()
	product.Mul(product, proj2.Order())
	return restricted.Order().Cmp(product) != 0
}

type halfDecomposition struct {
	group      *Group
	components [][]int
}

// bipartition searches for a split of the components into two halves such
// that restricting every generator to either half stays inside the group
// and the two restricted subgroups multiply up to the full order.
func (g *Group) bipartition(components [][]int) (left, right halfDecomposition, ok bool) {
	if len(components) < 2 || len(components) > 62 {
		return halfDecomposition{}, halfDecomposition{}, false
	}
	gens := g.Generators().WithoutIdentity().Perms()

	// component 0 always sits in the left half, so each unordered split
	// is visited once
	for mask := uint64(1); mask < uint64(1)<<len(components)-1; mask += 2 {
		var leftPts, rightPts []int
		var leftComps, rightComps [][]int
		for i, component := range components {
			if mask&(1<<i) != 0 {
				leftPts = append(leftPts, component...)
				leftComps = append(leftComps, component)
			} else {
				rightPts = append(rightPts, component...)
				rightComps = append(rightComps, component)
			}
		}

		leftGens := perm.NewSet(g.Degree())
		rightGens := perm.NewSet(g.Degree())
		valid := true
		for _, gen := range gens {
			gl, gr := gen.Restricted(leftPts), gen.Restricted(rightPts)
			if !g.Contains(gl) || !g.Contains(gr) {
				valid = false
				break
			}
			leftGens.Insert(gl)
			rightGens.Insert(gr)
		}
		if !valid {
			continue
		}

		lg, err := New(g.Degree(), leftGens)
		if err != nil {
			continue
		}
		rg, err := New(g.Degree(), rightGens)
		if err != nil {
			continue
		}

		product := lg.Order()
		product.Mul(product, rg.Order())
		if product.Cmp(g.Order()) != 0 {
			continue
		}

		return halfDecomposition{lg, leftComps}, halfDecomposition{rg, rightComps}, true
	}
	return halfDecomposition{}, halfDecomposition{}, false
}
