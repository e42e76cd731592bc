package group

import (
	"slices"

	"github.com/permkit/permkit/pkg/perm"
)

// Orbit returns the points reachable from seed under repeated application
// of the generators, in breadth-first discovery order. Every orbit point is
// discovered exactly once; the seed always comes first.
func Orbit(seed int, gens []perm.Perm) []int {
	orbit := []int{seed}
	var degree int
	if len(gens) > 0 {
		degree = gens[0].Degree()
	} else {
		degree = seed + 1
	}

	visited := make([]bool, degree)
	visited[seed] = true

	for head := 0; head < len(orbit); head++ {
		pt := orbit[head]
		for _, g := range gens {
			if img := g.Image(pt); !visited[img] {
				visited[img] = true
				orbit = append(orbit, img)
			}
		}
	}
	return orbit
}

// OrbitSet returns the closure of a set of seed points under the
// generators, sorted ascending. It is the block-orbit primitive used when
// whole blocks rather than single points are the objects acted on.
func OrbitSet(seeds []int, gens []perm.Perm) []int {
	if len(gens) == 0 {
		out := slices.Clone(seeds)
		slices.Sort(out)
		return slices.Compact(out)
	}

	degree := gens[0].Degree()
	visited := make([]bool, degree)
	queue := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}

	for head := 0; head < len(queue); head++ {
		pt := queue[head]
		for _, g := range gens {
			if img := g.Image(pt); !visited[img] {
				visited[img] = true
				queue = append(queue, img)
			}
		}
	}

	slices.Sort(queue)
	return queue
}

// OrbitPartition partitions the points 0..degree-1 into orbits under a
// generator set. Orbits are ordered by their smallest point and each orbit
// is sorted ascending.
type OrbitPartition struct {
	orbits [][]int
	index  []int // point -> orbit position
}

// NewOrbitPartition computes the orbit partition of 0..degree-1 under the
// generators.
func NewOrbitPartition(degree int, gens []perm.Perm) *OrbitPartition {
	p := &OrbitPartition{index: make([]int, degree)}
	for i := range p.index {
		p.index[i] = -1
	}

	for pt := 0; pt < degree; pt++ {
		if p.index[pt] != -1 {
			continue
		}
		orbit := Orbit(pt, gens)
		slices.Sort(orbit)
		for _, q := range orbit {
			p.index[q] = len(p.orbits)
		}
		p.orbits = append(p.orbits, orbit)
	}
	return p
}

// Len returns the number of orbits.
func (p *OrbitPartition) Len() int { return len(p.orbits) }

// Orbit returns the i-th orbit. The slice is shared and must not be
// modified.
func (p *OrbitPartition) Orbit(i int) []int { return p.orbits[i] }

// Orbits returns all orbits. The slices are shared.
func (p *OrbitPartition) Orbits() [][]int { return p.orbits }

// IndexOf returns the position of the orbit containing the point.
func (p *OrbitPartition) IndexOf(point int) int { return p.index[point] }
