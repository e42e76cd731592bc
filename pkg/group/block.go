package group

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/permkit/permkit/pkg/perm"
)

// ErrNotAPartition is returned by [NewBlockSystem] when the blocks do not
// partition the ground set.
var ErrNotAPartition = errors.New("blocks do not partition the ground set")

// BlockSystem is a partition of the points 0..degree-1 that is invariant
// under a generator set: every generator maps each block onto some block.
// Blocks are sorted ascending and ordered by their smallest element.
type BlockSystem struct {
	degree int
	blocks [][]int
}

// NewBlockSystem validates that the blocks are non-empty, disjoint and
// cover 0..degree-1, and returns them in canonical order. Invariance under
// any particular generator set is the caller's concern; see [IsBlock].
func NewBlockSystem(degree int, blocks [][]int) (*BlockSystem, error) {
	covered := make([]bool, degree)
	canonical := make([][]int, 0, len(blocks))

	for _, block := range blocks {
		if len(block) == 0 {
			return nil, fmt.Errorf("%w: empty block", ErrNotAPartition)
		}
		sorted := slices.Clone(block)
		slices.Sort(sorted)
		for _, pt := range sorted {
			if pt < 0 || pt >= degree || covered[pt] {
				return nil, fmt.Errorf("%w: point %d", ErrNotAPartition, pt)
			}
			covered[pt] = true
		}
		canonical = append(canonical, sorted)
	}
	for pt, ok := range covered {
		if !ok {
			return nil, fmt.Errorf("%w: point %d uncovered", ErrNotAPartition, pt)
		}
	}

	slices.SortFunc(canonical, func(a, b []int) int { return a[0] - b[0] })
	return &BlockSystem{degree: degree, blocks: canonical}, nil
}

// blockSystemFromClasses builds a block system from a class index per
// point.
func blockSystemFromClasses(classes []int) *BlockSystem {
	byClass := make(map[int][]int)
	for pt, class := range classes {
		byClass[class] = append(byClass[class], pt)
	}
	blocks := make([][]int, 0, len(byClass))
	for _, block := range byClass {
		blocks = append(blocks, block)
	}
	bs, _ := NewBlockSystem(len(classes), blocks)
	return bs
}

// Degree returns the size of the partitioned ground set.
func (bs *BlockSystem) Degree() int { return bs.degree }

// Size returns the number of blocks.
func (bs *BlockSystem) Size() int { return len(bs.blocks) }

// Block returns the i-th block. The slice is shared and must not be
// modified.
func (bs *BlockSystem) Block(i int) []int { return bs.blocks[i] }

// Blocks returns all blocks. The slices are shared.
func (bs *BlockSystem) Blocks() [][]int { return bs.blocks }

// Trivial reports whether the partition is all-singletons or a single
// block.
func (bs *BlockSystem) Trivial() bool {
	return len(bs.blocks) == bs.degree || len(bs.blocks) <= 1
}

// IndexOf returns the position of the block containing the point.
func (bs *BlockSystem) IndexOf(point int) int {
	for i, block := range bs.blocks {
		if _, ok := slices.BinarySearch(block, point); ok {
			return i
		}
	}
	return -1
}

// String renders the partition as {{0, 2}, {1, 3}}.
func (bs *BlockSystem) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, block := range bs.blocks {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('{')
		for j, pt := range block {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", pt)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

func (bs *BlockSystem) key() string {
	return fmt.Sprint(bs.blocks)
}

// IsBlock reports whether every generator maps the candidate set either
// onto itself or onto a set disjoint from it.
func IsBlock(gens []perm.Perm, block []int) bool {
	sorted := slices.Clone(block)
	slices.Sort(sorted)

	for _, g := range gens {
		image := make([]int, len(sorted))
		for i, pt := range sorted {
			image[i] = g.Image(pt)
		}
		slices.Sort(image)

		if slices.Equal(image, sorted) {
			continue
		}
		for _, pt := range image {
			if _, ok := slices.BinarySearch(sorted, pt); ok {
				return false
			}
		}
	}
	return true
}

// FromBlock expands one block into the full invariant partition by taking
// the orbit of the block under the generators, treating whole blocks as
// the objects acted on. Points outside the block's orbit closure become
// singleton blocks.
func FromBlock(gens []perm.Perm, block []int) *BlockSystem {
	degree := block[len(block)-1] + 1
	if len(gens) > 0 {
		degree = gens[0].Degree()
	}

	seed := slices.Clone(block)
	slices.Sort(seed)

	seen := map[string]bool{fmt.Sprint(seed): true}
	blocks := [][]int{seed}
	for head := 0; head < len(blocks); head++ {
		current := blocks[head]
		for _, g := range gens {
			image := make([]int, len(current))
			for i, pt := range current {
				image[i] = g.Image(pt)
			}
			slices.Sort(image)
			if key := fmt.Sprint(image); !seen[key] {
				seen[key] = true
				blocks = append(blocks, image)
			}
		}
	}

	covered := make([]bool, degree)
	for _, b := range blocks {
		for _, pt := range b {
			covered[pt] = true
		}
	}
	for pt, ok := range covered {
		if !ok {
			blocks = append(blocks, []int{pt})
		}
	}

	bs, _ := NewBlockSystem(degree, blocks)
	return bs
}

// MinimalBlockSystem returns the invariant partition generated by the
// smallest block containing all points of the initial class: the class is
// grown by the merges forced by block closure, then expanded with
// [FromBlock]. With an initial class of two points this yields a minimal
// non-trivial block system whenever one separates the pair.
func MinimalBlockSystem(gens []perm.Perm, initial []int) *BlockSystem {
	degree := gens[0].Degree()

	parent := make([]int, degree)
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

	var queue []int
	root := initial[0]
	for _, pt := range initial[1:] {
		if find(pt) != find(root) {
			parent[find(pt)] = find(root)
			queue = append(queue, pt)
		}
	}

	// every merge of classes forces the merges of their images; process
	// until no forced merge remains
	for len(queue) > 0 {
		gamma := queue[0]
		queue = queue[1:]
		delta := find(gamma)

		for _, g := range gens {
			a, b := find(g.Image(gamma)), find(g.Image(delta))
			if a != b {
				parent[a] = b
				queue = append(queue, a)
			}
		}
	}

	var class []int
	for pt := 0; pt < degree; pt++ {
		if find(pt) == find(root) {
			class = append(class, pt)
		}
	}
	return FromBlock(gens, class)
}

// BlockPermuter returns the induced action of the generators on the
// blocks, as a permutation group of degree Size().
func (bs *BlockSystem) BlockPermuter(gens []perm.Perm) (*Group, error) {
	index := make([]int, bs.degree)
	for i, block := range bs.blocks {
		for _, pt := range block {
			index[pt] = i
		}
	}

	permuters := perm.NewSet(len(bs.blocks))
	for _, g := range gens {
		images := make([]int, len(bs.blocks))
		for i, block := range bs.blocks {
			images[i] = index[g.Image(block[0])]
		}
		p, err := perm.New(images)
		if err != nil {
			return nil, err
		}
		permuters.Insert(p)
	}

	return New(len(bs.blocks), permuters)
}

// NonTrivialBlockSystems enumerates the non-trivial invariant block
// systems of a group. Transitive groups are handled by minimal-block
// search over stabilizer orbit representatives; non-transitive groups by
// combining the orbit partition with the block systems of each orbit's
// restricted action.
//
// For non-transitive groups the enumeration is therefore per orbit:
// each returned system refines the orbit partition on all but one
// orbit. Block systems whose blocks tie points from different orbits
// together, such as {{0,2},{1,3}} for the group generated by
// (0 1)(2 3), are not reported.
func NonTrivialBlockSystems(g *Group) []*BlockSystem {
	if g.Degree() < 2 {
		return nil
	}
	if g.IsTransitive() {
		return nonTrivialTransitive(g)
	}
	return nonTrivialNonTransitive(g)
}

func nonTrivialTransitive(g *Group) []*BlockSystem {
	gens := g.Generators().Perms()

	// representatives of the point-stabilizer orbits suffice as partners
	// for the minimal-block search: points in one stabilizer orbit yield
	// the same minimal systems
	if g.bsgs.Levels() == 0 || g.bsgs.base[0] != 0 {
		g.bsgs.ChangeBase([]int{0})
	}
	stabGens := g.bsgs.stabilizerGens(1)

	seenRep := make([]bool, g.Degree())
	seen := make(map[string]bool)
	var systems []*BlockSystem

	for delta := 1; delta < g.Degree(); delta++ {
		if seenRep[delta] {
			continue
		}
		for _, pt := range Orbit(delta, stabGens) {
			seenRep[pt] = true
		}

		bs := MinimalBlockSystem(gens, []int{0, delta})
		if bs.Trivial() || seen[bs.key()] {
			continue
		}
		seen[bs.key()] = true
		systems = append(systems, bs)
	}
	return systems
}

func nonTrivialNonTransitive(g *Group) []*BlockSystem {
	gens := g.Generators().Perms()
	orbits := NewOrbitPartition(g.Degree(), gens)

	seen := make(map[string]bool)
	var systems []*BlockSystem
	add := func(bs *BlockSystem) {
		if !bs.Trivial() && !seen[bs.key()] {
			seen[bs.key()] = true
			systems = append(systems, bs)
		}
	}

	// the orbits themselves always form an invariant partition
	classes := make([]int, g.Degree())
	for pt := range classes {
		classes[pt] = orbits.IndexOf(pt)
	}
	add(blockSystemFromClasses(classes))

	// refine one orbit at a time: the blocks of the restricted action,
	// lifted back, combine with the remaining orbits kept whole
	for oi, orbit := range orbits.Orbits() {
		if len(orbit) < 2 {
			continue
		}

		restricted, err := New(len(orbit), restrictGens(gens, orbit))
		if err != nil {
			continue
		}

		for _, sub := range NonTrivialBlockSystems(restricted) {
			lifted := make([][]int, 0, sub.Size()+orbits.Len()-1)
			for _, block := range sub.Blocks() {
				global := make([]int, len(block))
				for i, pt := range block {
					global[i] = orbit[pt]
				}
				lifted = append(lifted, global)
			}
			for oj, other := range orbits.Orbits() {
				if oj != oi {
					lifted = append(lifted, slices.Clone(other))
				}
			}
			if bs, err := NewBlockSystem(g.Degree(), lifted); err == nil {
				add(bs)
			}
		}
	}
	return systems
}

// restrictGens maps generators stabilizing an orbit (given sorted) to
// permutations of local degree len(points).
func restrictGens(gens []perm.Perm, points []int) *perm.Set {
	local := make(map[int]int, len(points))
	for i, pt := range points {
		local[pt] = i
	}

	restricted := perm.NewSet(len(points))
	for _, g := range gens {
		images := make([]int, len(points))
		for i, pt := range points {
			images[i] = local[g.Image(pt)]
		}
		if p, err := perm.New(images); err == nil {
			restricted.Insert(p)
		}
	}
	return restricted
}
