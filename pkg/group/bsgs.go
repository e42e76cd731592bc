package group

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/permkit/permkit/pkg/perm"
)

// BSGS is a base and strong generating set: an ordered sequence of base
// points, each paired with the fundamental orbit and transversal of the
// strong generators fixing all earlier base points. The chain invariant is
// that the pointwise stabilizer of the first i base points within the
// represented group is generated by the strong generators that fix those
// points. An empty base denotes the trivial group.
//
// A BSGS is mutable while it is being constructed or refined (base change,
// generator reduction); refinements never change the represented group.
// It is not safe for concurrent use.
type BSGS struct {
	degree       int
	base         []int
	strongGens   *perm.Set
	transversals []Transversals
	opts         Options
}

// NewBSGS builds a base and strong generating set for the group generated
// by the given permutations, using the construction and storage strategy
// from opts. A nil opts selects the deterministic construction with
// explicit transversals. The generators must all have the given degree.
func NewBSGS(degree int, generators *perm.Set, opts *Options) *BSGS {
	b := newTrivialBSGS(degree, opts)

	gens := generators.WithoutIdentity()
	if gens.Len() == 0 {
		return b
	}

	switch b.opts.Construction {
	case ConstructionRandomized:
		b.randomSchreierSims(gens)
	default:
		b.schreierSims(gens)
	}

	if b.opts.ReduceGenerators {
		b.ReduceGenerators()
	}
	return b
}

// ReconstructBSGS assembles a chain from a known base and strong
// generating set, recomputing the orbit and transversal of every level.
// The inputs must describe a previously valid chain; reconstructing from
// an arbitrary base or generator set yields a chain whose invariant does
// not hold. Rebuilding is much cheaper than a fresh Schreier-Sims run and
// backs cache restores.
func ReconstructBSGS(degree int, base []int, strongGens *perm.Set, opts *Options) *BSGS {
	b := newTrivialBSGS(degree, opts)
	b.strongGens = strongGens.WithoutIdentity()
	for _, pt := range base {
		b.extendBase(pt)
	}
	for level := range b.base {
		b.rebuildTransversals(level)
	}
	return b
}

func newTrivialBSGS(degree int, opts *Options) *BSGS {
	b := &BSGS{
		degree:     degree,
		strongGens: perm.NewSet(degree),
	}
	if opts != nil {
		b.opts = *opts
	}
	return b
}

// Degree returns the size of the ground set.
func (b *BSGS) Degree() int { return b.degree }

// Base returns the base points. The slice is shared and must not be
// modified.
func (b *BSGS) Base() []int { return b.base }

// StrongGenerators returns the strong generating set. The set is shared
// and must not be modified.
func (b *BSGS) StrongGenerators() *perm.Set { return b.strongGens }

// Orbit returns the fundamental orbit at the given level in discovery
// order.
func (b *BSGS) Orbit(level int) []int { return b.transversals[level].Orbit() }

// Transversal returns the level's representative mapping the level's base
// point to the given orbit point.
func (b *BSGS) Transversal(level, point int) perm.Perm {
	return b.transversals[level].Transversal(point)
}

// Levels returns the base length.
func (b *BSGS) Levels() int { return len(b.base) }

// Order returns the represented group's exact order: the product of the
// fundamental orbit sizes.
func (b *BSGS) Order() *big.Int {
	order := big.NewInt(1)
	for _, t := range b.transversals {
		order.Mul(order, big.NewInt(int64(len(t.Orbit()))))
	}
	return order
}

// Strip sifts a permutation down the chain. It returns the residue and the
// number of levels passed: a permutation is an element of the represented
// group exactly when the residue is the identity after passing every level.
func (b *BSGS) Strip(p perm.Perm) (perm.Perm, int) {
	return b.stripFrom(p, 0)
}

// StripsCompletely reports whether the permutation reduces to the identity
// through the whole chain.
func (b *BSGS) StripsCompletely(p perm.Perm) bool {
	residue, level := b.Strip(p)
	return level == len(b.base) && residue.IsIdentity()
}

func (b *BSGS) stripFrom(p perm.Perm, start int) (perm.Perm, int) {
	h := p
	for i := start; i < len(b.base); i++ {
		delta := h.Image(b.base[i])
		if !b.transversals[i].Contains(delta) {
			return h, i
		}
		h = h.Mul(b.transversals[i].Transversal(delta).Inverse())
	}
	return h, len(b.base)
}

// stabilizerGens collects the strong generators fixing the first `level`
// base points; level 0 returns every strong generator.
func (b *BSGS) stabilizerGens(level int) []perm.Perm {
	var gens []perm.Perm
	for _, g := range b.strongGens.Perms() {
		if b.stabilizesPrefix(g, level) {
			gens = append(gens, g)
		}
	}
	return gens
}

func (b *BSGS) stabilizesPrefix(g perm.Perm, level int) bool {
	for i := 0; i < level; i++ {
		if g.Image(b.base[i]) != b.base[i] {
			return false
		}
	}
	return true
}

// rebuildTransversals recomputes the orbit and transversal of one level
// from the current strong generators.
func (b *BSGS) rebuildTransversals(level int) {
	b.transversals[level] = NewTransversals(
		b.opts.Storage, b.degree, b.base[level], b.stabilizerGens(level))
}

// extendBase appends a new base point with an empty transversal slot. The
// caller must rebuild the new level afterwards.
func (b *BSGS) extendBase(point int) {
	b.base = append(b.base, point)
	b.transversals = append(b.transversals, nil)
}

// ensureBaseCovers extends the base until the permutation moves at least
// one base point, keeping every strong generator visible to the chain.
func (b *BSGS) ensureBaseCovers(g perm.Perm) {
	if !b.stabilizesPrefix(g, len(b.base)) {
		return
	}
	b.extendBase(g.SmallestMoved())
	b.rebuildTransversals(len(b.base) - 1)
}

// ChangeBase rebuilds the chain so that the base starts with the given
// points, in order, preserving the represented group. Points fixed by the
// whole group contribute singleton orbits and are allowed. Decomposition
// algorithms use this to align the base with an orbit or block structure.
func (b *BSGS) ChangeBase(prefix []int) {
	gens := b.strongGens
	b.base = nil
	b.transversals = nil
	b.strongGens = perm.NewSet(b.degree)

	for _, pt := range prefix {
		b.extendBase(pt)
	}
	for i := range b.base {
		b.transversals[i] = NewTransversals(b.opts.Storage, b.degree, b.base[i], nil)
	}

	if gens = gens.WithoutIdentity(); gens.Len() > 0 {
		b.schreierSims(gens)
	}
}

// ReduceGenerators removes strong generators that are expressible through
// the remaining ones, keeping the chain invariant intact. A removal is
// kept only if the candidate still strips to the identity through the
// chain rebuilt without it.
func (b *BSGS) ReduceGenerators() {
	candidates := slices.Clone(b.strongGens.Perms())

	// drop the most recently adjoined generators first; they are the most
	// likely to be products of earlier ones
	for i := len(candidates) - 1; i >= 0; i-- {
		g := candidates[i]

		reduced := perm.NewSet(b.degree)
		for _, h := range b.strongGens.Perms() {
			if !h.Equal(g) {
				reduced.Insert(h)
			}
		}
		if reduced.Len() == b.strongGens.Len() {
			continue
		}

		previous := b.strongGens
		b.strongGens = reduced
		for level := range b.base {
			b.rebuildTransversals(level)
		}

		if !b.StripsCompletely(g) {
			b.strongGens = previous
			for level := range b.base {
				b.rebuildTransversals(level)
			}
		}
	}
}

// String renders the base and strong generators, mainly for debugging.
func (b *BSGS) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "base: %v, strong generators:", b.base)
	for _, g := range b.strongGens.Perms() {
		fmt.Fprintf(&sb, " %s", g)
	}
	return sb.String()
}
