package group

import (
	"errors"
	"iter"
	"math/big"
	"math/rand/v2"
	"time"

	"github.com/permkit/permkit/pkg/observability"
	"github.com/permkit/permkit/pkg/perm"
)

// ErrInvalidDegree is returned by [New] when the degree is not positive.
var ErrInvalidDegree = errors.New("group degree must be positive")

// Group is a finite permutation group on the points 0..degree-1,
// represented by a base and strong generating set. The representation is
// compact: very large groups are handled without storing elements
// explicitly. A Group is immutable after construction except for internal
// BSGS refinements that never change the represented group.
type Group struct {
	bsgs  *BSGS
	order *big.Int
}

// New builds the group generated by the given permutations using default
// construction options (deterministic Schreier-Sims, explicit
// transversals). Every generator must be a permutation of exactly the
// given degree; mismatched degrees are a contract violation.
func New(degree int, generators *perm.Set) (*Group, error) {
	return NewWithOptions(degree, generators, nil)
}

// NewWithOptions builds the group generated by the given permutations with
// explicit construction options.
func NewWithOptions(degree int, generators *perm.Set, opts *Options) (*Group, error) {
	if degree < 1 {
		return nil, ErrInvalidDegree
	}

	start := time.Now()
	observability.Construction().OnStart(degree, generators.Len())

	g := FromBSGS(NewBSGS(degree, generators, opts))

	observability.Construction().OnComplete(degree, len(g.bsgs.base),
		g.bsgs.strongGens.Len(), time.Since(start))
	return g, nil
}

// FromBSGS wraps an existing chain. The chain is owned by the group
// afterwards and must not be mutated by the caller.
func FromBSGS(b *BSGS) *Group {
	return &Group{bsgs: b, order: b.Order()}
}

// Trivial returns the group containing only the identity on 0..degree-1.
func Trivial(degree int) *Group {
	return FromBSGS(newTrivialBSGS(degree, nil))
}

// Degree returns the size of the ground set.
func (g *Group) Degree() int { return g.bsgs.degree }

// Order returns the exact number of group elements. The result is a fresh
// big integer owned by the caller.
func (g *Group) Order() *big.Int { return new(big.Int).Set(g.order) }

// OrderIs reports whether the group's order equals n, avoiding big.Int
// plumbing for small comparisons.
func (g *Group) OrderIs(n int64) bool { return g.order.IsInt64() && g.order.Int64() == n }

// BSGS exposes the underlying chain.
func (g *Group) BSGS() *BSGS { return g.bsgs }

// Generators returns a generating set for the group: the strong generators
// of its chain. The set is shared and must not be modified.
func (g *Group) Generators() *perm.Set { return g.bsgs.strongGens }

// IsTrivial reports whether the group contains only the identity.
func (g *Group) IsTrivial() bool { return len(g.bsgs.base) == 0 }

// Contains reports whether the permutation is a group element, by sifting
// it down the chain.
func (g *Group) Contains(p perm.Perm) bool { return g.bsgs.StripsCompletely(p) }

// IsTransitive reports whether the group has a single orbit covering the
// whole ground set.
func (g *Group) IsTransitive() bool {
	return len(Orbit(0, g.bsgs.strongGens.Perms())) == g.Degree()
}

// IsSymmetric reports whether the group is the full symmetric group on its
// ground set.
func (g *Group) IsSymmetric() bool {
	return g.order.Cmp(symmetricOrder(g.Degree())) == 0
}

// IsAlternating reports whether the group is the alternating group on its
// ground set. The degree-1 and degree-2 alternating groups are trivial.
func (g *Group) IsAlternating() bool {
	if g.Degree() <= 2 {
		return g.IsTrivial()
	}
	return g.order.Cmp(alternatingOrder(g.Degree())) == 0
}

// Equal reports whether two groups of the same degree contain the same
// elements: equal orders and every generator of one contained in the
// other.
func (g *Group) Equal(other *Group) bool {
	if g.order.Cmp(other.order) != 0 {
		return false
	}
	for _, p := range other.bsgs.strongGens.Perms() {
		if !g.Contains(p) {
			return false
		}
	}
	return true
}

// RandomElement returns a uniformly distributed group element, built by
// composing one uniformly chosen transversal representative per base
// level: the chain is a bijective mixed-radix coordinate system for group
// elements, so independent per-level choices are uniform over the group.
// A nil rng falls back to the shared global source.
func (g *Group) RandomElement(rng *rand.Rand) perm.Perm {
	element := perm.Identity(g.Degree())
	for level := len(g.bsgs.base) - 1; level >= 0; level-- {
		orbit := g.bsgs.Orbit(level)
		var pick int
		if rng != nil {
			pick = rng.IntN(len(orbit))
		} else {
			pick = rand.IntN(len(orbit))
		}
		element = element.Mul(g.bsgs.Transversal(level, orbit[pick]))
	}
	return element
}

// Elements returns a lazy, restartable sequence over all group elements.
// Each element is produced exactly once per full iteration by odometer
// incrementing of one transversal index per base level; nothing close to
// the whole group is ever materialized. The order is an implementation
// artifact but is stable across repeated iterations of the same group
// instance.
func (g *Group) Elements() iter.Seq[perm.Perm] {
	// snapshot the per-level transversal elements so later internal chain
	// refinements cannot perturb an ongoing or repeated iteration
	levels := make([][]perm.Perm, len(g.bsgs.base))
	for i := range levels {
		orbit := g.bsgs.Orbit(i)
		reps := make([]perm.Perm, len(orbit))
		for j, pt := range orbit {
			reps[j] = g.bsgs.Transversal(i, pt)
		}
		levels[i] = reps
	}
	degree := g.Degree()

	return func(yield func(perm.Perm) bool) {
		state := make([]int, len(levels))
		for {
			element := perm.Identity(degree)
			for level := len(levels) - 1; level >= 0; level-- {
				element = element.Mul(levels[level][state[level]])
			}
			if !yield(element) {
				return
			}

			// odometer increment, carrying into deeper levels
			i := 0
			for ; i < len(state); i++ {
				state[i]++
				if state[i] < len(levels[i]) {
					break
				}
				state[i] = 0
			}
			if i == len(state) {
				return
			}
		}
	}
}

func symmetricOrder(degree int) *big.Int {
	order := big.NewInt(1)
	for i := int64(degree); i > 1; i-- {
		order.Mul(order, big.NewInt(i))
	}
	return order
}

// alternatingOrder is the falling factorial degree * (degree-1) * ... * 3,
// i.e. degree! / 2.
func alternatingOrder(degree int) *big.Int {
	order := big.NewInt(1)
	for i := int64(degree); i > 2; i-- {
		order.Mul(order, big.NewInt(i))
	}
	return order
}
