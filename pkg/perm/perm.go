package perm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrNotBijective is returned by [New] when the image table is not a
	// permutation of 0..n-1 (an image is out of range or occurs twice).
	ErrNotBijective = errors.New("image table is not a bijection")

	// ErrInvalidCycle is returned by [FromCycles] when a cycle references a
	// point outside 0..degree-1 or repeats a point.
	ErrInvalidCycle = errors.New("invalid cycle")

	// ErrDegreeMismatch is returned by operations that combine permutations
	// of different degrees.
	ErrDegreeMismatch = errors.New("degree mismatch")
)

// Perm is an immutable permutation of the points 0..n-1, stored as an image
// table: p[i] is the image of point i. All operations return new values and
// never modify their receivers. The zero value is the empty permutation of
// degree 0 (the identity on the empty set).
//
// Composition is applied left to right: (p.Mul(q)).Image(i) == q(p(i)).
type Perm []int

// Identity returns the identity permutation of the given degree.
func Identity(degree int) Perm {
	p := make(Perm, degree)
	for i := range p {
		p[i] = i
	}
	return p
}

// New validates and copies an image table into a Perm. The table must
// contain every point 0..len(images)-1 exactly once.
func New(images []int) (Perm, error) {
	seen := make([]bool, len(images))
	for _, v := range images {
		if v < 0 || v >= len(images) || seen[v] {
			return nil, ErrNotBijective
		}
		seen[v] = true
	}
	return slices.Clone(Perm(images)), nil
}

// FromCycles builds a permutation of the given degree from disjoint cycles.
// Points not mentioned in any cycle are fixed. Cycles of length 0 or 1 are
// allowed and have no effect.
func FromCycles(degree int, cycles [][]int) (Perm, error) {
	p := Identity(degree)
	touched := make([]bool, degree)

	for _, cycle := range cycles {
		for i, pt := range cycle {
			if pt < 0 || pt >= degree {
				return nil, fmt.Errorf("%w: point %d out of range for degree %d", ErrInvalidCycle, pt, degree)
			}
			if touched[pt] {
				return nil, fmt.Errorf("%w: point %d appears twice", ErrInvalidCycle, pt)
			}
			touched[pt] = true
			p[pt] = cycle[(i+1)%len(cycle)]
		}
	}
	return p, nil
}

// Degree returns the size of the set the permutation acts on.
func (p Perm) Degree() int { return len(p) }

// Image returns the image of a point. The point must lie in 0..Degree()-1.
func (p Perm) Image(i int) int { return p[i] }

// IsIdentity reports whether the permutation fixes every point.
func (p Perm) IsIdentity() bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}
	return true
}

// Equal reports whether two permutations have the same degree and images.
func (p Perm) Equal(q Perm) bool { return slices.Equal(p, q) }

// Compare orders permutations first by degree, then lexicographically by
// image table. It is the ordering used for canonical de-duplication.
func (p Perm) Compare(q Perm) int {
	if c := len(p) - len(q); c != 0 {
		return c
	}
	return slices.Compare(p, q)
}

// Mul returns the composition "p then q": the permutation mapping i to
// q(p(i)). Both permutations must have the same degree.
func (p Perm) Mul(q Perm) Perm {
	r := make(Perm, len(p))
	for i, v := range p {
		r[i] = q[v]
	}
	return r
}

// Inverse returns the permutation mapping p(i) back to i.
func (p Perm) Inverse() Perm {
	r := make(Perm, len(p))
	for i, v := range p {
		r[v] = i
	}
	return r
}

// Shifted returns a permutation of degree Degree()+shift fixing the first
// shift points and acting as p on the rest.
func (p Perm) Shifted(shift int) Perm {
	r := Identity(len(p) + shift)
	for i, v := range p {
		r[i+shift] = v + shift
	}
	return r
}

// Extended returns a permutation of the given larger degree acting as p on
// 0..Degree()-1 and fixing all added points. If degree <= Degree(), p is
// returned unchanged.
func (p Perm) Extended(degree int) Perm {
	if degree <= len(p) {
		return p
	}
	r := Identity(degree)
	copy(r, p)
	return r
}

// Restricted returns a permutation of the same degree acting as p on the
// given points and fixing everything else. The point set must be closed
// under p; images that would escape the set are dropped, leaving the
// corresponding points fixed.
func (p Perm) Restricted(points []int) Perm {
	in := make([]bool, len(p))
	for _, pt := range points {
		in[pt] = true
	}
	r := Identity(len(p))
	for _, pt := range points {
		if in[p[pt]] {
			r[pt] = p[pt]
		}
	}
	return r
}

// Moved returns the sorted points not fixed by p.
func (p Perm) Moved() []int {
	var moved []int
	for i, v := range p {
		if v != i {
			moved = append(moved, i)
		}
	}
	return moved
}

// SmallestMoved returns the smallest point not fixed by p, or -1 for the
// identity.
func (p Perm) SmallestMoved() int {
	for i, v := range p {
		if v != i {
			return i
		}
	}
	return -1
}

// LargestMoved returns the largest point not fixed by p, or -1 for the
// identity.
func (p Perm) LargestMoved() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != i {
			return i
		}
	}
	return -1
}

// Cycles returns the non-trivial cycles of p, each starting at its smallest
// element, ordered by that element.
func (p Perm) Cycles() [][]int {
	seen := make([]bool, len(p))
	var cycles [][]int
	for i := range p {
		if seen[i] || p[i] == i {
			seen[i] = true
			continue
		}
		var cycle []int
		for j := i; !seen[j]; j = p[j] {
			seen[j] = true
			cycle = append(cycle, j)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// String renders p in cycle notation, e.g. "(0, 1)(2, 4, 3)". The identity
// renders as "()".
func (p Perm) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}

	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, pt := range cycle {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", pt)
		}
		b.WriteByte(')')
	}
	return b.String()
}
