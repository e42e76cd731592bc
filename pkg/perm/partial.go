package perm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrNotInjective is returned by [NewPartial] and [PartialFromPoints]
	// when two domain points share an image.
	ErrNotInjective = errors.New("partial mapping is not injective")

	// ErrNotExtendable is returned by [Partial.ToPerm] when the partial
	// permutation cannot be completed to a total permutation of the
	// requested degree by fixing the unmapped points.
	ErrNotExtendable = errors.New("partial permutation cannot be extended to a permutation")
)

// Partial is an injective partial map on the points 0..n-1. Entry i of the
// mapping array is the image of i, or -1 if i is outside the domain. Like
// [Perm], values are immutable once constructed.
//
// The mapping is kept normalized: it never ends in -1, so equal partial
// permutations have equal mapping arrays regardless of how they were built.
type Partial struct {
	mapping []int
	dom     []int // sorted domain points
	im      []int // sorted image points
}

// PartialIdentity returns the partial permutation mapping every point of
// 0..degree-1 to itself.
func PartialIdentity(degree int) Partial {
	m := make([]int, degree)
	for i := range m {
		m[i] = i
	}
	p, _ := NewPartial(m)
	return p
}

// NewPartial builds a partial permutation from a mapping array. Entries must
// be -1 (undefined) or pairwise-distinct non-negative images.
func NewPartial(mapping []int) (Partial, error) {
	trimmed := slices.Clone(mapping)
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == -1 {
		trimmed = trimmed[:len(trimmed)-1]
	}

	var dom, im []int
	seen := make(map[int]bool)
	for i, v := range trimmed {
		if v == -1 {
			continue
		}
		if v < 0 {
			return Partial{}, fmt.Errorf("%w: image %d", ErrNotInjective, v)
		}
		if seen[v] {
			return Partial{}, fmt.Errorf("%w: image %d occurs twice", ErrNotInjective, v)
		}
		seen[v] = true
		dom = append(dom, i)
		im = append(im, v)
	}
	slices.Sort(im)

	return Partial{mapping: trimmed, dom: dom, im: im}, nil
}

// PartialFromPoints builds a partial permutation mapping dom[i] to im[i]
// for every i. The slices must have equal length, dom must not repeat
// points and im must be injective.
func PartialFromPoints(dom, im []int) (Partial, error) {
	if len(dom) != len(im) {
		return Partial{}, fmt.Errorf("%w: domain and image differ in length", ErrNotInjective)
	}

	maxDom := -1
	for _, d := range dom {
		if d > maxDom {
			maxDom = d
		}
	}

	mapping := make([]int, maxDom+1)
	for i := range mapping {
		mapping[i] = -1
	}
	for i, d := range dom {
		if d < 0 {
			return Partial{}, fmt.Errorf("%w: negative domain point %d", ErrNotInjective, d)
		}
		if mapping[d] != -1 {
			return Partial{}, fmt.Errorf("%w: domain point %d occurs twice", ErrNotInjective, d)
		}
		mapping[d] = im[i]
	}

	return NewPartial(mapping)
}

// Image returns the image of a point, or -1 if the point is outside the
// domain (including points beyond the mapping array).
func (p Partial) Image(i int) int {
	if i < 0 || i >= len(p.mapping) {
		return -1
	}
	return p.mapping[i]
}

// Mapping returns the normalized mapping array. The returned slice is
// shared and must not be modified.
func (p Partial) Mapping() []int { return p.mapping }

// Dom returns the sorted domain points. The slice is shared.
func (p Partial) Dom() []int { return p.dom }

// Im returns the sorted image points. The slice is shared.
func (p Partial) Im() []int { return p.im }

// DomMin returns the smallest domain point, or -1 for the empty domain.
func (p Partial) DomMin() int {
	if len(p.dom) == 0 {
		return -1
	}
	return p.dom[0]
}

// DomMax returns the largest domain point, or -1 for the empty domain.
func (p Partial) DomMax() int {
	if len(p.dom) == 0 {
		return -1
	}
	return p.dom[len(p.dom)-1]
}

// ImMin returns the smallest image point, or -1 for the empty domain.
func (p Partial) ImMin() int {
	if len(p.im) == 0 {
		return -1
	}
	return p.im[0]
}

// ImMax returns the largest image point, or -1 for the empty domain.
func (p Partial) ImMax() int {
	if len(p.im) == 0 {
		return -1
	}
	return p.im[len(p.im)-1]
}

// IsEmpty reports whether the domain is empty.
func (p Partial) IsEmpty() bool { return len(p.dom) == 0 }

// IsIdentity reports whether every domain point maps to itself. The empty
// partial permutation is an identity.
func (p Partial) IsIdentity() bool {
	for _, d := range p.dom {
		if p.mapping[d] != d {
			return false
		}
	}
	return true
}

// Equal reports whether two partial permutations define the same mapping.
func (p Partial) Equal(q Partial) bool { return slices.Equal(p.mapping, q.mapping) }

// Inverse returns the partial permutation mapping p(i) back to i, swapping
// domain and image.
func (p Partial) Inverse() Partial {
	mapping := make([]int, p.ImMax()+1)
	for i := range mapping {
		mapping[i] = -1
	}
	for _, d := range p.dom {
		mapping[p.mapping[d]] = d
	}
	inv, _ := NewPartial(mapping)
	return inv
}

// Mul returns the composition "p then q": defined at i exactly when i is in
// the domain of p and p(i) is in the domain of q.
func (p Partial) Mul(q Partial) Partial {
	mapping := make([]int, len(p.mapping))
	for i, v := range p.mapping {
		mapping[i] = q.Image(v)
		if v == -1 {
			mapping[i] = -1
		}
	}
	r, _ := NewPartial(mapping)
	return r
}

// Restricted returns the partial permutation agreeing with p on the given
// domain points and undefined everywhere else.
func (p Partial) Restricted(domain []int) Partial {
	mapping := make([]int, len(p.mapping))
	for i := range mapping {
		mapping[i] = -1
	}
	for _, d := range domain {
		if d >= 0 && d < len(p.mapping) {
			mapping[d] = p.mapping[d]
		}
	}
	r, _ := NewPartial(mapping)
	return r
}

// ToPerm completes the partial permutation to a total permutation of the
// given degree by fixing every unmapped point. It fails if a domain or
// image point does not fit the degree or if fixing the unmapped points
// collides with an existing image.
func (p Partial) ToPerm(degree int) (Perm, error) {
	if p.DomMax() >= degree || p.ImMax() >= degree {
		return nil, fmt.Errorf("%w: point out of range for degree %d", ErrNotExtendable, degree)
	}

	inDom := make([]bool, degree)
	inIm := make([]bool, degree)
	for _, d := range p.dom {
		inDom[d] = true
	}
	for _, i := range p.im {
		inIm[i] = true
	}

	images := make([]int, degree)
	for i := range images {
		switch {
		case inDom[i]:
			images[i] = p.mapping[i]
		case inIm[i]:
			// i must stay fixed but is already the image of a domain point
			return nil, fmt.Errorf("%w: point %d cannot remain fixed", ErrNotExtendable, i)
		default:
			images[i] = i
		}
	}

	return New(images)
}

// String renders the partial permutation as a concatenation of chains and
// cycles, e.g. "[1, 8][3, 0, 5, 4](2, 6)(7, 9, 10)". A chain [a, b, c]
// starts at a domain point with no preimage and follows images until an
// unmapped point is reached; chains come first, ordered by starting point,
// followed by cycles ordered by their smallest element. The empty partial
// permutation renders as "()".
func (p Partial) String() string {
	if p.IsEmpty() {
		return "()"
	}

	inDom := make(map[int]bool, len(p.dom))
	for _, d := range p.dom {
		inDom[d] = true
	}
	inIm := make(map[int]bool, len(p.im))
	for _, i := range p.im {
		inIm[i] = true
	}

	var b strings.Builder
	writeSeq := func(open, close byte, seq []int) {
		b.WriteByte(open)
		for i, pt := range seq {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", pt)
		}
		b.WriteByte(close)
	}

	inChain := make(map[int]bool)
	for _, start := range p.dom {
		if inIm[start] {
			continue
		}
		chain := []int{start}
		for pt := p.mapping[start]; ; pt = p.mapping[pt] {
			chain = append(chain, pt)
			inChain[pt] = true
			if !inDom[pt] {
				break
			}
		}
		writeSeq('[', ']', chain)
	}

	seen := make(map[int]bool)
	for _, start := range p.dom {
		if seen[start] || inChain[start] || !inIm[start] {
			continue
		}
		var cycle []int
		for pt := start; !seen[pt]; pt = p.mapping[pt] {
			seen[pt] = true
			cycle = append(cycle, pt)
		}
		writeSeq('(', ')', cycle)
	}

	return b.String()
}
