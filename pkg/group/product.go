package group

import (
	"errors"

	"github.com/permkit/permkit/pkg/perm"
)

// ErrNoFactors is returned by [DirectProduct] when no factor groups are
// given.
var ErrNoFactors = errors.New("product of zero groups")

// DirectProduct returns the direct product of the given groups, acting on
// the disjoint union of their ground sets: each factor's generators are
// shifted into their own coordinate range and extended by the identity
// elsewhere. The degree is the sum of the factor degrees.
func DirectProduct(factors ...*Group) (*Group, error) {
	if len(factors) == 0 {
		return nil, ErrNoFactors
	}

	total := 0
	for _, f := range factors {
		total += f.Degree()
	}

	gens := perm.NewSet(total)
	shift := 0
	for _, f := range factors {
		for _, g := range f.Generators().Perms() {
			gens.Insert(g.Shifted(shift).Extended(total))
		}
		shift += f.Degree()
	}

	return New(total, gens)
}

// WreathProduct returns the wreath product H wr K acting on
// degree(H) * degree(K) points: one copy of H per point of K, acting on
// consecutive coordinate blocks, plus K permuting the blocks among
// themselves.
func WreathProduct(h, k *Group) (*Group, error) {
	dh, dk := h.Degree(), k.Degree()
	total := dh * dk

	gens := perm.NewSet(total)
	for c := 0; c < dk; c++ {
		for _, g := range h.Generators().Perms() {
			gens.Insert(g.Shifted(c * dh).Extended(total))
		}
	}

	for _, g := range k.Generators().Perms() {
		images := make([]int, total)
		for block := 0; block < dk; block++ {
			for i := 0; i < dh; i++ {
				images[block*dh+i] = g.Image(block)*dh + i
			}
		}
		blockPerm, _ := perm.New(images)
		gens.Insert(blockPerm)
	}

	return New(total, gens)
}
