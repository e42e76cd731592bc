package perm

import "strings"

// Set is a duplicate-free, insertion-ordered collection of permutations
// sharing one degree. The smallest and largest moved point of every inserted
// permutation are cached so that repeated support queries avoid rescanning
// image tables.
//
// The zero value is not usable - use NewSet.
type Set struct {
	degree   int
	perms    []Perm
	index    map[string]int
	smallest []int // per perm, -1 for identity
	largest  []int
}

// NewSet creates an empty set of permutations of the given degree.
func NewSet(degree int) *Set {
	return &Set{
		degree: degree,
		index:  make(map[string]int),
	}
}

// SetOf creates a set holding the given permutations, all of which must
// have the given degree. Duplicates collapse.
func SetOf(degree int, perms ...Perm) *Set {
	s := NewSet(degree)
	for _, p := range perms {
		s.Insert(p)
	}
	return s
}

func permKey(p Perm) string {
	var b strings.Builder
	b.Grow(len(p) * 2)
	for _, v := range p {
		b.WriteByte(byte(v))
		b.WriteByte(byte(v >> 8))
	}
	return b.String()
}

// Insert adds a permutation unless an equal one is already present.
// It reports whether the set grew. Inserting a permutation of the wrong
// degree is a contract violation; behaviour is undefined.
func (s *Set) Insert(p Perm) bool {
	key := permKey(p)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.perms)
	s.perms = append(s.perms, p)
	s.smallest = append(s.smallest, p.SmallestMoved())
	s.largest = append(s.largest, p.LargestMoved())
	return true
}

// Contains reports whether an equal permutation is in the set.
func (s *Set) Contains(p Perm) bool {
	_, ok := s.index[permKey(p)]
	return ok
}

// Len returns the number of permutations in the set.
func (s *Set) Len() int { return len(s.perms) }

// Degree returns the common degree of all permutations in the set.
func (s *Set) Degree() int { return s.degree }

// Perms returns the permutations in insertion order. The returned slice is
// shared with the set and must not be modified.
func (s *Set) Perms() []Perm { return s.perms }

// At returns the i-th inserted permutation.
func (s *Set) At(i int) Perm { return s.perms[i] }

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := NewSet(s.degree)
	for _, p := range s.perms {
		c.Insert(p)
	}
	return c
}

// Identity reports whether the set is empty or contains only the identity.
func (s *Set) Identity() bool {
	for _, sm := range s.smallest {
		if sm != -1 {
			return false
		}
	}
	return true
}

// WithoutIdentity returns a copy of the set with identity elements removed.
func (s *Set) WithoutIdentity() *Set {
	c := NewSet(s.degree)
	for i, p := range s.perms {
		if s.smallest[i] != -1 {
			c.Insert(p)
		}
	}
	return c
}

// SmallestMoved returns the smallest point moved by any permutation in the
// set, or -1 if the set generates the trivial group.
func (s *Set) SmallestMoved() int {
	smallest := -1
	for _, sm := range s.smallest {
		if sm == -1 {
			continue
		}
		if smallest == -1 || sm < smallest {
			smallest = sm
		}
	}
	return smallest
}

// LargestMoved returns the largest point moved by any permutation in the
// set, or -1 if the set generates the trivial group.
func (s *Set) LargestMoved() int {
	largest := -1
	for _, lg := range s.largest {
		if lg > largest {
			largest = lg
		}
	}
	return largest
}

// MovedPoints returns the sorted union of the moved points of all
// permutations in the set.
func (s *Set) MovedPoints() []int {
	moved := make([]bool, s.degree)
	for _, p := range s.perms {
		for i, v := range p {
			if v != i {
				moved[i] = true
			}
		}
	}
	var points []int
	for i, m := range moved {
		if m {
			points = append(points, i)
		}
	}
	return points
}
