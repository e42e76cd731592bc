package perm

import (
	"slices"
	"testing"
)

func TestSetInsertDeduplicates(t *testing.T) {
	s := NewSet(3)
	p := mustPerm(t, []int{1, 0, 2})

	if !s.Insert(p) {
		t.Error("first Insert should report growth")
	}
	if s.Insert(slices.Clone(p)) {
		t.Error("inserting an equal permutation should not grow the set")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if !s.Contains(p) {
		t.Error("Contains should find the inserted permutation")
	}
}

func TestSetOfPreservesOrder(t *testing.T) {
	a := mustPerm(t, []int{1, 0, 2})
	b := mustPerm(t, []int{0, 2, 1})
	s := SetOf(3, a, b, a)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.At(0).Equal(a) || !s.At(1).Equal(b) {
		t.Error("SetOf should preserve insertion order")
	}
}

func TestSetIdentityQueries(t *testing.T) {
	s := NewSet(3)
	if !s.Identity() {
		t.Error("empty set should be trivial")
	}
	s.Insert(Identity(3))
	if !s.Identity() {
		t.Error("set of only identities should be trivial")
	}
	s.Insert(mustPerm(t, []int{1, 0, 2}))
	if s.Identity() {
		t.Error("set with a non-identity should not be trivial")
	}

	w := s.WithoutIdentity()
	if w.Len() != 1 {
		t.Errorf("WithoutIdentity().Len() = %d, want 1", w.Len())
	}
}

func TestSetMovedPoints(t *testing.T) {
	s := SetOf(6,
		mustPerm(t, []int{0, 2, 1, 3, 4, 5}),
		mustPerm(t, []int{0, 1, 2, 3, 5, 4}),
	)
	if got, want := s.MovedPoints(), []int{1, 2, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("MovedPoints() = %v, want %v", got, want)
	}
	if got := s.SmallestMoved(); got != 1 {
		t.Errorf("SmallestMoved() = %d, want 1", got)
	}
	if got := s.LargestMoved(); got != 5 {
		t.Errorf("LargestMoved() = %d, want 5", got)
	}
}

func TestSetClone(t *testing.T) {
	s := SetOf(2, mustPerm(t, []int{1, 0}))
	c := s.Clone()
	c.Insert(Identity(2))
	if s.Len() != 1 {
		t.Errorf("mutating a clone changed the original: Len() = %d", s.Len())
	}
	if c.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", c.Len())
	}
}
