package perm

import (
	"errors"
	"slices"
	"testing"
)

func mustPartial(t *testing.T, mapping []int) Partial {
	t.Helper()
	p, err := NewPartial(mapping)
	if err != nil {
		t.Fatalf("NewPartial(%v) failed: %v", mapping, err)
	}
	return p
}

func TestNewPartialNormalizes(t *testing.T) {
	p := mustPartial(t, []int{2, -1, 0, -1, -1})
	q := mustPartial(t, []int{2, -1, 0})
	if !p.Equal(q) {
		t.Errorf("trailing -1 entries should not distinguish mappings: %v vs %v", p.Mapping(), q.Mapping())
	}
	if got := len(p.Mapping()); got != 3 {
		t.Errorf("normalized mapping length = %d, want 3", got)
	}
}

func TestNewPartialRejectsNonInjective(t *testing.T) {
	if _, err := NewPartial([]int{1, 1}); !errors.Is(err, ErrNotInjective) {
		t.Errorf("duplicate image: error = %v, want ErrNotInjective", err)
	}
	if _, err := NewPartial([]int{-2}); !errors.Is(err, ErrNotInjective) {
		t.Errorf("negative image: error = %v, want ErrNotInjective", err)
	}
}

func TestPartialFromPoints(t *testing.T) {
	p, err := PartialFromPoints([]int{0, 3}, []int{5, 1})
	if err != nil {
		t.Fatalf("PartialFromPoints failed: %v", err)
	}
	if got := p.Image(0); got != 5 {
		t.Errorf("Image(0) = %d, want 5", got)
	}
	if got := p.Image(3); got != 1 {
		t.Errorf("Image(3) = %d, want 1", got)
	}
	if got := p.Image(1); got != -1 {
		t.Errorf("Image(1) = %d, want -1", got)
	}

	if _, err := PartialFromPoints([]int{0}, []int{1, 2}); !errors.Is(err, ErrNotInjective) {
		t.Errorf("length mismatch: error = %v, want ErrNotInjective", err)
	}
	if _, err := PartialFromPoints([]int{0, 0}, []int{1, 2}); !errors.Is(err, ErrNotInjective) {
		t.Errorf("repeated domain point: error = %v, want ErrNotInjective", err)
	}
}

func TestPartialDomainAndImage(t *testing.T) {
	p := mustPartial(t, []int{5, -1, 3, 0})
	if got, want := p.Dom(), []int{0, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Dom() = %v, want %v", got, want)
	}
	if got, want := p.Im(), []int{0, 3, 5}; !slices.Equal(got, want) {
		t.Errorf("Im() = %v, want %v", got, want)
	}
	if p.DomMin() != 0 || p.DomMax() != 3 {
		t.Errorf("DomMin/DomMax = %d/%d, want 0/3", p.DomMin(), p.DomMax())
	}
	if p.ImMin() != 0 || p.ImMax() != 5 {
		t.Errorf("ImMin/ImMax = %d/%d, want 0/5", p.ImMin(), p.ImMax())
	}
}

func TestPartialEmpty(t *testing.T) {
	p := mustPartial(t, nil)
	if !p.IsEmpty() || !p.IsIdentity() {
		t.Error("empty partial permutation should be empty and an identity")
	}
	if got := p.String(); got != "()" {
		t.Errorf("String() = %q, want %q", got, "()")
	}
	if p.DomMin() != -1 || p.ImMax() != -1 {
		t.Errorf("DomMin/ImMax = %d/%d, want -1/-1", p.DomMin(), p.ImMax())
	}
}

func TestPartialIdentityValue(t *testing.T) {
	p := PartialIdentity(4)
	if !p.IsIdentity() {
		t.Error("PartialIdentity(4).IsIdentity() = false")
	}
	if got, want := p.Dom(), []int{0, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Dom() = %v, want %v", got, want)
	}
}

func TestPartialInverse(t *testing.T) {
	p := mustPartial(t, []int{5, -1, 3})
	inv := p.Inverse()
	if got := inv.Image(5); got != 0 {
		t.Errorf("Inverse().Image(5) = %d, want 0", got)
	}
	if got := inv.Image(3); got != 2 {
		t.Errorf("Inverse().Image(3) = %d, want 2", got)
	}
	if !inv.Inverse().Equal(p) {
		t.Error("double inverse should round-trip")
	}
}

func TestPartialMul(t *testing.T) {
	p := mustPartial(t, []int{1, 2, -1})
	q := mustPartial(t, []int{-1, 4})
	r := p.Mul(q)
	// 0 -> 1 -> 4; 1 -> 2 is outside dom(q).
	if got := r.Image(0); got != 4 {
		t.Errorf("Mul.Image(0) = %d, want 4", got)
	}
	if got := r.Image(1); got != -1 {
		t.Errorf("Mul.Image(1) = %d, want -1", got)
	}
}

func TestPartialRestricted(t *testing.T) {
	p := mustPartial(t, []int{5, 4, 3})
	r := p.Restricted([]int{0, 2})
	if got := r.Image(0); got != 5 {
		t.Errorf("Image(0) = %d, want 5", got)
	}
	if got := r.Image(1); got != -1 {
		t.Errorf("Image(1) = %d, want -1", got)
	}
	if got := r.Image(2); got != 3 {
		t.Errorf("Image(2) = %d, want 3", got)
	}
}

func TestPartialToPerm(t *testing.T) {
	p := mustPartial(t, []int{1, 0, -1})
	q, err := p.ToPerm(4)
	if err != nil {
		t.Fatalf("ToPerm failed: %v", err)
	}
	want := Perm{1, 0, 2, 3}
	if !q.Equal(want) {
		t.Errorf("ToPerm(4) = %v, want %v", []int(q), []int(want))
	}
}

func TestPartialToPermErrors(t *testing.T) {
	p := mustPartial(t, []int{5})
	if _, err := p.ToPerm(3); !errors.Is(err, ErrNotExtendable) {
		t.Errorf("point out of range: error = %v, want ErrNotExtendable", err)
	}

	// 1 maps to 0 but 0 is unmapped and cannot remain fixed.
	p = mustPartial(t, []int{-1, 0})
	if _, err := p.ToPerm(3); !errors.Is(err, ErrNotExtendable) {
		t.Errorf("collision: error = %v, want ErrNotExtendable", err)
	}
}

func TestPartialString(t *testing.T) {
	tests := []struct {
		mapping []int
		want    string
	}{
		{[]int{5, 8, 6, 0, -1, 4, 2, 9, -1, 10, 7}, "[1, 8][3, 0, 5, 4](2, 6)(7, 9, 10)"},
		{[]int{1, 2}, "[0, 1, 2]"},
		{[]int{1, 0}, "(0, 1)"},
		{[]int{0}, "(0)"},
		{[]int{-1, 3}, "[1, 3]"},
	}
	for _, tt := range tests {
		p := mustPartial(t, tt.mapping)
		if got := p.String(); got != tt.want {
			t.Errorf("NewPartial(%v).String() = %q, want %q", tt.mapping, got, tt.want)
		}
	}
}
