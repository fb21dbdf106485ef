package bitset_test

import (
	"reflect"
	"testing"

	"github.com/kvanta/ukodus-core/internal/bitset"
)

func TestOfAndHas(t *testing.T) {
	s := bitset.Of(2, 4, 9)
	for _, d := range []int{2, 4, 9} {
		if !s.Has(d) {
			t.Errorf("expected %d to be a member", d)
		}
	}
	for _, d := range []int{1, 3, 5, 6, 7, 8} {
		if s.Has(d) {
			t.Errorf("did not expect %d to be a member", d)
		}
	}
	if s.Has(0) || s.Has(10) {
		t.Errorf("out-of-range digits must never be members")
	}
}

func TestInsertRemove(t *testing.T) {
	s := bitset.Empty
	s = s.Insert(5)
	if !s.Has(5) {
		t.Fatalf("Insert(5) did not add 5")
	}
	s = s.Remove(5)
	if s.Has(5) {
		t.Fatalf("Remove(5) did not remove 5")
	}
	if !s.IsEmpty() {
		t.Fatalf("expected empty set, got %v", s.Digits())
	}
}

func TestUnionIntersectDiff(t *testing.T) {
	a := bitset.Of(1, 2, 3)
	b := bitset.Of(2, 3, 4)

	if got := a.Union(b).Digits(); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("Union = %v, want [1 2 3 4]", got)
	}
	if got := a.Intersect(b).Digits(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("Intersect = %v, want [2 3]", got)
	}
	if got := a.Diff(b).Digits(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Diff = %v, want [1]", got)
	}
}

func TestCountAndSingle(t *testing.T) {
	s := bitset.Of(7)
	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}
	d, ok := s.Single()
	if !ok || d != 7 {
		t.Fatalf("Single() = (%d, %v), want (7, true)", d, ok)
	}

	multi := bitset.Of(1, 2)
	if _, ok := multi.Single(); ok {
		t.Fatalf("Single() on a 2-element set should fail")
	}
}

func TestFullContainsAllDigits(t *testing.T) {
	for d := 1; d <= 9; d++ {
		if !bitset.Full.Has(d) {
			t.Errorf("Full missing digit %d", d)
		}
	}
	if bitset.Full.Count() != 9 {
		t.Errorf("Full.Count() = %d, want 9", bitset.Full.Count())
	}
}

func TestIsSubsetOf(t *testing.T) {
	a := bitset.Of(1, 2)
	b := bitset.Of(1, 2, 3)
	if !a.IsSubsetOf(b) {
		t.Errorf("expected %v to be a subset of %v", a.Digits(), b.Digits())
	}
	if b.IsSubsetOf(a) {
		t.Errorf("did not expect %v to be a subset of %v", b.Digits(), a.Digits())
	}
}

func TestEqual(t *testing.T) {
	if !bitset.Of(1, 2, 3).Equal(bitset.Of(3, 2, 1)) {
		t.Errorf("sets built from the same digits in different order must be equal")
	}
}
