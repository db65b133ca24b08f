package review

import (
	"errors"
	"testing"
)

func TestAdjacent(t *testing.T) {
	seq := []uint64{40, 30, 20, 10}

	cases := []struct {
		id         uint64
		prev, next *uint64
	}{
		{30, ptr(40), ptr(20)},
		{40, nil, ptr(30)},
		{10, ptr(20), nil},
	}
	for _, tc := range cases {
		got, err := Adjacent(seq, tc.id)
		if err != nil {
			t.Fatalf("Adjacent(%d) error = %v", tc.id, err)
		}
		if !equalPtr(got.PrevID, tc.prev) || !equalPtr(got.NextID, tc.next) {
			t.Fatalf("Adjacent(%d) = {%v, %v}", tc.id, deref(got.PrevID), deref(got.NextID))
		}
	}

	if _, err := Adjacent(seq, 99); !errors.Is(err, ErrNotInSequence) {
		t.Fatalf("Adjacent(99) error = %v", err)
	}

	single, err := Adjacent([]uint64{5}, 5)
	if err != nil || single.PrevID != nil || single.NextID != nil {
		t.Fatalf("Adjacent(single) = %+v, %v", single, err)
	}
}

func ptr(v uint64) *uint64 { return &v }

func equalPtr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(p *uint64) any {
	if p == nil {
		return nil
	}
	return *p
}
