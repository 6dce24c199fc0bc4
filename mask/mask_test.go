package mask

import (
	"testing"
)

func TestSetGetClear(t *testing.T) {
	tests := []struct {
		name string
		bits []uint32
	}{
		{name: "low bits", bits: []uint32{0, 1, 2}},
		{name: "word boundary", bits: []uint32{63, 64, 65}},
		{name: "high bits", bits: []uint32{254, 255}},
		{name: "spread", bits: []uint32{3, 70, 130, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mask256
			for _, b := range tt.bits {
				m.Set(b)
			}
			for _, b := range tt.bits {
				if !m.Get(b) {
					t.Errorf("bit %d not set", b)
				}
			}
			if m.Popcount() != len(tt.bits) {
				t.Errorf("popcount = %d, want %d", m.Popcount(), len(tt.bits))
			}
			for _, b := range tt.bits {
				m.Clear(b)
			}
			if !m.IsEmpty() {
				t.Errorf("mask not empty after clearing all bits")
			}
		})
	}
}

func TestOutOfRangePanics(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("%s: expected panic", name)
			} else if _, ok := r.(BitOutOfRangeError); !ok {
				t.Errorf("%s: panic value %T, want BitOutOfRangeError", name, r)
			}
		}()
		fn()
	}

	var m Mask256
	assertPanics("Set", func() { m.Set(256) })
	assertPanics("Clear", func() { m.Clear(300) })
	assertPanics("Get", func() { m.Get(1024) })

	var small Mask64
	assertPanics("Mask64 Set", func() { small.Set(64) })

	var big Mask2048
	assertPanics("Mask2048 Set", func() { big.Set(2048) })
}

func TestBinaryOperators(t *testing.T) {
	var a, b Mask256
	a.Set(1)
	a.Set(64)
	a.Set(200)
	b.Set(64)
	b.Set(128)

	and := a.And(b)
	if and.Popcount() != 1 || !and.Get(64) {
		t.Errorf("And: got popcount %d", and.Popcount())
	}

	or := a.Or(b)
	if or.Popcount() != 4 {
		t.Errorf("Or: got popcount %d, want 4", or.Popcount())
	}

	xor := a.Xor(b)
	if xor.Get(64) || !xor.Get(1) || !xor.Get(128) || !xor.Get(200) {
		t.Errorf("Xor: wrong bits: %v", xor)
	}

	andNot := a.AndNot(b)
	if andNot.Get(64) || !andNot.Get(1) || !andNot.Get(200) {
		t.Errorf("AndNot: wrong bits: %v", andNot)
	}

	// Operands must be untouched.
	if a.Popcount() != 3 || b.Popcount() != 2 {
		t.Errorf("operands mutated: a=%d b=%d", a.Popcount(), b.Popcount())
	}
}

func TestContains(t *testing.T) {
	var m, sub, other, empty Mask256
	m.Set(10)
	m.Set(100)
	m.Set(250)
	sub.Set(10)
	sub.Set(250)
	other.Set(11)

	if !m.ContainsAll(sub) {
		t.Error("ContainsAll(subset) = false")
	}
	if m.ContainsAll(other) {
		t.Error("ContainsAll(disjoint) = true")
	}
	if !m.ContainsAll(empty) {
		t.Error("ContainsAll(empty) must be true")
	}
	if !m.ContainsAny(sub) {
		t.Error("ContainsAny(subset) = false")
	}
	if m.ContainsAny(other) {
		t.Error("ContainsAny(disjoint) = true")
	}
	if !m.ContainsNone(other) {
		t.Error("ContainsNone(disjoint) = false")
	}
	if m.ContainsNone(sub) {
		t.Error("ContainsNone(subset) = true")
	}
}

func TestFirstLastSet(t *testing.T) {
	var m Mask256
	if m.FirstSet() != -1 || m.LastSet() != -1 {
		t.Errorf("empty mask: first=%d last=%d, want -1", m.FirstSet(), m.LastSet())
	}
	m.Set(7)
	m.Set(70)
	m.Set(199)
	if m.FirstSet() != 7 {
		t.Errorf("FirstSet = %d, want 7", m.FirstSet())
	}
	if m.LastSet() != 199 {
		t.Errorf("LastSet = %d, want 199", m.LastSet())
	}
}

func TestIterationAscending(t *testing.T) {
	var m Mask512
	want := []uint32{0, 5, 63, 64, 127, 200, 511}
	// Insert out of order; iteration must still ascend.
	for _, b := range []uint32{511, 0, 200, 64, 5, 127, 63} {
		m.Set(b)
	}
	var got []uint32
	for b := range m.Bits() {
		got = append(got, b)
	}
	if len(got) != len(want) {
		t.Fatalf("iterated %d bits, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bit %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEqualityAndHash(t *testing.T) {
	var a, b Mask256
	for _, bit := range []uint32{1, 64, 255} {
		a.Set(bit)
	}
	for _, bit := range []uint32{255, 1, 64} {
		b.Set(bit)
	}
	if a != b {
		t.Error("masks with equal bits not equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal masks hash differently")
	}
	b.Set(2)
	if a == b {
		t.Error("different masks compare equal")
	}
	if a.Hash() == b.Hash() {
		t.Error("different masks hash identically")
	}
}

func TestCapacities(t *testing.T) {
	// The highest valid bit of each capacity must round trip.
	var m64 Mask64
	m64.Set(63)
	if !m64.Get(63) || m64.LastSet() != 63 {
		t.Error("Mask64 boundary bit")
	}

	var m128 Mask128
	m128.Set(127)
	if m128.Popcount() != 1 || m128.FirstSet() != 127 {
		t.Error("Mask128 boundary bit")
	}

	var m1024 Mask1024
	m1024.Set(1023)
	if !m1024.Get(1023) {
		t.Error("Mask1024 boundary bit")
	}

	var m2048 Mask2048
	m2048.Set(2047)
	if m2048.LastSet() != 2047 {
		t.Errorf("Mask2048 LastSet = %d, want 2047", m2048.LastSet())
	}
}
