package mask

import "iter"

// Mask2048 is a 2048-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask2048 [32]uint64

// Mask2048Capacity is the number of addressable bits in a Mask2048.
const Mask2048Capacity uint32 = 2048

// Capacity returns the number of addressable bits.
func (m Mask2048) Capacity() uint32 { return Mask2048Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask2048) Set(bit uint32) {
	if bit >= Mask2048Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask2048Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask2048) Clear(bit uint32) {
	if bit >= Mask2048Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask2048Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask2048) Get(bit uint32) bool {
	if bit >= Mask2048Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask2048Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask2048) And(other Mask2048) Mask2048 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask2048) Or(other Mask2048) Mask2048 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask2048) Xor(other Mask2048) Mask2048 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask2048) AndNot(other Mask2048) Mask2048 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask2048) ContainsAll(other Mask2048) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask2048) ContainsAny(other Mask2048) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask2048) ContainsNone(other Mask2048) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask2048) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask2048) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask2048) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask2048) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask2048) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask2048) Hash() uint64 { return hashWords(m[:]) }
