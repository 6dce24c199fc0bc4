package mask

import "iter"

// Mask64 is a 64-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask64 [1]uint64

// Mask64Capacity is the number of addressable bits in a Mask64.
const Mask64Capacity uint32 = 64

// Capacity returns the number of addressable bits.
func (m Mask64) Capacity() uint32 { return Mask64Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask64) Set(bit uint32) {
	if bit >= Mask64Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask64Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask64) Clear(bit uint32) {
	if bit >= Mask64Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask64Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask64) Get(bit uint32) bool {
	if bit >= Mask64Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask64Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask64) And(other Mask64) Mask64 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask64) Or(other Mask64) Mask64 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask64) Xor(other Mask64) Mask64 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask64) AndNot(other Mask64) Mask64 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask64) ContainsAll(other Mask64) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask64) ContainsAny(other Mask64) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask64) ContainsNone(other Mask64) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask64) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask64) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask64) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask64) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask64) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask64) Hash() uint64 { return hashWords(m[:]) }
