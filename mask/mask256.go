package mask

import "iter"

// Mask256 is a 256-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask256 [4]uint64

// Mask256Capacity is the number of addressable bits in a Mask256.
const Mask256Capacity uint32 = 256

// Capacity returns the number of addressable bits.
func (m Mask256) Capacity() uint32 { return Mask256Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask256) Set(bit uint32) {
	if bit >= Mask256Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask256Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask256) Clear(bit uint32) {
	if bit >= Mask256Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask256Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask256) Get(bit uint32) bool {
	if bit >= Mask256Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask256Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask256) And(other Mask256) Mask256 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask256) Or(other Mask256) Mask256 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask256) Xor(other Mask256) Mask256 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask256) AndNot(other Mask256) Mask256 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask256) ContainsAll(other Mask256) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask256) ContainsAny(other Mask256) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask256) ContainsNone(other Mask256) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask256) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask256) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask256) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask256) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask256) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask256) Hash() uint64 { return hashWords(m[:]) }
