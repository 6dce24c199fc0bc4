package mask

import "iter"

// Mask512 is a 512-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask512 [8]uint64

// Mask512Capacity is the number of addressable bits in a Mask512.
const Mask512Capacity uint32 = 512

// Capacity returns the number of addressable bits.
func (m Mask512) Capacity() uint32 { return Mask512Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask512) Set(bit uint32) {
	if bit >= Mask512Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask512Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask512) Clear(bit uint32) {
	if bit >= Mask512Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask512Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask512) Get(bit uint32) bool {
	if bit >= Mask512Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask512Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask512) And(other Mask512) Mask512 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask512) Or(other Mask512) Mask512 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask512) Xor(other Mask512) Mask512 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask512) AndNot(other Mask512) Mask512 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask512) ContainsAll(other Mask512) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask512) ContainsAny(other Mask512) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask512) ContainsNone(other Mask512) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask512) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask512) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask512) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask512) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask512) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask512) Hash() uint64 { return hashWords(m[:]) }
