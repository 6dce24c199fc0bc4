package mask

import "iter"

// Mask128 is a 128-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask128 [2]uint64

// Mask128Capacity is the number of addressable bits in a Mask128.
const Mask128Capacity uint32 = 128

// Capacity returns the number of addressable bits.
func (m Mask128) Capacity() uint32 { return Mask128Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask128) Set(bit uint32) {
	if bit >= Mask128Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask128Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask128) Clear(bit uint32) {
	if bit >= Mask128Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask128Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask128) Get(bit uint32) bool {
	if bit >= Mask128Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask128Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask128) And(other Mask128) Mask128 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask128) Or(other Mask128) Mask128 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask128) Xor(other Mask128) Mask128 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask128) AndNot(other Mask128) Mask128 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask128) ContainsAll(other Mask128) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask128) ContainsAny(other Mask128) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask128) ContainsNone(other Mask128) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask128) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask128) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask128) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask128) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask128) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask128) Hash() uint64 { return hashWords(m[:]) }
