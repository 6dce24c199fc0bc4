package mask

import "iter"

// Mask1024 is a 1024-bit component set. The zero value is the empty set.
// Masks are values; binary operators return new masks and never mutate
// their operands.
type Mask1024 [16]uint64

// Mask1024Capacity is the number of addressable bits in a Mask1024.
const Mask1024Capacity uint32 = 1024

// Capacity returns the number of addressable bits.
func (m Mask1024) Capacity() uint32 { return Mask1024Capacity }

// Set marks the given bit. Bits outside the capacity panic with
// BitOutOfRangeError rather than silently truncating.
func (m *Mask1024) Set(bit uint32) {
	if bit >= Mask1024Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask1024Capacity})
	}
	setBit(m[:], bit)
}

// Clear unmarks the given bit.
func (m *Mask1024) Clear(bit uint32) {
	if bit >= Mask1024Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask1024Capacity})
	}
	clearBit(m[:], bit)
}

// Get reports whether the given bit is set.
func (m Mask1024) Get(bit uint32) bool {
	if bit >= Mask1024Capacity {
		panic(BitOutOfRangeError{Bit: bit, Capacity: Mask1024Capacity})
	}
	return getBit(m[:], bit)
}

// And returns the intersection of both masks.
func (m Mask1024) And(other Mask1024) Mask1024 {
	andWords(m[:], other[:])
	return m
}

// Or returns the union of both masks.
func (m Mask1024) Or(other Mask1024) Mask1024 {
	orWords(m[:], other[:])
	return m
}

// Xor returns the symmetric difference of both masks.
func (m Mask1024) Xor(other Mask1024) Mask1024 {
	xorWords(m[:], other[:])
	return m
}

// AndNot returns the bits of m that are not set in other.
func (m Mask1024) AndNot(other Mask1024) Mask1024 {
	andNotWords(m[:], other[:])
	return m
}

// ContainsAll reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask1024) ContainsAll(other Mask1024) bool {
	return containsAllWords(m[:], other[:])
}

// ContainsAny reports whether m and other share at least one bit.
func (m Mask1024) ContainsAny(other Mask1024) bool {
	return containsAnyWords(m[:], other[:])
}

// ContainsNone reports whether m and other share no bits.
func (m Mask1024) ContainsNone(other Mask1024) bool {
	return !containsAnyWords(m[:], other[:])
}

// IsEmpty reports whether no bits are set.
func (m Mask1024) IsEmpty() bool { return isEmptyWords(m[:]) }

// Popcount returns the number of set bits.
func (m Mask1024) Popcount() int { return popcountWords(m[:]) }

// FirstSet returns the lowest set bit, or -1 for the empty mask.
func (m Mask1024) FirstSet() int { return firstSetWord(m[:]) }

// LastSet returns the highest set bit, or -1 for the empty mask.
func (m Mask1024) LastSet() int { return lastSetWord(m[:]) }

// Bits iterates the set bits in ascending order.
func (m Mask1024) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		eachBit(m[:], yield)
	}
}

// Hash returns a content hash suitable for storing alongside the mask
// when it is used as a map key.
func (m Mask1024) Hash() uint64 { return hashWords(m[:]) }
