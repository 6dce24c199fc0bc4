//go:build m128

package mask

// Mask is the working mask capacity selected by the m128 build tag.
type Mask = Mask128

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask128Capacity
