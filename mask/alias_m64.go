//go:build m64

package mask

// Mask is the working mask capacity selected by the m64 build tag.
type Mask = Mask64

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask64Capacity
