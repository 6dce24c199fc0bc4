//go:build m2048

package mask

// Mask is the working mask capacity selected by the m2048 build tag.
type Mask = Mask2048

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask2048Capacity
