//go:build m1024

package mask

// Mask is the working mask capacity selected by the m1024 build tag.
type Mask = Mask1024

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask1024Capacity
