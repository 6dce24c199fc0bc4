//go:build m512

package mask

// Mask is the working mask capacity selected by the m512 build tag.
type Mask = Mask512

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask512Capacity
