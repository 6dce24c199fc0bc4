//go:build !m64 && !m128 && !m512 && !m1024 && !m2048

package mask

// Mask is the working mask capacity for the build. The default is 256
// bits; the m64, m128, m512, m1024 and m2048 build tags select the
// other capacities.
type Mask = Mask256

// Capacity is the bit capacity of the working Mask.
const Capacity = Mask256Capacity
