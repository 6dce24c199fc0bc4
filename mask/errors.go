package mask

import "fmt"

// BitOutOfRangeError reports an access outside a mask's capacity.
type BitOutOfRangeError struct {
	Bit      uint32
	Capacity uint32
}

func (e BitOutOfRangeError) Error() string {
	return fmt.Sprintf("bit %d out of range for mask capacity %d", e.Bit, e.Capacity)
}
