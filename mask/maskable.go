package mask

// Maskable is implemented by anything that exposes its component set.
type Maskable interface {
	Mask() Mask
}
