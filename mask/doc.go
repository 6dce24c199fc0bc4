/*
Package mask provides fixed-capacity bitsets used as component sets.

Capacities of 64 through 2048 bits are first-class concrete types
(Mask64 .. Mask2048). The working alias Mask is selected at build time
through the m64/m128/m512/m1024/m2048 build tags and defaults to 256
bits, which covers typical component counts without widening every map
key in the interning layer.

Masks are plain comparable values: binary operators return new masks,
equality is ==, and iteration yields set bits in ascending order.
*/
package mask
