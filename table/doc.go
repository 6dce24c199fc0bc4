/*
Package table computes struct-of-arrays chunk layouts and stores
archetype entity data inside them.

A Layout maps one component set onto byte offsets within a fixed-size
chunk; a Store strings chunks together for one archetype, keeping slots
densely packed with swap-remove and trimming emptied tail chunks.
*/
package table
