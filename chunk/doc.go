/*
Package chunk provides the fixed-size buffer pool backing archetype
storage.

Chunks are addressed through generational handles: freeing a slot bumps
its version, so handles held past a free go stale instead of dangling.
A per-slot borrow count lets readers pin a chunk against freeing while
they hold its buffer.
*/
package chunk
