package chunk

import (
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestAllocateReturnsZeroedBuffer(t *testing.T) {
	a := NewAllocator(64, 8)
	h, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	buf := a.Bytes(h)
	if len(buf) != 64 {
		t.Fatalf("buffer length = %d, want 64", len(buf))
	}
	buf[0] = 0xAA
	buf[63] = 0xBB

	if err := a.Free(h); err != nil {
		t.Fatalf("Free: %v", err)
	}
	h2, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate after free: %v", err)
	}
	buf2 := a.Bytes(h2)
	for i, b := range buf2 {
		if b != 0 {
			t.Fatalf("reused buffer byte %d = %#x, want 0", i, b)
		}
	}
}

func TestStaleHandles(t *testing.T) {
	a := NewAllocator(32, 4)
	h, _ := a.Allocate()
	if err := a.Free(h); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if got := a.Bytes(h); got != nil {
		t.Error("Bytes on stale handle returned a buffer")
	}
	if a.Acquire(h) {
		t.Error("Acquire on stale handle succeeded")
	}
	var stale StaleHandleError
	if err := a.Free(h); !errors.As(err, &stale) {
		t.Errorf("double Free returned %v, want StaleHandleError", err)
	}
	if a.Bytes(Handle{Slot: 99, Version: 1}) != nil {
		t.Error("Bytes on unknown slot returned a buffer")
	}
}

func TestBorrowBlocksFree(t *testing.T) {
	a := NewAllocator(32, 4)
	h, _ := a.Allocate()

	if !a.Acquire(h) {
		t.Fatal("Acquire on live handle failed")
	}
	var inUse ChunkInUseError
	if err := a.Free(h); !errors.As(err, &inUse) {
		t.Fatalf("Free on borrowed chunk returned %v, want ChunkInUseError", err)
	}

	a.Release(h)
	if err := a.Free(h); err != nil {
		t.Fatalf("Free after release: %v", err)
	}
}

func TestCapacityExceeded(t *testing.T) {
	a := NewAllocator(16, 2)
	if _, err := a.Allocate(); err != nil {
		t.Fatal(err)
	}
	h2, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	var capErr CapacityExceededError
	if _, err := a.Allocate(); !errors.As(err, &capErr) {
		t.Fatalf("third Allocate returned %v, want CapacityExceededError", err)
	}

	// Freeing makes room again.
	if err := a.Free(h2); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(); err != nil {
		t.Fatalf("Allocate after free: %v", err)
	}
}

func TestBuffersSurviveSlotTableGrowth(t *testing.T) {
	a := NewAllocator(16, 128)
	first, _ := a.Allocate()
	buf := a.Bytes(first)
	buf[0] = 42

	// Grow the slot table well past its initial capacity.
	for i := 0; i < 100; i++ {
		if _, err := a.Allocate(); err != nil {
			t.Fatal(err)
		}
	}
	if got := a.Bytes(first); &got[0] != &buf[0] {
		t.Error("buffer moved during slot table growth")
	}
	if buf[0] != 42 {
		t.Error("buffer contents lost during slot table growth")
	}
}

func TestConcurrentAcquireRelease(t *testing.T) {
	a := NewAllocator(64, 256)
	h, _ := a.Allocate()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 1000; j++ {
				if !a.Acquire(h) {
					return errors.New("acquire failed on live chunk")
				}
				if a.Bytes(h) == nil {
					return errors.New("bytes nil on borrowed chunk")
				}
				a.Release(h)
			}
			return nil
		})
	}
	// Allocation churn in parallel with the borrowers.
	g.Go(func() error {
		for j := 0; j < 200; j++ {
			hh, err := a.Allocate()
			if err != nil {
				return err
			}
			if err := a.Free(hh); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if err := a.Free(h); err != nil {
		t.Fatalf("Free after all borrows released: %v", err)
	}
}
