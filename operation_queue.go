package quarry

import (
	"sync"

	"github.com/TheBitDrifter/quarry/table"
)

// worldOperation is a structural mutation deferred while cursors hold
// the world's read lock. Every operation revalidates its entity handle
// at apply time, since the world may have moved on since enqueueing.
type worldOperation interface {
	apply(w *World) error
}

type operationQueue struct {
	mu  sync.Mutex
	ops []worldOperation
}

func (q *operationQueue) enqueue(op worldOperation) {
	q.mu.Lock()
	q.ops = append(q.ops, op)
	q.mu.Unlock()
}

func (q *operationQueue) takeAll() []worldOperation {
	q.mu.Lock()
	ops := q.ops
	q.ops = nil
	q.mu.Unlock()
	return ops
}

// addLock takes the world's read lock on behalf of a cursor.
func (w *World) addLock() {
	w.readLocks.Add(1)
}

// popLock releases one read lock; the last release drains the queued
// structural operations.
func (w *World) popLock() {
	if w.readLocks.Add(-1) == 0 {
		w.drainQueue()
	}
}

func (w *World) drainQueue() {
	for _, op := range w.queue.takeAll() {
		w.structMu.Lock()
		// Deferred operations have no caller left to hand an error
		// to; capacity failures surface on the next direct call.
		_ = op.apply(w)
		w.structMu.Unlock()
	}
}

// EnqueueDespawn despawns immediately, or defers until the world
// unlocks. The despawn is skipped at apply time if the handle went
// stale meanwhile.
func (w *World) EnqueueDespawn(e Entity) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if !w.Locked() {
		w.structMu.Lock()
		defer w.structMu.Unlock()
		_, err := w.despawnLocked(e)
		return err
	}
	w.queue.enqueue(despawnOperation{entity: e})
	return nil
}

// enqueueAdd backs Accessor.EnqueueAdd.
func (w *World) enqueueAdd(e Entity, c table.ComponentID, value []byte) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if !w.Locked() {
		w.structMu.Lock()
		defer w.structMu.Unlock()
		return w.addComponentLocked(e, c, value)
	}
	owned := make([]byte, len(value))
	copy(owned, value)
	w.queue.enqueue(addComponentOperation{entity: e, component: c, value: owned})
	return nil
}

// enqueueRemove backs Accessor.EnqueueRemove.
func (w *World) enqueueRemove(e Entity, c table.ComponentID) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if !w.Locked() {
		w.structMu.Lock()
		defer w.structMu.Unlock()
		return w.removeComponentLocked(e, c)
	}
	w.queue.enqueue(removeComponentOperation{entity: e, component: c})
	return nil
}

type despawnOperation struct {
	entity Entity
}

func (op despawnOperation) apply(w *World) error {
	if !w.entities.IsAlive(op.entity) {
		return nil
	}
	_, err := w.despawnLocked(op.entity)
	return err
}

type addComponentOperation struct {
	entity    Entity
	component table.ComponentID
	value     []byte
}

func (op addComponentOperation) apply(w *World) error {
	if !w.entities.IsAlive(op.entity) {
		return nil
	}
	value := op.value
	if len(value) == 0 {
		value = nil
	}
	err := w.addComponentLocked(op.entity, op.component, value)
	if _, ok := err.(DuplicateComponentError); ok {
		return nil
	}
	return err
}

type removeComponentOperation struct {
	entity    Entity
	component table.ComponentID
}

func (op removeComponentOperation) apply(w *World) error {
	if !w.entities.IsAlive(op.entity) {
		return nil
	}
	err := w.removeComponentLocked(op.entity, op.component)
	if _, ok := err.(MissingComponentError); ok {
		return nil
	}
	return err
}
