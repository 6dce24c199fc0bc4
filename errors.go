package quarry

import (
	"fmt"

	"github.com/TheBitDrifter/quarry/table"
)

// InvalidEntityHandleError reports a handle with version 0 or an id
// outside the directory.
type InvalidEntityHandleError struct {
	Entity Entity
}

func (e InvalidEntityHandleError) Error() string {
	return fmt.Sprintf("invalid entity handle (id %d, version %d)", e.Entity.ID, e.Entity.Version)
}

// StaleEntityHandleError reports a version mismatch with the directory.
type StaleEntityHandleError struct {
	Entity  Entity
	Current uint32
}

func (e StaleEntityHandleError) Error() string {
	return fmt.Sprintf("stale entity handle (id %d, version %d, current %d)", e.Entity.ID, e.Entity.Version, e.Current)
}

// EntityNotAliveError reports an operation on a destroyed entity.
type EntityNotAliveError struct {
	Entity Entity
}

func (e EntityNotAliveError) Error() string {
	return fmt.Sprintf("entity (id %d, version %d) is not alive", e.Entity.ID, e.Entity.Version)
}

// MissingComponentError reports an operation requiring a component the
// entity lacks.
type MissingComponentError struct {
	Entity    Entity
	Component table.ComponentID
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("entity %d lacks component %d", e.Entity.ID, e.Component)
}

// DuplicateComponentError reports adding a component that is already
// present.
type DuplicateComponentError struct {
	Entity    Entity
	Component table.ComponentID
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("entity %d already has component %d", e.Entity.ID, e.Component)
}

// EntityIdExceedsLimitError reports that the next entity id would
// overflow the configured id width.
type EntityIdExceedsLimitError struct {
	Limit uint64
}

func (e EntityIdExceedsLimitError) Error() string {
	return fmt.Sprintf("next entity id exceeds limit %d", e.Limit)
}

// ArchetypeIdLimitExceededError reports that creating an archetype
// would exceed the configured maximum.
type ArchetypeIdLimitExceededError struct {
	Max int
}

func (e ArchetypeIdLimitExceededError) Error() string {
	return fmt.Sprintf("archetype id limit exceeded (%d)", e.Max)
}

// DisposedError reports an operation on a torn-down world or registry.
type DisposedError struct{}

func (e DisposedError) Error() string {
	return "operation on disposed state"
}

// LockedWorldError reports a structural mutation attempted while
// cursors hold the world's read lock. Use the Enqueue variants to
// defer the mutation instead.
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is locked by active cursors"
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}
