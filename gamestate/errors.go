package gamestate

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrStaleEntity is returned when an operation targets a handle whose
	// generation no longer matches its slot. The entity was despawned and
	// possibly recycled; callers should drop the handle.
	ErrStaleEntity = eris.New("entity handle is stale")

	// ErrComponentNotOnEntity is returned by reads when the entity is alive
	// but does not carry the requested component type.
	ErrComponentNotOnEntity = eris.New("component not on entity")

	// ErrComponentNotRegistered is returned when a component type is used
	// before being registered with the world.
	ErrComponentNotRegistered = eris.New("must register component")

	// ErrComponentMismatch means a stored payload's tag does not match the
	// component type requested on retrieval. It indicates corrupted
	// type-erasure bookkeeping and is treated as fatal by the world facade.
	ErrComponentMismatch = eris.New("stored component does not match requested type")
)
