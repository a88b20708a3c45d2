package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

// EntityID is an opaque entity handle. The lower 32 bits hold the slot index
// and the upper 32 bits hold the slot generation. Two handles are equal only
// if both halves match; a handle whose generation has been superseded is
// stale and is rejected by every store operation.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:g%d", id.Index(), id.Generation())
}

// EntityStateElement is the serialized view of a single entity used by
// World.DumpState. Component values are keyed by component name.
type EntityStateElement struct {
	ID         EntityID                   `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
}

type EntityStateResponse []EntityStateElement
