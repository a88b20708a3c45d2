package gamestate

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/assert"
	"github.com/bucket-ecs/bucket/types"
)

func TestAllocateIssuesLiveHandles(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	first := a.Allocate()
	second := a.Allocate()

	assert.True(t, a.IsAlive(first))
	assert.True(t, a.IsAlive(second))
	assert.Assert(t, first.Index() != second.Index(), "live handles must not share an index")
	assert.Equal(t, a.LiveCount(), 2)
}

func TestDeallocateRejectsStaleHandles(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	id := a.Allocate()
	assert.NilError(t, a.Deallocate(id))
	assert.False(t, a.IsAlive(id))

	// A second deallocate of the same handle is stale.
	assert.ErrorIs(t, a.Deallocate(id), ErrStaleEntity)

	// So is a handle for a slot that never existed.
	assert.ErrorIs(t, a.Deallocate(types.NewEntityID(42, 0)), ErrStaleEntity)
}

func TestRecycledSlotGetsStrictlyGreaterGeneration(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	old := a.Allocate()
	assert.NilError(t, a.Deallocate(old))

	// LIFO free list reissues the same index immediately.
	recycled := a.Allocate()
	assert.Equal(t, recycled.Index(), old.Index())
	assert.Assert(t, recycled.Generation() > old.Generation())

	// The old handle stays dead even though the slot is live again.
	assert.False(t, a.IsAlive(old))
	assert.True(t, a.IsAlive(recycled))
	assert.ErrorIs(t, a.Deallocate(old), ErrStaleEntity)
}

func TestGenerationsGrowAcrossManyRecycles(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	id := a.Allocate()
	lastGen := id.Generation()
	for i := 0; i < 100; i++ {
		assert.NilError(t, a.Deallocate(id))
		id = a.Allocate()
		assert.Assert(t, id.Generation() > lastGen)
		lastGen = id.Generation()
	}
}

func TestExhaustedSlotIsRetiredNotWrapped(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	id := a.Allocate()
	// Fast-forward the slot to the last representable generation.
	a.slots[id.Index()].generation = MaxGeneration
	id = types.NewEntityID(id.Index(), MaxGeneration)
	assert.True(t, a.IsAlive(id))

	assert.NilError(t, a.Deallocate(id))
	assert.Equal(t, a.Retired(), 1)
	assert.Len(t, a.freeList, 0)

	// The retired index is never reissued.
	next := a.Allocate()
	assert.Assert(t, next.Index() != id.Index())
	assert.False(t, a.IsAlive(id))
}

func TestLiveEntitiesSnapshot(t *testing.T) {
	a := NewAllocator(zerolog.Nop())

	first := a.Allocate()
	second := a.Allocate()
	third := a.Allocate()
	assert.NilError(t, a.Deallocate(second))

	assert.ElementsMatch(t, a.LiveEntities(), []types.EntityID{first, third})
}
