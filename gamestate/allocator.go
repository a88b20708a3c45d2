package gamestate

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/types"
)

// MaxGeneration is the largest generation a slot can reach. A slot that is
// deallocated at this generation is retired instead of recycled, so a stale
// handle can never collide with a future one.
const MaxGeneration = math.MaxUint32

type slot struct {
	generation uint32
	alive      bool
	retired    bool
}

// Allocator issues and recycles entity handles. Each slot carries a
// generation that is bumped on deallocation, so handles to a despawned
// entity are detectably stale. Free indices are reused LIFO; reuse order is
// not part of the contract.
type Allocator struct {
	slots     []slot
	freeList  []uint32
	liveCount int
	retired   int
	logger    zerolog.Logger
}

func NewAllocator(logger zerolog.Logger) *Allocator {
	return &Allocator{
		slots:    make([]slot, 0, 1024),
		freeList: make([]uint32, 0, 256),
		logger:   logger,
	}
}

// Allocate returns a handle backed by either a fresh slot (generation 0) or
// a recycled slot whose generation strictly exceeds every generation
// previously issued for that index.
func (a *Allocator) Allocate() types.EntityID {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.slots[idx].alive = true
		a.liveCount++
		return types.NewEntityID(idx, a.slots[idx].generation)
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{alive: true})
	a.liveCount++
	return types.NewEntityID(idx, 0)
}

// Deallocate marks the handle's slot dead and queues the index for reuse.
// It fails with ErrStaleEntity when the handle does not refer to the slot's
// current occupancy.
func (a *Allocator) Deallocate(id types.EntityID) error {
	idx := id.Index()
	if int(idx) >= len(a.slots) {
		return ErrStaleEntity
	}
	s := &a.slots[idx]
	if !s.alive || s.generation != id.Generation() {
		return ErrStaleEntity
	}
	s.alive = false
	a.liveCount--
	if s.generation == MaxGeneration {
		// The next occupancy would wrap the generation, which would let a
		// stale handle resolve again. Retire the slot permanently instead.
		s.retired = true
		a.retired++
		a.logger.Warn().
			Uint32("slot_index", idx).
			Msg("slot generation exhausted, slot retired")
		return nil
	}
	s.generation++
	a.freeList = append(a.freeList, idx)
	return nil
}

// IsAlive reports whether the handle refers to the slot's current occupancy.
func (a *Allocator) IsAlive(id types.EntityID) bool {
	idx := id.Index()
	if int(idx) >= len(a.slots) {
		return false
	}
	s := a.slots[idx]
	return s.alive && s.generation == id.Generation()
}

// LiveEntities returns a snapshot of every live handle. It is the driver of
// queries with no required components.
func (a *Allocator) LiveEntities() []types.EntityID {
	acc := make([]types.EntityID, 0, a.liveCount)
	for idx, s := range a.slots {
		if s.alive {
			acc = append(acc, types.NewEntityID(uint32(idx), s.generation))
		}
	}
	return acc
}

// LiveCount returns the number of live entities.
func (a *Allocator) LiveCount() int {
	return a.liveCount
}

// Retired returns how many slots have been permanently removed from
// circulation because their generation counter was exhausted.
func (a *Allocator) Retired() int {
	return a.retired
}
