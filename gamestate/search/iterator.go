package search

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/bucket-ecs/bucket/types"
)

// BadID is returned by iterator and search methods when no entity is
// available. It is never a valid handle.
const BadID = types.EntityID(math.MaxUint64)

// ErrIterationInvalidated is returned when the store mutated while an open
// iterator was still being consumed. Callers that need to mutate while
// iterating must collect the handles first.
var ErrIterationInvalidated = eris.New("store mutated during open iteration")

var errIteratorExhausted = eris.New("iterator is exhausted")

// Iterator is a lazy, single-pass, non-restartable sequence of entity
// handles matching a signature. Every step re-checks the store's mutation
// counter against the value captured at creation and fails fast on a change
// rather than yielding stale entities.
type Iterator struct {
	reader Reader

	// candidates is the driver holder set, snapshotted at creation. Its
	// length is proportional to the most selective required component.
	candidates []types.EntityID
	pos        int

	probes   []types.ComponentID // remaining required components
	excluded []types.ComponentID

	version uint64
	next    types.EntityID
	primed  bool
	err     error
}

// HasNext advances to the next matching entity if one exists. When the
// iteration has been invalidated it keeps returning true so the error
// surfaces from Next.
func (it *Iterator) HasNext() bool {
	if it.err != nil {
		return true
	}
	if it.primed {
		return true
	}
	if it.reader.Version() != it.version {
		it.err = ErrIterationInvalidated
		return true
	}
	for it.pos < len(it.candidates) {
		id := it.candidates[it.pos]
		it.pos++
		if it.matches(id) {
			it.next = id
			it.primed = true
			return true
		}
	}
	return false
}

// Next returns the entity found by the last HasNext call.
func (it *Iterator) Next() (types.EntityID, error) {
	if it.err != nil {
		return BadID, it.err
	}
	if !it.primed && !it.HasNext() {
		return BadID, errIteratorExhausted
	}
	if it.err != nil {
		return BadID, it.err
	}
	it.primed = false
	return it.next, nil
}

func (it *Iterator) matches(id types.EntityID) bool {
	for _, cid := range it.probes {
		if !it.reader.HasComponent(cid, id) {
			return false
		}
	}
	for _, cid := range it.excluded {
		if it.reader.HasComponent(cid, id) {
			return false
		}
	}
	return true
}
