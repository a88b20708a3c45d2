package gamestate

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/types"
)

// taggedValue is the type-erased container for one stored component: the
// registered component ID plus the opaque payload (a *T). The tag is checked
// on every typed retrieval; a mismatch is a fatal bookkeeping bug, never a
// recoverable condition.
type taggedValue struct {
	cid   types.ComponentID
	value any
}

// ComponentStore maps each live entity to a heterogeneous, type-keyed record
// of component values. It owns all component data; the world facade and
// query engine only ever borrow views of it.
//
// The store keeps two indexes in lockstep with the records: a per-type
// holder set (which entities carry a given component) and per-type
// population counts derived from it. Queries use the counts to pick the most
// selective driver and the holder sets to enumerate candidates.
type ComponentStore struct {
	alloc   *Allocator
	records *MapStorage[types.EntityID, *MapStorage[types.ComponentID, taggedValue]]
	holders map[types.ComponentID]map[types.EntityID]struct{}

	compByID   *MapStorage[types.ComponentID, types.ComponentMetadata]
	compByName *MapStorage[string, types.ComponentMetadata]

	// version increments on every component insert, on removes that removed
	// something, and on record clears. Open query iterators bind to the
	// version at creation and fail fast when it moves.
	version uint64

	// lookups counts per-entity probe operations. Tests use it to verify
	// that queries scan proportional to the most selective component.
	lookups uint64

	logger zerolog.Logger
}

func NewComponentStore(alloc *Allocator, logger zerolog.Logger) *ComponentStore {
	return &ComponentStore{
		alloc:      alloc,
		records:    NewMapStorage[types.EntityID, *MapStorage[types.ComponentID, taggedValue]](),
		holders:    make(map[types.ComponentID]map[types.EntityID]struct{}),
		compByID:   NewMapStorage[types.ComponentID, types.ComponentMetadata](),
		compByName: NewMapStorage[string, types.ComponentMetadata](),
		logger:     logger,
	}
}

// RegisterComponent adds a component type to the store's registry. The
// metadata must already carry its assigned ID.
func (s *ComponentStore) RegisterComponent(md types.ComponentMetadata) {
	s.compByID.Set(md.ID(), md)
	s.compByName.Set(md.Name(), md)
	if _, ok := s.holders[md.ID()]; !ok {
		s.holders[md.ID()] = make(map[types.EntityID]struct{})
	}
}

// ComponentByName resolves registered metadata from a component name.
func (s *ComponentStore) ComponentByName(name string) (types.ComponentMetadata, error) {
	md, ok := s.compByName.Get(name)
	if !ok {
		return nil, ErrComponentNotRegistered
	}
	return md, nil
}

// RegisteredComponents returns the metadata of every registered component.
func (s *ComponentStore) RegisteredComponents() []types.ComponentMetadata {
	acc := make([]types.ComponentMetadata, 0, s.compByID.Len())
	for _, id := range s.compByID.Keys() {
		md, _ := s.compByID.Get(id)
		acc = append(acc, md)
	}
	return acc
}

// CreateRecord gives a freshly spawned entity an empty component record.
func (s *ComponentStore) CreateRecord(id types.EntityID) {
	s.records.Set(id, NewMapStorage[types.ComponentID, taggedValue]())
}

// SetComponentForEntity stores value (a *T matching md's type) under md's ID
// for the given entity, replacing and returning any previous value of that
// type. Replacement is not an error.
func (s *ComponentStore) SetComponentForEntity(
	md types.ComponentMetadata, id types.EntityID, value any,
) (previous any, err error) {
	rec, err := s.recordFor(id)
	if err != nil {
		return nil, err
	}
	if err := checkPayloadType(md, value); err != nil {
		return nil, err
	}

	if prev, ok := rec.Get(md.ID()); ok {
		previous = prev.value
	}
	rec.Set(md.ID(), taggedValue{cid: md.ID(), value: value})
	s.holders[md.ID()][id] = struct{}{}
	s.version++
	return previous, nil
}

// GetComponentForEntity returns the stored *T for the entity, or
// ErrComponentNotOnEntity when the entity is alive but lacks the component.
func (s *ComponentStore) GetComponentForEntity(
	md types.ComponentMetadata, id types.EntityID,
) (any, error) {
	rec, err := s.recordFor(id)
	if err != nil {
		return nil, err
	}
	tv, ok := rec.Get(md.ID())
	if !ok {
		return nil, ErrComponentNotOnEntity
	}
	if tv.cid != md.ID() {
		return nil, ErrComponentMismatch
	}
	if err := checkPayloadType(md, tv.value); err != nil {
		return nil, err
	}
	return tv.value, nil
}

// RemoveComponentFromEntity removes and returns the component value, or
// (nil, nil) when the entity simply lacks that component type.
func (s *ComponentStore) RemoveComponentFromEntity(
	md types.ComponentMetadata, id types.EntityID,
) (previous any, err error) {
	rec, err := s.recordFor(id)
	if err != nil {
		return nil, err
	}
	tv, ok := rec.Get(md.ID())
	if !ok {
		return nil, nil
	}
	rec.Delete(md.ID())
	delete(s.holders[md.ID()], id)
	s.version++
	return tv.value, nil
}

// HasComponent reports whether the entity currently holds the component.
// It is the O(1) probe used by the query engine.
func (s *ComponentStore) HasComponent(cid types.ComponentID, id types.EntityID) bool {
	s.lookups++
	_, ok := s.holders[cid][id]
	return ok
}

// RemoveEntity clears the entity's entire record in one step. It is invoked
// by the world facade during despawn, after the allocator has already marked
// the slot dead, so it performs no aliveness check of its own.
func (s *ComponentStore) RemoveEntity(id types.EntityID) {
	rec, ok := s.records.Get(id)
	if ok {
		for _, cid := range rec.Keys() {
			delete(s.holders[cid], id)
		}
	}
	s.records.Delete(id)
	s.version++
}

// RecordEntry is one component of an entity's record as seen from outside
// the store.
type RecordEntry struct {
	Metadata types.ComponentMetadata
	Value    any
}

// Record returns a snapshot of the entity's component record.
func (s *ComponentStore) Record(id types.EntityID) ([]RecordEntry, error) {
	rec, err := s.recordFor(id)
	if err != nil {
		return nil, err
	}
	entries := make([]RecordEntry, 0, rec.Len())
	for _, cid := range rec.Keys() {
		tv, _ := rec.Get(cid)
		md, ok := s.compByID.Get(cid)
		if !ok {
			return nil, ErrComponentMismatch
		}
		entries = append(entries, RecordEntry{Metadata: md, Value: tv.value})
	}
	return entries, nil
}

// PopulationCount returns how many live entities hold the component. It is
// maintained incrementally on insert/remove, never by scanning.
func (s *ComponentStore) PopulationCount(cid types.ComponentID) int {
	return len(s.holders[cid])
}

// Holders returns a snapshot of the entities holding the component. The cost
// is proportional to the component's population.
func (s *ComponentStore) Holders(cid types.ComponentID) []types.EntityID {
	set := s.holders[cid]
	acc := make([]types.EntityID, 0, len(set))
	for id := range set {
		acc = append(acc, id)
	}
	return acc
}

// LiveEntities returns a snapshot of all live handles, the fallback driver
// for queries with no required components.
func (s *ComponentStore) LiveEntities() []types.EntityID {
	return s.alloc.LiveEntities()
}

// Version returns the store's mutation counter.
func (s *ComponentStore) Version() uint64 {
	return s.version
}

// Lookups returns the number of per-entity probes performed so far.
func (s *ComponentStore) Lookups() uint64 {
	return s.lookups
}

func (s *ComponentStore) recordFor(id types.EntityID) (*MapStorage[types.ComponentID, taggedValue], error) {
	s.lookups++
	if !s.alloc.IsAlive(id) {
		return nil, ErrStaleEntity
	}
	rec, ok := s.records.Get(id)
	if !ok {
		// Alive entities always own a record; repair and carry on.
		rec = NewMapStorage[types.ComponentID, taggedValue]()
		s.records.Set(id, rec)
	}
	return rec, nil
}

// checkPayloadType verifies that a payload is a pointer to the registered
// component type. Payloads are stored as pointers so callers can mutate
// component data in place.
func checkPayloadType(md types.ComponentMetadata, value any) error {
	want := reflect.PointerTo(md.Type())
	if got := reflect.TypeOf(value); got != want {
		return ErrComponentMismatch
	}
	return nil
}
