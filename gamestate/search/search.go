// Package search finds the live entities whose component records satisfy a
// filter signature.
package search

import (
	"github.com/rotisserie/eris"

	"github.com/bucket-ecs/bucket/gamestate/search/filter"
	"github.com/bucket-ecs/bucket/telemetry"
	"github.com/bucket-ecs/bucket/types"
)

// Reader is the view of the component store the query engine needs.
type Reader interface {
	ComponentByName(name string) (types.ComponentMetadata, error)
	PopulationCount(cid types.ComponentID) int
	Holders(cid types.ComponentID) []types.EntityID
	HasComponent(cid types.ComponentID, id types.EntityID) bool
	LiveEntities() []types.EntityID
	Version() uint64
}

type CallbackFn func(types.EntityID) bool

// Search finds every live entity whose record is a superset of the
// signature's required components and disjoint from its excluded ones.
//
// The join is driven by the required component with the smallest current
// population: its holder set is snapshotted and every other required or
// excluded component is probed per candidate with an O(1) lookup. Total cost
// is proportional to the most selective component's population, not to the
// entity count. With no required components the driver falls back to the
// allocator's live-entity snapshot.
type Search struct {
	reader Reader
	sig    filter.Signature
}

// New creates a search over the given reader. The signature is validated
// when the search first runs.
func New(reader Reader, sig filter.Signature) *Search {
	return &Search{
		reader: reader,
		sig:    sig,
	}
}

// Iterator starts a lazy, single-pass iteration over matching entities.
func (s *Search) Iterator() (*Iterator, error) {
	if err := s.sig.Validate(); err != nil {
		return nil, err
	}

	required, err := s.resolve(s.sig.Required())
	if err != nil {
		return nil, err
	}
	excluded, err := s.resolve(s.sig.Excluded())
	if err != nil {
		return nil, err
	}

	var candidates []types.EntityID
	probes := required
	if len(required) == 0 {
		candidates = s.reader.LiveEntities()
	} else {
		driver := 0
		for i, cid := range required {
			if s.reader.PopulationCount(cid) < s.reader.PopulationCount(required[driver]) {
				driver = i
			}
		}
		candidates = s.reader.Holders(required[driver])
		probes = make([]types.ComponentID, 0, len(required)-1)
		probes = append(probes, required[:driver]...)
		probes = append(probes, required[driver+1:]...)
	}

	telemetry.EmitQueryStat(len(candidates))

	return &Iterator{
		reader:     s.reader,
		candidates: candidates,
		probes:     probes,
		excluded:   excluded,
		version:    s.reader.Version(),
	}, nil
}

// Each calls the callback for every entity that matches the search, in an
// unspecified but deterministic-per-call order. Return false from the
// callback to stop early.
func (s *Search) Each(callback CallbackFn) error {
	iter, err := s.Iterator()
	if err != nil {
		return err
	}
	for iter.HasNext() {
		id, err := iter.Next()
		if err != nil {
			return err
		}
		if !callback(id) {
			return nil
		}
	}
	return nil
}

// Count returns the number of entities that match the search.
func (s *Search) Count() (int, error) {
	count := 0
	err := s.Each(func(types.EntityID) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Collect buffers every matching handle. Use it when the consumer needs to
// mutate the store, which would invalidate a live iterator.
func (s *Search) Collect() ([]types.EntityID, error) {
	acc := make([]types.EntityID, 0)
	err := s.Each(func(id types.EntityID) bool {
		acc = append(acc, id)
		return true
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// First returns the first entity that matches the search.
func (s *Search) First() (types.EntityID, error) {
	iter, err := s.Iterator()
	if err != nil {
		return BadID, err
	}
	if !iter.HasNext() {
		return BadID, eris.New("no entity matches the search")
	}
	return iter.Next()
}

// MustFirst returns the first matching entity and panics if there is none.
func (s *Search) MustFirst() types.EntityID {
	id, err := s.First()
	if err != nil {
		panic("no entity matches the search")
	}
	return id
}

func (s *Search) resolve(components []types.Component) ([]types.ComponentID, error) {
	acc := make([]types.ComponentID, 0, len(components))
	for _, c := range components {
		md, err := s.reader.ComponentByName(c.Name())
		if err != nil {
			return nil, eris.Wrapf(err, "component %q", c.Name())
		}
		acc = append(acc, md.ID())
	}
	return acc, nil
}
