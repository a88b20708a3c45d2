package search_test

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/assert"
	"github.com/bucket-ecs/bucket/gamestate"
	"github.com/bucket-ecs/bucket/gamestate/search"
	"github.com/bucket-ecs/bucket/gamestate/search/filter"
	"github.com/bucket-ecs/bucket/types"
)

type Position struct {
	X, Y float64
}

func (Position) Name() string { return "position" }

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string { return "velocity" }

type Health struct {
	HP int
}

func (Health) Name() string { return "health" }

type Frozen struct{}

func (Frozen) Name() string { return "frozen" }

type fixture struct {
	alloc *gamestate.Allocator
	store *gamestate.ComponentStore
	meta  map[string]types.ComponentMetadata
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	alloc := gamestate.NewAllocator(zerolog.Nop())
	f := &fixture{
		alloc: alloc,
		store: gamestate.NewComponentStore(alloc, zerolog.Nop()),
		meta:  map[string]types.ComponentMetadata{},
	}
	register[Position](t, f, 0)
	register[Velocity](t, f, 1)
	register[Health](t, f, 2)
	register[Frozen](t, f, 3)
	return f
}

func register[T types.Component](t *testing.T, f *fixture, id types.ComponentID) {
	t.Helper()
	md, err := types.NewComponentMetadata[T]()
	assert.NilError(t, err)
	assert.NilError(t, md.SetID(id))
	f.store.RegisterComponent(md)
	f.meta[md.Name()] = md
}

// spawnWith creates an entity carrying pointers to the given component
// values.
func (f *fixture) spawnWith(t *testing.T, components ...types.Component) types.EntityID {
	t.Helper()
	id := f.alloc.Allocate()
	f.store.CreateRecord(id)
	for _, c := range components {
		_, err := f.store.SetComponentForEntity(f.meta[c.Name()], id, c)
		assert.NilError(t, err)
	}
	return id
}

func TestContainsAndWithoutSelectTheRightEntities(t *testing.T) {
	f := newFixture(t)
	a := f.spawnWith(t, &Position{X: 1})
	b := f.spawnWith(t, &Position{X: 2}, &Velocity{DX: 1})
	c := f.spawnWith(t, &Velocity{DX: 2})

	moving, err := search.New(f.store, filter.Contains(
		filter.Component[Position](), filter.Component[Velocity](),
	)).Collect()
	assert.NilError(t, err)
	assert.ElementsMatch(t, moving, []types.EntityID{b})

	static, err := search.New(f.store, filter.Contains(
		filter.Component[Position](),
	).Without(filter.Component[Velocity]())).Collect()
	assert.NilError(t, err)
	assert.ElementsMatch(t, static, []types.EntityID{a})

	everyone, err := search.New(f.store, filter.All()).Collect()
	assert.NilError(t, err)
	assert.ElementsMatch(t, everyone, []types.EntityID{a, b, c})
}

func TestEmptyRequiredSetFallsBackToAllLiveEntities(t *testing.T) {
	f := newFixture(t)
	a := f.spawnWith(t, &Position{})
	f.spawnWith(t, &Frozen{})
	bare := f.spawnWith(t) // no components, still live

	count, err := search.New(f.store, filter.All()).Count()
	assert.NilError(t, err)
	assert.Equal(t, count, 3)

	// Without on an empty required set drives off the live set.
	thawed, err := search.New(f.store, filter.All().Without(
		filter.Component[Frozen](),
	)).Collect()
	assert.NilError(t, err)
	assert.ElementsMatch(t, thawed, []types.EntityID{a, bare})
}

func TestConflictingSignatureIsRejectedBeforeRunning(t *testing.T) {
	f := newFixture(t)
	f.spawnWith(t, &Position{})

	sig := filter.Contains(filter.Component[Position]()).
		Without(filter.Component[Position]())
	_, err := search.New(f.store, sig).Iterator()
	assert.ErrorIs(t, err, filter.ErrConflictingFilter)

	err = search.New(f.store, sig).Each(func(types.EntityID) bool { return true })
	assert.ErrorIs(t, err, filter.ErrConflictingFilter)
}

func TestUnregisteredComponentIsAnError(t *testing.T) {
	f := newFixture(t)
	f.spawnWith(t, &Position{})

	sig := filter.Contains(filter.ComponentWithName("no-such-component"))
	_, err := search.New(f.store, sig).Iterator()
	assert.ErrorIs(t, err, gamestate.ErrComponentNotRegistered)
}

func TestMutationInvalidatesOpenIterator(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		f.spawnWith(t, &Position{X: float64(i)})
	}

	iter, err := search.New(f.store, filter.Contains(
		filter.Component[Position](),
	)).Iterator()
	assert.NilError(t, err)

	assert.True(t, iter.HasNext())
	_, err = iter.Next()
	assert.NilError(t, err)

	// Any store mutation after the iterator was created poisons it.
	f.spawnWith(t, &Position{X: 99})

	assert.True(t, iter.HasNext())
	_, err = iter.Next()
	assert.ErrorIs(t, err, search.ErrIterationInvalidated)
}

func TestCollectedHandlesSurviveMutation(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.spawnWith(t, &Health{HP: 10})
	}

	ids, err := search.New(f.store, filter.Contains(
		filter.Component[Health](),
	)).Collect()
	assert.NilError(t, err)
	assert.Len(t, ids, 5)

	md := f.meta["health"]
	for _, id := range ids {
		hp, err := f.store.GetComponentForEntity(md, id)
		assert.NilError(t, err)
		hp.(*Health).HP--
		_, err = f.store.SetComponentForEntity(md, id, hp)
		assert.NilError(t, err)
	}
	for _, id := range ids {
		hp, err := f.store.GetComponentForEntity(md, id)
		assert.NilError(t, err)
		assert.Equal(t, hp.(*Health).HP, 9)
	}
}

func TestEachStopsWhenCallbackReturnsFalse(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 8; i++ {
		f.spawnWith(t, &Position{})
	}

	seen := 0
	err := search.New(f.store, filter.Contains(
		filter.Component[Position](),
	)).Each(func(types.EntityID) bool {
		seen++
		return seen < 3
	})
	assert.NilError(t, err)
	assert.Equal(t, seen, 3)
}

func TestFirstAndMustFirst(t *testing.T) {
	f := newFixture(t)

	s := search.New(f.store, filter.Contains(filter.Component[Velocity]()))
	_, err := s.First()
	assert.ErrorContains(t, err, "no entity matches")
	assert.Panics(t, func() { s.MustFirst() })

	id := f.spawnWith(t, &Velocity{})
	got, err := s.First()
	assert.NilError(t, err)
	assert.Equal(t, got, id)
	assert.Equal(t, s.MustFirst(), id)
}

// TestScanCostTracksSmallestPopulation pins the selectivity guarantee: a
// query over a rare and a common component must probe proportionally to the
// rare one's population, not walk the common component's ten thousand
// holders.
func TestScanCostTracksSmallestPopulation(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10_000; i++ {
		f.spawnWith(t, &Position{X: float64(i)})
	}
	rare := make([]types.EntityID, 0, 3)
	for i := 0; i < 3; i++ {
		rare = append(rare, f.spawnWith(t, &Position{}, &Frozen{}))
	}

	before := f.store.Lookups()
	got, err := search.New(f.store, filter.Contains(
		filter.Component[Position](), filter.Component[Frozen](),
	)).Collect()
	assert.NilError(t, err)
	probes := f.store.Lookups() - before

	assert.ElementsMatch(t, got, rare)
	assert.Assert(t, probes < 100, "query probed %d records for 3 candidates", probes)
}

// TestRandomizedSignaturesAgainstBruteForce cross-checks the hash join
// against a naive per-entity evaluation of the same signatures.
func TestRandomizedSignaturesAgainstBruteForce(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(42))

	carried := map[types.EntityID][]types.Component{}
	for i := 0; i < 300; i++ {
		components := make([]types.Component, 0, 4)
		names := make([]types.Component, 0, 4)
		if rng.Intn(2) == 0 {
			components = append(components, &Position{X: float64(i)})
			names = append(names, filter.ComponentWithName("position"))
		}
		if rng.Intn(3) == 0 {
			components = append(components, &Velocity{DX: 1})
			names = append(names, filter.ComponentWithName("velocity"))
		}
		if rng.Intn(4) == 0 {
			components = append(components, &Health{HP: 100})
			names = append(names, filter.ComponentWithName("health"))
		}
		if rng.Intn(10) == 0 {
			components = append(components, &Frozen{})
			names = append(names, filter.ComponentWithName("frozen"))
		}
		id := f.spawnWith(t, components...)
		carried[id] = names
	}

	signatures := []filter.Signature{
		filter.All(),
		filter.Contains(filter.Component[Position]()),
		filter.Contains(filter.Component[Position](), filter.Component[Velocity]()),
		filter.Contains(filter.Component[Position]()).Without(filter.Component[Velocity]()),
		filter.Contains(filter.Component[Velocity](), filter.Component[Health]()).
			Without(filter.Component[Frozen]()),
		filter.All().Without(filter.Component[Position](), filter.Component[Health]()),
		filter.Contains(filter.Component[Frozen]()),
	}

	for _, sig := range signatures {
		got, err := search.New(f.store, sig).Collect()
		assert.NilError(t, err)

		want := make([]types.EntityID, 0)
		for id, names := range carried {
			if sig.MatchesComponents(names) {
				want = append(want, id)
			}
		}
		assert.ElementsMatch(t, got, want)
	}
}
