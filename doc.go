/*
Package bucket is a minimal entity-component-system runtime built around
map-per-entity storage. A World issues generational entity handles, stores
each entity's components in a heterogeneous type-keyed record, and answers
signature queries (required/excluded component sets) in time proportional to
the most selective required component.

The package is the facade; storage lives in gamestate, the query engine in
gamestate/search, and the filter DSL in gamestate/search/filter.

	w, err := bucket.NewWorld()
	if err != nil { ... }
	if err := bucket.RegisterComponent[Position](w); err != nil { ... }
	if err := bucket.RegisterComponent[Velocity](w); err != nil { ... }

	id, _ := bucket.Create(w, Position{X: 1}, Velocity{DX: 2})

	s := w.Search(filter.Contains(Position{}).Without(Velocity{}))
	err = s.Each(func(id types.EntityID) bool {
		pos, _ := bucket.GetComponent[Position](w, id)
		pos.X++ // components are mutated in place
		return true
	})

A World is single-threaded: every operation completes before returning and
the World is owned by one goroutine at a time. Systems that want to run in
parallel under an external scheduler declare their component access with
types.AccessSet; the scheduler, not this package, enforces the exclusion.
*/
package bucket
