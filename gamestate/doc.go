/*
Package gamestate is the entity/component storage engine.

The Allocator issues (index, generation) entity handles and recycles slot
indices through a LIFO free list. Generations only ever grow for a given
index, so a handle that outlives its entity is detectably stale instead of
silently resolving to whatever entity reuses the slot. A slot whose
generation counter is exhausted is retired rather than wrapped.

The ComponentStore keeps one heterogeneous record per live entity, keyed by
ComponentID, with each value held in a tagged type-erased container. This is
the map-per-entity layout: O(1) amortized access, no memory spent on absent
components, and no schema declared up front, traded against the cache
locality of columnar storage. Alongside the records, the store maintains
per-component holder sets and population counts so the query engine in
gamestate/search can join on the most selective component, and a mutation
counter so open iterators fail fast instead of yielding stale results.
*/
package gamestate
