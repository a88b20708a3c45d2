package bucket

import (
	"reflect"
	"time"

	"github.com/bucket-ecs/bucket/telemetry"
	"github.com/bucket-ecs/bucket/types"
)

// Create spawns a single entity, optionally attaching initial component
// values, and returns its handle. The handle is alive immediately.
func Create(w *World, components ...types.Component) (types.EntityID, error) {
	ids, err := CreateMany(w, 1, components...)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// CreateMany spawns num entities, each carrying its own copy of the given
// component values. All components must be registered before any entity is
// spawned; on a registration error the world is left untouched.
func CreateMany(w *World, num int, components ...types.Component) (_ []types.EntityID, err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()
	defer telemetry.EmitOpStat(time.Now(), "create")

	mds := make([]types.ComponentMetadata, 0, len(components))
	for _, comp := range components {
		md, err := w.store.ComponentByName(comp.Name())
		if err != nil {
			return nil, err
		}
		mds = append(mds, md)
	}

	ids := make([]types.EntityID, num)
	for i := range ids {
		id := w.alloc.Allocate()
		w.store.CreateRecord(id)
		for j, comp := range components {
			// Each entity gets its own boxed copy of the component value.
			ptr := reflect.New(mds[j].Type())
			ptr.Elem().Set(reflect.ValueOf(comp))
			if _, err := w.store.SetComponentForEntity(mds[j], id, ptr.Interface()); err != nil {
				return nil, err
			}
			logEntityEvent(&w.logger, id, mds[j], "entity created with component")
		}
		ids[i] = id
	}
	return ids, nil
}

// Remove despawns the entity: the handle is invalidated, its whole component
// record is cleared, and the slot index becomes reusable. Deallocation and
// record clearing are one logically atomic step; when the handle is stale
// the world is left exactly as it was.
func Remove(w *World, id types.EntityID) (err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()
	defer telemetry.EmitOpStat(time.Now(), "remove")

	if err := w.alloc.Deallocate(id); err != nil {
		return err
	}
	w.store.RemoveEntity(id)
	w.logger.Debug().Str("entity_id", id.String()).Msg("entity removed")
	return nil
}
