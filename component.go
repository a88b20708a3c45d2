package bucket

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/gamestate"
	"github.com/bucket-ecs/bucket/types"
)

// RegisterComponent makes component type T usable with this world and
// assigns it the next ComponentID. Registering the same name twice is only
// allowed when the schemas are structurally identical, which keeps two
// different structs from silently sharing a name.
func RegisterComponent[T types.Component](w *World) error {
	md, err := types.NewComponentMetadata[T]()
	if err != nil {
		return err
	}

	if existing, err := w.store.ComponentByName(md.Name()); err == nil {
		ok, err := types.IsSchemaValid(existing.Schema(), md.Schema())
		if err != nil {
			return err
		}
		if !ok {
			return eris.Errorf("component %q is already registered with a different schema", md.Name())
		}
		return nil
	}

	if err := md.SetID(w.nextComponentID); err != nil {
		return err
	}
	w.nextComponentID++
	w.store.RegisterComponent(md)
	w.registeredComponents = append(w.registeredComponents, md)

	logRegisteredComponents(&w.logger, w.registeredComponents, zerolog.InfoLevel)
	return nil
}

// SetComponent stores the component for the entity, replacing and returning
// any previous value of that type. The pointer is stored as-is, so later
// reads observe the caller's in-place mutations.
func SetComponent[T types.Component](w *World, id types.EntityID, component *T) (previous *T, err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()

	md, err := componentMetadata[T](w)
	if err != nil {
		return nil, err
	}
	prev, err := w.store.SetComponentForEntity(md, id, component)
	if err != nil {
		return nil, err
	}
	logEntityEvent(&w.logger, id, md, "entity updated")
	if prev == nil {
		return nil, nil
	}
	return assertComponent[T](prev)
}

// GetComponent returns the entity's component of type T. The returned
// pointer aliases stored data; mutations through it are visible to
// subsequent reads and queries.
func GetComponent[T types.Component](w *World, id types.EntityID) (comp *T, err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()

	md, err := componentMetadata[T](w)
	if err != nil {
		return nil, err
	}
	value, err := w.store.GetComponentForEntity(md, id)
	if err != nil {
		return nil, err
	}
	return assertComponent[T](value)
}

// UpdateComponent reads the component, applies fn, and stores the result.
func UpdateComponent[T types.Component](w *World, id types.EntityID, fn func(*T) *T) (err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()

	val, err := GetComponent[T](w, id)
	if err != nil {
		return err
	}
	_, err = SetComponent(w, id, fn(val))
	return err
}

// RemoveComponentFrom removes and returns the entity's component of type T.
// A nil result with a nil error means the entity did not carry one; that is
// not an error.
func RemoveComponentFrom[T types.Component](w *World, id types.EntityID) (removed *T, err error) {
	defer func() { panicOnFatalError(&w.logger, err) }()

	md, err := componentMetadata[T](w)
	if err != nil {
		return nil, err
	}
	prev, err := w.store.RemoveComponentFromEntity(md, id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, nil
	}
	logEntityEvent(&w.logger, id, md, "component removed")
	return assertComponent[T](prev)
}

// HasComponent reports whether the live entity carries a component of type T.
func HasComponent[T types.Component](w *World, id types.EntityID) (bool, error) {
	md, err := componentMetadata[T](w)
	if err != nil {
		return false, err
	}
	if !w.Exists(id) {
		return false, gamestate.ErrStaleEntity
	}
	return w.store.HasComponent(md.ID(), id), nil
}

func componentMetadata[T types.Component](w *World) (types.ComponentMetadata, error) {
	var t T
	return w.store.ComponentByName(t.Name())
}

// assertComponent exposes the typed view of a tagged payload. A failed
// assertion here means the store's tag bookkeeping is corrupted; it is
// reported as the fatal ErrComponentMismatch, never as wrong-but-typed data.
func assertComponent[T types.Component](value any) (*T, error) {
	comp, ok := value.(*T)
	if !ok {
		return nil, eris.Wrapf(gamestate.ErrComponentMismatch, "got %T", value)
	}
	return comp, nil
}
