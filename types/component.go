package types

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"github.com/bucket-ecs/bucket/codec"
)

// ComponentID is a stable identifier for a component kind, assigned once per
// distinct type when the type is registered with a World. IDs are scoped to
// the World that issued them; there is no process-global registry.
type ComponentID int

// Component is the interface the user implements to declare a new component
// type. The name must be unique within a World and stable across runs.
type Component interface {
	// Name returns the name of the component.
	Name() string
}

// ComponentMetadata wraps a user-defined Component struct with the
// bookkeeping the storage engine needs: the assigned ID, the concrete Go
// type used to verify tagged payloads on retrieval, and codec helpers.
type ComponentMetadata interface {
	// SetID sets the ID of this component. It must only be set once.
	SetID(ComponentID) error
	// ID returns the ID assigned at registration.
	ID() ComponentID
	// Type returns the concrete Go type of the component value.
	Type() reflect.Type
	// Schema returns the JSON schema captured at registration.
	Schema() []byte

	Encode(any) ([]byte, error)
	Decode([]byte) (any, error)

	Component
}

// NewComponentMetadata creates the metadata for component type T, capturing
// its JSON schema up front so duplicate registrations can be checked for
// structural equality.
func NewComponentMetadata[T Component]() (ComponentMetadata, error) {
	var t T
	schema, err := SerializeComponentSchema(t)
	if err != nil {
		return nil, err
	}
	return &componentMetadata[T]{
		typ:    reflect.TypeOf(t),
		name:   t.Name(),
		schema: schema,
	}, nil
}

type componentMetadata[T Component] struct {
	isIDSet bool
	id      ComponentID
	typ     reflect.Type
	name    string
	schema  []byte
}

func (c *componentMetadata[T]) SetID(id ComponentID) error {
	if c.isIDSet {
		// Re-registration with an unchanged ID is allowed so the same
		// component value can be shared between worlds in tests.
		if id == c.id {
			return nil
		}
		return eris.Errorf("id for component %q is already set to %v, cannot change to %v", c.name, c.id, id)
	}
	c.id = id
	c.isIDSet = true
	return nil
}

func (c *componentMetadata[T]) ID() ComponentID    { return c.id }
func (c *componentMetadata[T]) Type() reflect.Type { return c.typ }
func (c *componentMetadata[T]) Schema() []byte     { return c.schema }
func (c *componentMetadata[T]) Name() string       { return c.name }
func (c *componentMetadata[T]) String() string     { return c.name }

func (c *componentMetadata[T]) Encode(v any) ([]byte, error) {
	return codec.Encode(v)
}

func (c *componentMetadata[T]) Decode(bz []byte) (any, error) {
	return codec.Decode[T](bz)
}

func SerializeComponentSchema(component Component) ([]byte, error) {
	componentSchema := jsonschema.Reflect(component)
	schema, err := componentSchema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return schema, nil
}

// IsSchemaValid reports whether two serialized component schemas describe the
// same structure.
func IsSchemaValid(jsonSchemaBytes1 []byte, jsonSchemaBytes2 []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(jsonSchemaBytes1, jsonSchemaBytes2)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}
