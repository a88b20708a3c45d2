package filter

import (
	"github.com/bucket-ecs/bucket/types"
)

type componentWrapper struct {
	name string
}

var _ types.Component = componentWrapper{}

func (c componentWrapper) Name() string {
	return c.name
}

// Component references a component type in a signature without constructing
// a value of it, e.g. filter.Contains(filter.Component[Position]()).
//
//revive:disable-next-line:unexported-return
func Component[T types.Component]() componentWrapper {
	var t T
	return componentWrapper{name: t.Name()}
}

// ComponentWithName references a component type by its registered name.
func ComponentWithName(name string) componentWrapper {
	return componentWrapper{name: name}
}
