// Package filter declares component signatures for entity searches.
package filter

import (
	"github.com/rotisserie/eris"

	"github.com/bucket-ecs/bucket/types"
)

// ErrConflictingFilter is returned when a signature requires and excludes
// the same component type. Such a search is an invalid argument and is never
// executed.
var ErrConflictingFilter = eris.New("component is both required and excluded")

// Signature selects entities by the components they must carry and the
// components they must not. The zero value matches every live entity.
type Signature struct {
	required []types.Component
	excluded []types.Component
}

// Contains matches entities whose record carries all the given components.
func Contains(components ...types.Component) Signature {
	return Signature{required: components}
}

// All matches every live entity.
func All() Signature {
	return Signature{}
}

// Without narrows the signature to entities carrying none of the given
// components.
func (s Signature) Without(components ...types.Component) Signature {
	s.excluded = append(s.excluded[:len(s.excluded):len(s.excluded)], components...)
	return s
}

func (s Signature) Required() []types.Component { return s.required }
func (s Signature) Excluded() []types.Component { return s.excluded }

// Validate rejects signatures whose required and excluded sets intersect.
func (s Signature) Validate() error {
	if len(s.required) == 0 || len(s.excluded) == 0 {
		return nil
	}
	required := make(map[string]struct{}, len(s.required))
	for _, c := range s.required {
		required[c.Name()] = struct{}{}
	}
	for _, c := range s.excluded {
		if _, ok := required[c.Name()]; ok {
			return eris.Wrapf(ErrConflictingFilter, "component %q", c.Name())
		}
	}
	return nil
}

// MatchesComponents reports whether an entity carrying exactly the given
// components satisfies the signature. The query engine probes the store
// directly instead of calling this; it exists for brute-force cross-checks.
func (s Signature) MatchesComponents(components []types.Component) bool {
	for _, c := range s.required {
		if !matchComponent(components, c) {
			return false
		}
	}
	for _, c := range s.excluded {
		if matchComponent(components, c) {
			return false
		}
	}
	return true
}

// matchComponent reports whether the slice contains the component.
// Components are the same if they have the same Name.
func matchComponent(components []types.Component, cType types.Component) bool {
	for _, c := range components {
		if cType.Name() == c.Name() {
			return true
		}
	}
	return false
}
