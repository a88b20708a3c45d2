package bucket

import (
	"github.com/bucket-ecs/bucket/gamestate"
	"github.com/bucket-ecs/bucket/gamestate/search"
	"github.com/bucket-ecs/bucket/gamestate/search/filter"
	"github.com/bucket-ecs/bucket/types"
)

// Aliases so common callers only need to import the root package.
type (
	EntityID    = types.EntityID
	Component   = types.Component
	ComponentID = types.ComponentID
	AccessSet   = types.AccessSet
	Filter      = filter.Signature
)

var (
	All      = filter.All
	Contains = filter.Contains

	ErrStaleEntity            = gamestate.ErrStaleEntity
	ErrComponentNotOnEntity   = gamestate.ErrComponentNotOnEntity
	ErrComponentNotRegistered = gamestate.ErrComponentNotRegistered
	ErrComponentMismatch      = gamestate.ErrComponentMismatch
	ErrConflictingFilter      = filter.ErrConflictingFilter
	ErrIterationInvalidated   = search.ErrIterationInvalidated
)
