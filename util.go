package bucket

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/gamestate"
	"github.com/bucket-ecs/bucket/gamestate/search"
	"github.com/bucket-ecs/bucket/gamestate/search/filter"
)

// NonFatalError lists the recoverable error kinds: callers are expected to
// handle these and carry on. Anything else reaching the facade indicates
// corrupted engine invariants and aborts loudly.
var NonFatalError = []error{
	gamestate.ErrStaleEntity,
	gamestate.ErrComponentNotOnEntity,
	gamestate.ErrComponentNotRegistered,
	filter.ErrConflictingFilter,
	search.ErrIterationInvalidated,
}

// panicOnFatalError panics on errors that indicate broken type-erasure
// bookkeeping (e.g. a component tag mismatch). Swallowing those risks silent
// data corruption.
func panicOnFatalError(logger *zerolog.Logger, err error) {
	if err != nil && isFatalError(err) {
		logger.Panic().Err(err).Msgf("fatal error: %v", eris.ToString(err, true))
		panic(err)
	}
}

func isFatalError(err error) bool {
	for _, e := range NonFatalError {
		if eris.Is(err, e) {
			return false
		}
	}
	return true
}
