package bucket

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/gamestate"
	"github.com/bucket-ecs/bucket/gamestate/search"
	"github.com/bucket-ecs/bucket/gamestate/search/filter"
	"github.com/bucket-ecs/bucket/telemetry"
	"github.com/bucket-ecs/bucket/types"
)

// World owns the identifier allocator and the component store for one
// simulation instance. Handles never cross World boundaries. A World is
// effectively owned by one goroutine at a time; see the package doc for the
// concurrency contract.
type World struct {
	namespace string
	config    WorldConfig
	logger    zerolog.Logger

	alloc *gamestate.Allocator
	store *gamestate.ComponentStore

	// Registered components in registration order; ComponentIDs are scoped
	// to this World and assigned monotonically.
	registeredComponents []types.ComponentMetadata
	nextComponentID      types.ComponentID
}

// NewWorld creates an empty World configured from the environment and the
// given options.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.BucketLogLevel)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid log level %q", cfg.BucketLogLevel)
	}
	var logger zerolog.Logger
	if cfg.BucketLogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	logger = logger.Level(level).With().Timestamp().Logger()

	if cfg.BucketStatsdAddress != "" {
		if err := telemetry.Init(cfg.BucketStatsdAddress, nil); err != nil {
			logger.Warn().Err(err).Msg("failed to init statsd client, metrics disabled")
		}
	}

	w := &World{
		namespace: cfg.BucketNamespace,
		config:    cfg,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().Str("namespace", w.namespace).Logger()
	w.alloc = gamestate.NewAllocator(w.logger)
	w.store = gamestate.NewComponentStore(w.alloc, w.logger)

	w.logger.Info().Msg("world created")
	return w, nil
}

func (w *World) Namespace() string {
	return w.namespace
}

func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Store exposes the component store for advanced integrations. Most callers
// should stay on the package-level generic functions.
func (w *World) Store() *gamestate.ComponentStore {
	return w.store
}

// Search finds the live entities matching the signature, e.g.
// w.Search(filter.Contains(Position{}).Without(Velocity{})).
func (w *World) Search(sig filter.Signature) *search.Search {
	return search.New(w.store, sig)
}

// Exists reports whether the handle refers to a live entity.
func (w *World) Exists(id types.EntityID) bool {
	return w.alloc.IsAlive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.alloc.LiveCount()
}

// ComponentNames returns the names of all registered components in
// registration order.
func (w *World) ComponentNames() []string {
	acc := make([]string, 0, len(w.registeredComponents))
	for _, md := range w.registeredComponents {
		acc = append(acc, md.Name())
	}
	return acc
}

// DumpState serializes every live entity and its components to a JSON
// debug view. It is not a persistence format.
func (w *World) DumpState() (types.EntityStateResponse, error) {
	state := make(types.EntityStateResponse, 0, w.Len())
	for _, id := range w.alloc.LiveEntities() {
		entries, err := w.store.Record(id)
		if err != nil {
			return nil, err
		}
		components := make(map[string]json.RawMessage, len(entries))
		for _, entry := range entries {
			bz, err := entry.Metadata.Encode(entry.Value)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to encode component %q", entry.Metadata.Name())
			}
			components[entry.Metadata.Name()] = bz
		}
		state = append(state, types.EntityStateElement{
			ID:         id,
			Components: components,
		})
	}
	return state, nil
}
