package bucket

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bucket-ecs/bucket/types"
)

func loadComponentIntoArrayLogger(
	component types.ComponentMetadata,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID()))
	dictLogger = dictLogger.Str("component_name", component.Name())
	return arrayLogger.Dict(dictLogger)
}

// logRegisteredComponents logs every registered component as a zerolog
// array of dicts.
func logRegisteredComponents(logger *zerolog.Logger, components []types.ComponentMetadata, level zerolog.Level) {
	event := logger.WithLevel(level)
	event.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	event.Array("components", arrayLogger)
	event.Send()
}

// logEntityEvent logs one entity operation with its component context.
func logEntityEvent(logger *zerolog.Logger, id types.EntityID, md types.ComponentMetadata, msg string) {
	logger.Debug().
		Str("entity_id", strconv.FormatUint(uint64(id), 10)).
		Str("component_name", md.Name()).
		Int("component_id", int(md.ID())).
		Msg(msg)
}
