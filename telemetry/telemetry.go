// Package telemetry wraps the statsd methods the engine emits. It hides the
// datadog dependency so a future migration only needs to edit this file; any
// client implementing datadog's ClientInterface can be swapped in.
package telemetry

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// Init replaces the no-op client with a real statsd client. Worlds with no
// statsd address configured never call it.
func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("bucket"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return err
	}
	client = newClient
	return nil
}

// EmitOpStat reports the duration of a single world operation.
func EmitOpStat(start time.Time, op string) {
	duration := time.Since(start)
	if err := Client().Timing("op", duration, []string{op}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit op stat: %v", err)
	}
}

// EmitQueryStat reports how many candidates a search visited, which tracks
// the selectivity of the chosen driver component.
func EmitQueryStat(candidates int) {
	if err := Client().Histogram("query.candidates", float64(candidates), nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit query stat: %v", err)
	}
}
