package bucket

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

const (
	DefaultNamespace = "bucket-world"
	DefaultLogLevel  = "info"
)

// WorldConfig is loaded from the environment when a World is created.
// Functional options passed to NewWorld take precedence over it.
type WorldConfig struct {
	// BucketNamespace labels this world's log events and metrics.
	BucketNamespace string `config:"BUCKET_NAMESPACE"`
	// BucketLogLevel is any level accepted by zerolog.ParseLevel.
	BucketLogLevel string `config:"BUCKET_LOG_LEVEL"`
	// BucketLogPretty switches from JSON logs to a console writer.
	BucketLogPretty bool `config:"BUCKET_LOG_PRETTY"`
	// BucketStatsdAddress enables statsd emission when non-empty.
	BucketStatsdAddress string `config:"BUCKET_STATSD_ADDRESS"`
}

func loadWorldConfig() (WorldConfig, error) {
	var cfg WorldConfig
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load world config from env")
	}
	if cfg.BucketNamespace == "" {
		cfg.BucketNamespace = DefaultNamespace
	}
	if cfg.BucketLogLevel == "" {
		cfg.BucketLogLevel = DefaultLogLevel
	}
	return cfg, nil
}
