package config

import "time"

// ServerConfig contains server configuration
type ServerConfig struct {
	Port        int      `yaml:"port" validate:"gt=0,lte=65535"`
	Metrics     bool     `yaml:"metrics"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// FeedConfig says where a GTFS static feed comes from.
// Source is a directory, a zip file, an http(s) URL or a gs://bucket/object.
type FeedConfig struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source" validate:"required"`
	Snapshot string `yaml:"snapshot"`
	Timezone string `yaml:"timezone" validate:"omitempty,timezone"`
}

// QueryConfig tunes departure queries
type QueryConfig struct {
	Limit              int  `yaml:"limit" validate:"gte=0"`
	GracePeriodSeconds int  `yaml:"gracePeriodSeconds" validate:"gte=0"`
	HonorServiceDates  bool `yaml:"honorServiceDates"`
}

func (q QueryConfig) GracePeriod() time.Duration {
	return time.Duration(q.GracePeriodSeconds) * time.Second
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `yaml:"pretty"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Feed    FeedConfig    `yaml:"feed"`
	Feeds   []FeedConfig  `yaml:"feeds"`
	Query   QueryConfig   `yaml:"query"`
	Logging LoggingConfig `yaml:"logging"`
}
