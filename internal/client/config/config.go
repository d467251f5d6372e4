package config

import (
	"errors"
	"time"
)

var (
	ErrNoEndpoint = errors.New("appwrite endpoint is not set")
	ErrNoProject  = errors.New("appwrite project id is not set")
)

// Config holds runtime settings for the ReState CLI.
//
// Fields:
//   - Endpoint, ProjectID: Appwrite API root (e.g. https://cloud.appwrite.io/v1) and project.
//   - DatabaseID and the *CollectionID fields: where listings live.
//   - Platform: app id the OAuth redirect is scoped to.
//   - CallbackAddr: loopback host:port that receives the OAuth redirect.
//   - LoginTimeout: how long to wait for the browser round trip.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDB: sqlite file that keeps the session cookie between runs.
type Config struct {
	Endpoint               string        `env:"APPWRITE_ENDPOINT"`
	ProjectID              string        `env:"APPWRITE_PROJECT_ID"`
	DatabaseID             string        `env:"APPWRITE_DATABASE_ID"`
	PropertiesCollectionID string        `env:"APPWRITE_PROPERTIES_COLLECTION_ID"`
	GalleriesCollectionID  string        `env:"APPWRITE_GALLERIES_COLLECTION_ID"`
	ReviewsCollectionID    string        `env:"APPWRITE_REVIEWS_COLLECTION_ID"`
	AgentsCollectionID     string        `env:"APPWRITE_AGENTS_COLLECTION_ID"`
	Platform               string        `env:"RESTATE_PLATFORM"`
	CallbackAddr           string        `env:"RESTATE_CALLBACK_ADDR"`
	LoginTimeout           time.Duration `env:"RESTATE_LOGIN_TIMEOUT"`
	RequestTimeout         time.Duration `env:"RESTATE_REQUEST_TIMEOUT"`
	SessionDB              string        `env:"RESTATE_SESSION_DB"`
	LogLevel               string        `env:"RESTATE_LOG_LEVEL"`
	OTelEndpoint           string        `env:"RESTATE_OTEL_ENDPOINT"`
}

// LoadDefaults populates c with sensible defaults. Endpoint and project have
// no default.
func (c *Config) LoadDefaults() {
	c.Platform = "com.mrf.restate"
	c.CallbackAddr = "127.0.0.1:8765"
	c.LoginTimeout = 2 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.SessionDB = "restate.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, nil)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the backend client cannot work without. A
// non-nil result is meant to be logged; the program keeps running and
// backend calls fail when made.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, ErrNoEndpoint)
	}
	if c.ProjectID == "" {
		errs = append(errs, ErrNoProject)
	}
	return errors.Join(errs...)
}
