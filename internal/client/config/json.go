package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/restate/internal/flagx"
)

// Duration accepts either a string like "30s" or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(p)
	case float64:
		*d = Duration(time.Duration(x))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointers
// distinguish "absent" from "empty".
type JsonConfig struct {
	Endpoint               *string   `json:"endpoint"`
	ProjectID              *string   `json:"project_id"`
	DatabaseID             *string   `json:"database_id"`
	PropertiesCollectionID *string   `json:"properties_collection_id"`
	GalleriesCollectionID  *string   `json:"galleries_collection_id"`
	ReviewsCollectionID    *string   `json:"reviews_collection_id"`
	AgentsCollectionID     *string   `json:"agents_collection_id"`
	Platform               *string   `json:"platform"`
	CallbackAddr           *string   `json:"callback_addr"`
	LoginTimeout           *Duration `json:"login_timeout"`
	RequestTimeout         *Duration `json:"request_timeout"`
	SessionDB              *string   `json:"session_db"`
	LogLevel               *string   `json:"log_level"`
	OTelEndpoint           *string   `json:"otel_endpoint"`
}

// parseJson overlays Config with values loaded from the file given by -c or
// -config. Without either flag it does nothing. It panics on read or decode
// errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Endpoint, jc.Endpoint)
	setString(&cfg.ProjectID, jc.ProjectID)
	setString(&cfg.DatabaseID, jc.DatabaseID)
	setString(&cfg.PropertiesCollectionID, jc.PropertiesCollectionID)
	setString(&cfg.GalleriesCollectionID, jc.GalleriesCollectionID)
	setString(&cfg.ReviewsCollectionID, jc.ReviewsCollectionID)
	setString(&cfg.AgentsCollectionID, jc.AgentsCollectionID)
	setString(&cfg.Platform, jc.Platform)
	setString(&cfg.CallbackAddr, jc.CallbackAddr)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.OTelEndpoint, jc.OTelEndpoint)

	if jc.LoginTimeout != nil {
		cfg.LoginTimeout = time.Duration(*jc.LoginTimeout)
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
