package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookreview/internal/flagx"
	"github.com/dmitrijs2005/bookreview/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	StoragePath         string         `json:"storage_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	LogLevel            string         `json:"log_level"`
	MinRating           *float64       `json:"min_rating"`
	SearchRatePerSecond float64        `json:"search_rate_per_second"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c/-config or $BOOKREVIEW_CONFIG (see
// flagx.JsonConfigFlags); without one nothing is loaded. Only keys present
// in the file override cfg. Panics on read or unmarshal errors.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.MinRating != nil {
		cfg.MinRating = *jc.MinRating
	}
	if jc.SearchRatePerSecond != 0 {
		cfg.SearchRatePerSecond = jc.SearchRatePerSecond
	}
}
