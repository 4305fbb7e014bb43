package config

import (
	"encoding/json"
	"os"

	"github.com/inboxpilot/dashboard-client/internal/flagx"
	"github.com/inboxpilot/dashboard-client/internal/store"
	"github.com/inboxpilot/dashboard-client/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written as "10s" or as integer
// nanoseconds.
type jsonConfig struct {
	GatewayBaseURL string         `json:"gateway_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StoreBackend   string         `json:"store_backend"`
	StorePath      string         `json:"store_path"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flag, when present. Only fields the file actually sets are
// copied. Read or unmarshal errors panic; configuration is resolved before
// any user interaction, so failing loudly here is the right call.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GatewayBaseURL != "" {
		cfg.GatewayBaseURL = jc.GatewayBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StoreBackend != "" {
		cfg.StoreBackend = store.Backend(jc.StoreBackend)
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
}
