package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/firemap/internal/flagx"
	"github.com/dmitrijs2005/firemap/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields leave the
// current value untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	GeocoderURL    string         `json:"geocoder_url"`
	GeocoderKey    string         `json:"geocoder_key"`
	DatabasePath   string         `json:"database_path"`
	GalleryDir     string         `json:"gallery_dir"`
	LogLevel       string         `json:"log_level"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// It panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.GeocoderURL, jc.GeocoderURL)
	overlay(&cfg.GeocoderKey, jc.GeocoderKey)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.GalleryDir, jc.GalleryDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
