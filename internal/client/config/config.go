package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the firemap CLI.
//
// RequestTimeout bounds every remote call (API and geocoder).
type Config struct {
	APIBaseURL     string
	GeocoderURL    string
	GeocoderKey    string
	DatabasePath   string
	GalleryDir     string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://firefighter.a1professionals.net/api/v1/"
	c.GeocoderURL = "https://api.opencagedata.com/geocode/v1/json"
	c.GeocoderKey = ""
	c.DatabasePath = "firemap.db"
	c.GalleryDir = "gallery"
	c.LogLevel = "info"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
