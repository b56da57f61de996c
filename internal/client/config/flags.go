package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/firemap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-g string   geocoder API key
//	-d string   local session database path
//	-o string   directory for downloaded gallery images
//	-l string   log level (debug, info, warn, error)
//	-t int      request timeout in seconds
//
// Only the flags above are passed to the flag set, so -c/-config and
// anything unknown do not cause a parse error.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, "-a", "-g", "-d", "-o", "-l", "-t")

	fs := flag.NewFlagSet("firemap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.GeocoderKey, "g", cfg.GeocoderKey, "geocoder API key")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local session database path")
	fs.StringVar(&cfg.GalleryDir, "o", cfg.GalleryDir, "gallery download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
