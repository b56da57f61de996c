package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/firemap/internal/buildinfo"
	"github.com/dmitrijs2005/firemap/internal/client/cli"
	"github.com/dmitrijs2005/firemap/internal/client/config"
	"github.com/dmitrijs2005/firemap/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, closeDB, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error(ctx, "close database", "err", err)
		}
	}()

	app.Run(ctx)
}
