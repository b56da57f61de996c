package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/config"
	"github.com/dmitrijs2005/firemap/internal/client/geocoder"
	"github.com/dmitrijs2005/firemap/internal/client/services"
	"github.com/dmitrijs2005/firemap/internal/client/session"
	"github.com/dmitrijs2005/firemap/internal/logging"
)

// Bootstrap opens the local store, restores the session and wires every
// service. The returned func closes the store.
func Bootstrap(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, func() error, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	sess := session.New(db)
	if err := sess.Load(ctx); err != nil {
		log.Warn(ctx, "stored session ignored", "err", err)
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, sess,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	geo := geocoder.NewOpenCage(cfg.GeocoderURL, cfg.GeocoderKey, cfg.RequestTimeout, log)
	buildings := cache.NewBuildingCache(api)
	catalog := cache.NewCatalogCache(api)

	if sess.LoggedIn() {
		if err := cache.Warm(ctx, buildings, catalog); err != nil {
			log.Warn(ctx, "cache warm-up failed", "err", err)
		}
	}

	app := NewApp(Deps{
		Session:    sess,
		Auth:       services.NewAuthService(api, sess, log),
		Buildings:  services.NewBuildingService(api, buildings, geo, log),
		Gallery:    services.NewGalleryService(api, &http.Client{Timeout: cfg.RequestTimeout}, log),
		FAQ:        services.NewFAQService(api),
		Catalog:    catalog,
		LayoutAPI:  api,
		Logger:     log,
		GalleryDir: cfg.GalleryDir,
	})
	return app, db.Close, nil
}
