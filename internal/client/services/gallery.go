package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/filex"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/netx"
)

// GalleryService builds the per-floor photo gallery of a building.
type GalleryService interface {
	// Previews fetches every floor's gallery in order. A floor whose fetch
	// fails is logged and left out; a lost session aborts the whole run.
	Previews(ctx context.Context, b models.Building) ([]models.FloorPreview, error)
	// Download saves the images of one floor into dir and returns the paths.
	Download(ctx context.Context, p models.FloorPreview, dir string) ([]string, error)
}

type galleryService struct {
	client client.Client
	http   *http.Client
	log    logging.Logger
}

func NewGalleryService(c client.Client, hc *http.Client, log logging.Logger) GalleryService {
	return &galleryService{client: c, http: hc, log: log}
}

func (g *galleryService) Previews(ctx context.Context, b models.Building) ([]models.FloorPreview, error) {
	out := make([]models.FloorPreview, 0, len(b.Floors))
	for _, fl := range b.Floors {
		gal, err := g.client.GetLevelGallery(ctx, b.ID, fl.ID)
		if err != nil {
			if errors.Is(err, common.ErrNoSession) || errors.Is(err, client.ErrUnauthorized) || ctx.Err() != nil {
				return nil, fmt.Errorf("load gallery: %w", err)
			}
			g.log.Warn(ctx, "floor gallery failed", "building_id", b.ID.String(), "level", fl.ID.String(), "err", err)
			continue
		}

		items := gal.Items()
		p := models.FloorPreview{FloorID: fl.ID, FloorName: fl.Name, Images: items}
		if len(items) > 0 {
			p.Preview = items[0].URL
		}
		out = append(out, p)
	}
	return out, nil
}

func (g *galleryService) Download(ctx context.Context, p models.FloorPreview, dir string) ([]string, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	name := p.FloorName
	if name == "" {
		name = "floor_" + p.FloorID.String()
	}

	paths := make([]string, 0, len(p.Images))
	for i, img := range p.Images {
		blob, err := netx.Download(ctx, g.http, img.URL)
		if err != nil {
			return paths, fmt.Errorf("download %s: %w", img.URL, err)
		}
		path := filepath.Join(abs, filex.SafeName(fmt.Sprintf("%s_%02d%s", name, i+1, blob.Extension)))
		if err := os.WriteFile(path, blob.Data, 0o640); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
