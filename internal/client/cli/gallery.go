package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/filex"
)

// Gallery lists the photos of every floor. "gallery <id> save" also
// downloads them under the gallery directory.
func (a *App) Gallery(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	b, err := a.Deps.Buildings.Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}
	previews, err := a.Deps.Gallery.Previews(ctx, b)
	if err != nil {
		return err
	}
	if len(previews) == 0 {
		a.printf("No gallery for %s\n", b.Name)
		return nil
	}

	save := len(args) == 2 && args[1] == "save"
	for _, p := range previews {
		a.printf("%s (%d photo(s))\n", p.FloorName, len(p.Images))
		for _, img := range p.Images {
			a.printf("  %s  %s\n", img.URL, img.Caption)
		}
		if !save || len(p.Images) == 0 {
			continue
		}
		dir := filepath.Join(a.GalleryDir, filex.SafeName(b.Name))
		paths, err := a.Deps.Gallery.Download(ctx, p, dir)
		for _, path := range paths {
			a.printf("  saved %s\n", path)
		}
		if err != nil {
			a.printf("  Error: %v\n", err)
		}
	}
	return nil
}

// FAQ prints the help topics, filtered by question when a term is given.
func (a *App) FAQ(ctx context.Context, args []string) error {
	cats, err := a.Deps.FAQ.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	shown := 0
	for _, c := range cats {
		if len(c.FAQs) == 0 {
			continue
		}
		a.printf("== %s ==\n", c.Name)
		for _, f := range c.FAQs {
			a.printf("Q: %s\nA: %s\n\n", f.Question, f.Answer)
			shown++
		}
	}
	if shown == 0 {
		a.printf("No matching questions\n")
	}
	return nil
}
