package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/layout"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/filex"
	"github.com/paulmach/orb"
)

const helpLayout = `Layout commands:
  levels                      list floors and basements
  select <f|b> <id>           open a floor or basement
  icons [refresh]             list icons on the level
  categories [refresh]        list icon categories
  category <name>             select a category, again to hide or show it
  zoom <latDelta>             change the map span
  edit                        request and enter the edit code
  place <icon id>             place a catalog icon
  move <ref> <lat> <lon>      move an icon
  label <ref> [text]          set an icon label
  delete <ref>                delete an icon
  photo <path> [caption]      queue a photo for the next save
  save                        save icons and queued photos
  export [file]               write the level as GeoJSON
  back                        leave the layout`

// layoutIface is what the layout sub-REPL dispatches to.
type layoutIface interface {
	Levels() error
	Select(ctx context.Context, args []string) error
	ListIcons(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Category(args []string) error
	Zoom(args []string) error
	EditMode(ctx context.Context) error
	Place(args []string) error
	Move(args []string) error
	Label(args []string) error
	Delete(ctx context.Context, args []string) error
	Photo(args []string) error
	Save(ctx context.Context) error
	Export(args []string) error
}

// layoutScreen is the floor-layout screen of one building.
type layoutScreen struct {
	app     *App
	editor  *layout.Editor
	catalog *cache.CatalogCache
	photos  []models.Photo
}

// Layout opens the floor-layout screen of a building. The first floor, or
// the first basement when there are no floors, is opened right away.
func (a *App) Layout(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	b, err := a.Deps.Buildings.Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}
	if err := a.Catalog.Load(ctx); err != nil {
		a.printf("Icon catalog unavailable: %v\n", err)
	}

	ed := layout.NewEditor(a.LayoutAPI, b, layout.WithLogger(a.Logger))
	defer ed.Close()
	s := &layoutScreen{app: a, editor: ed, catalog: a.Catalog}

	if levels := b.Levels(); len(levels) > 0 {
		l := levels[0]
		if err := ed.SelectContext(ctx, l.Kind, l.ID); err != nil {
			a.printf("Error: %v\n", err)
		}
	}

	runLayoutREPL(ctx, s, s.status, a.in)
	return nil
}

func (s *layoutScreen) status() string {
	b := s.editor.Building()
	lvl, ok := s.editor.Level()
	where := "no level"
	if ok {
		where = lvl.Label()
	}
	return fmt.Sprintf("%s / %s [%s]", b.Name, where, s.editor.State())
}

// runLayoutREPL is the layout screen's command loop. It returns on "back",
// "exit" or end of input.
func runLayoutREPL(ctx context.Context, s layoutIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("layout %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpLayout)
		case "levels":
			err = s.Levels()
		case "select":
			err = s.Select(ctx, args)
		case "icons":
			err = s.ListIcons(ctx, args)
		case "categories":
			err = s.Categories(ctx, args)
		case "category":
			err = s.Category(args)
		case "zoom":
			err = s.Zoom(args)
		case "edit", "otp":
			err = s.EditMode(ctx)
		case "place":
			err = s.Place(args)
		case "move":
			err = s.Move(args)
		case "label":
			err = s.Label(args)
		case "delete":
			err = s.Delete(ctx, args)
		case "photo":
			err = s.Photo(args)
		case "save":
			err = s.Save(ctx)
		case "export":
			err = s.Export(args)
		case "back", "exit", "quit":
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func (s *layoutScreen) Levels() error {
	levels := s.editor.Building().Levels()
	if len(levels) == 0 {
		s.app.printf("This building has no floors or basements\n")
		return nil
	}
	cur, ok := s.editor.Level()
	for _, l := range levels {
		mark := " "
		if ok && cur.Kind == l.Kind && cur.ID == l.ID {
			mark = "*"
		}
		s.app.printf("%s %-8s %-4s %s\n", mark, l.Kind, l.ID, l.Label())
	}
	return nil
}

func (s *layoutScreen) Select(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	kind, err := models.ParseLevelKind(args[0])
	if err != nil {
		return err
	}
	if n := len(s.photos); n > 0 {
		s.app.printf("Dropped %d queued photo(s)\n", n)
		s.photos = nil
	}
	if err := s.editor.SelectContext(ctx, kind, models.ID(args[1])); err != nil {
		return err
	}
	s.app.printf("%d icon(s)\n", len(s.editor.Icons()))
	return nil
}

// ListIcons prints the visible icons. "icons refresh" refetches the level
// first; unsaved icons are dropped by that.
func (s *layoutScreen) ListIcons(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "refresh" {
		if err := s.editor.Reload(ctx); err != nil {
			return err
		}
	}
	icons := s.editor.VisibleIcons()
	if hidden := len(s.editor.Icons()) - len(icons); hidden > 0 {
		s.app.printf("(%d hidden)\n", hidden)
	}
	if len(icons) == 0 {
		s.app.printf("No icons\n")
		return nil
	}
	size := s.editor.MarkerSize()
	s.app.printf("marker %.0fpx, label %.0fpx\n", size, layout.LabelWidth(size))
	for _, ic := range icons {
		s.app.printf("%-44s icon %-4s %s, %s  %-12s %q\n", ic.Ref, ic.IconID,
			models.FormatCoord(ic.Location.Lat()), models.FormatCoord(ic.Location.Lon()), ic.Category, ic.Label)
	}
	return nil
}

func (s *layoutScreen) Categories(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "refresh" {
		if err := s.catalog.Refresh(ctx); err != nil {
			return err
		}
	}
	cats := s.catalog.All()
	if len(cats) == 0 {
		s.app.printf("No icon categories\n")
		return nil
	}
	selected := s.editor.SelectedCategory()
	for _, c := range cats {
		mark := " "
		if c.Name == selected {
			mark = "*"
		}
		state := ""
		if s.editor.Hidden(c.Name) {
			state = " (hidden)"
		}
		s.app.printf("%s %s%s\n", mark, c.Name, state)
		for _, ic := range c.Icons {
			if ic.HasImage() {
				s.app.printf("    %-4s %s\n", ic.ID, ic.ImageURL)
			}
		}
	}
	return nil
}

func (s *layoutScreen) Category(args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		return errUsage
	}
	if _, ok := s.catalog.Category(name); !ok {
		return fmt.Errorf("unknown category %q", name)
	}
	s.editor.SelectCategory(name)
	if s.editor.Hidden(name) {
		s.app.printf("%s hidden\n", name)
	} else {
		s.app.printf("%s selected\n", name)
	}
	return nil
}

func (s *layoutScreen) Zoom(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	d, err := strconv.ParseFloat(args[0], 64)
	if err != nil || d <= 0 {
		return fmt.Errorf("%q is not a positive number", args[0])
	}
	s.editor.Zoom(d, d)
	s.app.printf("marker %.0fpx\n", s.editor.MarkerSize())
	return nil
}

// EditMode requests the layout edit code and submits what the user enters.
func (s *layoutScreen) EditMode(ctx context.Context) error {
	if s.editor.State() == layout.Editing {
		s.app.printf("Already editing\n")
		return nil
	}
	if err := s.editor.RequestEdit(ctx); err != nil {
		return err
	}
	code, err := s.app.ask("Edit code sent to you")
	if err != nil {
		return err
	}
	if err := s.editor.VerifyEdit(ctx, code); err != nil {
		return err
	}
	s.app.printf("Editing enabled\n")
	return nil
}

// Place puts a catalog icon on the level. The icon's category becomes the
// selected one when it is not already.
func (s *layoutScreen) Place(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	icon, category, ok := s.catalog.Icon(models.ID(args[0]))
	if !ok {
		return fmt.Errorf("unknown icon %s", args[0])
	}
	if s.editor.SelectedCategory() != category {
		s.editor.SelectCategory(category)
	}
	p, err := s.editor.PlaceIcon(icon)
	if err != nil {
		return err
	}
	s.app.printf("Placed %s at %s, %s\n", p.Ref,
		models.FormatCoord(p.Location.Lat()), models.FormatCoord(p.Location.Lon()))
	return nil
}

func (s *layoutScreen) Move(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	lat, errLat := strconv.ParseFloat(args[1], 64)
	lon, errLon := strconv.ParseFloat(args[2], 64)
	if err := errors.Join(errLat, errLon); err != nil {
		return fmt.Errorf("bad coordinate: %w", err)
	}
	return s.editor.MoveIcon(layout.ParseRef(args[0]), orb.Point{lon, lat})
}

func (s *layoutScreen) Label(args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	return s.editor.SetLabel(layout.ParseRef(args[0]), strings.Join(args[1:], " "))
}

func (s *layoutScreen) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := s.editor.DeleteIcon(ctx, layout.ParseRef(args[0])); err != nil {
		return err
	}
	s.app.printf("Deleted\n")
	return nil
}

func (s *layoutScreen) Photo(args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	if len(s.photos) >= layout.MaxPhotos {
		return layout.ErrTooManyPhotos
	}
	p, err := loadPhoto(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	s.photos = append(s.photos, p)
	s.app.printf("%d photo(s) queued\n", len(s.photos))
	return nil
}

// Save uploads icons and queued photos and reports each part. Queued photos
// are kept when their upload fails.
func (s *layoutScreen) Save(ctx context.Context) error {
	rep, err := s.editor.SaveAll(ctx, s.photos)
	if err != nil && rep.Icons == nil && rep.Photos == nil {
		return err
	}

	if rep.Icons != nil {
		s.app.printf("Icons: %v\n", rep.Icons)
	} else {
		s.app.printf("Icons: %d saved\n", rep.Saved)
	}
	switch {
	case rep.PhotosSkipped:
		s.app.printf("Photos: none queued\n")
	case rep.Photos != nil:
		s.app.printf("Photos: %v\n", rep.Photos)
	default:
		s.app.printf("Photos: %d uploaded\n", len(s.photos))
		s.photos = nil
	}
	return nil
}

// Export prints the GeoJSON or writes it to a file.
func (s *layoutScreen) Export(args []string) error {
	data, err := s.editor.ExportGeoJSON()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		s.app.printf("%s\n", data)
		return nil
	}
	path := args[0]
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return err
	}
	s.app.printf("Wrote %s\n", path)
	return nil
}
