package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/paulmach/orb"
)

var errUsage = errors.New("wrong arguments, see 'help'")

// Buildings lists every building. "buildings refresh" refetches the list and
// "buildings map" lists only the buildings with a location.
func (a *App) Buildings(ctx context.Context, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	if arg == "map" {
		return a.mapBuildings(ctx)
	}
	list, err := a.Deps.Buildings.List(ctx, arg == "refresh")
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No buildings\n")
		return nil
	}
	for _, b := range list {
		a.printBuildingLine(b)
	}
	return nil
}

func (a *App) mapBuildings(ctx context.Context) error {
	list, err := a.Deps.Buildings.Mappable(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No buildings with a location\n")
		return nil
	}
	for _, b := range list {
		p, _ := b.Location()
		a.printf("[%s] %s @ %s, %s\n", b.ID, b.Name, models.FormatCoord(p.Lat()), models.FormatCoord(p.Lon()))
	}
	return nil
}

func (a *App) printBuildingLine(b models.Building) {
	a.printf("[%s] %s, %s %s\n", b.ID, b.Name, b.Address, b.Zipcode)
}

// Search filters buildings by name, address or zip code.
func (a *App) Search(ctx context.Context, args []string) error {
	res, err := a.Deps.Buildings.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(res.Matches) == 0 {
		a.printf("No matches\n")
		return nil
	}
	for _, b := range res.Matches {
		a.printBuildingLine(b)
	}
	if res.Selected != nil {
		a.printf("Selected: %s\n", res.Selected.Name)
	}
	return nil
}

// Show prints one building with its floors and basements.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	b, err := a.Deps.Buildings.Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}

	a.printf("%s\n  address: %s\n  zip:     %s\n  suite:   %s\n  floors:  %s  basements: %s\n",
		b.Name, b.Address, b.Zipcode, b.SuiteNumber, b.TotalFloor, b.TotalBasement)
	if p, ok := b.Location(); ok {
		a.printf("  location: %s, %s\n", models.FormatCoord(p.Lat()), models.FormatCoord(p.Lon()))
	}
	for _, l := range b.Levels() {
		a.printf("  %-8s %-4s %s\n", l.Kind, l.ID, l.Label())
	}
	return nil
}

// Add runs the new-building form.
func (a *App) Add(ctx context.Context) error {
	var f models.BuildingForm
	var err error

	if f.Name, err = a.ask("Building name"); err != nil {
		return err
	}
	if err := a.askAddress(ctx, &f); err != nil {
		return err
	}
	if f.Zipcode, err = a.askDefault("Zip code", f.Zipcode); err != nil {
		return err
	}
	if f.SuiteNumber, err = a.ask("Suite number"); err != nil {
		return err
	}
	if f.TotalFloors, err = GetInt(a.in, "Total floors", 1, a.out); err != nil {
		return err
	}
	if f.TotalBasements, err = GetInt(a.in, "Total basements", 0, a.out); err != nil {
		return err
	}
	if f.Lat == nil {
		if err := a.askLocation(&f); err != nil {
			return err
		}
	}
	if f.Floors, err = a.askRows("Floor", f.TotalFloors, nil); err != nil {
		return err
	}
	if f.Basements, err = a.askRows("Basement", f.TotalBasements, nil); err != nil {
		return err
	}

	if err := a.Deps.Buildings.Add(ctx, f); err != nil {
		return err
	}
	a.printf("Building added\n")
	return nil
}

// Edit requests the building's edit code, verifies it and runs the edit
// form pre-filled with the current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	b, err := a.Deps.Buildings.Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}

	if err := a.Deps.Buildings.RequestEdit(ctx, b.ID); err != nil {
		return err
	}
	code, err := a.ask("Edit code sent to you")
	if err != nil {
		return err
	}
	if err := a.Deps.Buildings.VerifyEdit(ctx, b.ID, code); err != nil {
		return err
	}

	f := models.FormFromBuilding(b)
	if f.Name, err = a.askDefault("Building name", f.Name); err != nil {
		return err
	}
	if err := a.askAddress(ctx, &f); err != nil {
		return err
	}
	if f.Zipcode, err = a.askDefault("Zip code", f.Zipcode); err != nil {
		return err
	}
	if f.SuiteNumber, err = a.askDefault("Suite number", f.SuiteNumber); err != nil {
		return err
	}

	if f.Floors, err = a.askRows("Floor", 0, f.Floors); err != nil {
		return err
	}
	extra, err := GetInt(a.in, "New floors to add", 0, a.out)
	if err != nil {
		return err
	}
	more, err := a.askRows("New floor", extra, nil)
	if err != nil {
		return err
	}
	f.Floors = append(f.Floors, more...)

	if f.Basements, err = a.askRows("Basement", 0, f.Basements); err != nil {
		return err
	}
	extra, err = GetInt(a.in, "New basements to add", 0, a.out)
	if err != nil {
		return err
	}
	more, err = a.askRows("New basement", extra, nil)
	if err != nil {
		return err
	}
	f.Basements = append(f.Basements, more...)

	f.TotalFloors, f.TotalBasements = len(f.Floors), len(f.Basements)

	if err := a.Deps.Buildings.Update(ctx, f); err != nil {
		return err
	}
	a.printf("Building updated\n")
	return nil
}

// Geocode looks an address up and prints the candidates.
func (a *App) Geocode(ctx context.Context, args []string) error {
	if len(args) == 2 {
		lat, errLat := strconv.ParseFloat(args[0], 64)
		lon, errLon := strconv.ParseFloat(args[1], 64)
		if errLat == nil && errLon == nil {
			p, err := a.Deps.Buildings.Reverse(ctx, orb.Point{lon, lat})
			if err != nil {
				return err
			}
			a.printf("%s\n", p.Formatted)
			return nil
		}
	}

	places, err := a.Deps.Buildings.SearchAddress(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printPlaces(places)
	return nil
}

func (a *App) printPlaces(places []models.Place) {
	if len(places) == 0 {
		a.printf("No places found\n")
		return
	}
	for i, p := range places {
		a.printf("%d) %s (%s, %s) %s\n", i+1, p.Formatted,
			models.FormatCoord(p.Location.Lat()), models.FormatCoord(p.Location.Lon()), p.Postcode)
	}
}

func (a *App) askDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := a.ask(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// askAddress reads an address. An answer starting with '?' searches the
// geocoder and applies the chosen place to the form.
func (a *App) askAddress(ctx context.Context, f *models.BuildingForm) error {
	prompt := "Address (start with ? to search)"
	if f.Address != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, f.Address)
	}
	v, err := a.ask(prompt)
	if err != nil {
		return err
	}

	q, search := strings.CutPrefix(v, "?")
	if !search {
		if v != "" {
			f.Address = v
		}
		return nil
	}

	places, err := a.Deps.Buildings.SearchAddress(ctx, q)
	if err != nil {
		return err
	}
	a.printPlaces(places)
	if len(places) == 0 {
		return a.askAddress(ctx, f)
	}
	n, err := GetInt(a.in, "Pick a place", 1, a.out)
	if err != nil {
		return err
	}
	if n < 1 || n > len(places) {
		return fmt.Errorf("no place %d", n)
	}
	f.Apply(places[n-1])
	return nil
}

func (a *App) askLocation(f *models.BuildingForm) error {
	lat, err := GetOptionalFloat(a.in, "Latitude", a.out)
	if err != nil {
		return err
	}
	lon, err := GetOptionalFloat(a.in, "Longitude", a.out)
	if err != nil {
		return err
	}
	f.Lat, f.Lon = lat, lon
	return nil
}

// askRows fills level rows. With existing rows it offers to rename each and
// attach a new picture; otherwise it asks for n fresh rows.
func (a *App) askRows(kind string, n int, existing []models.LevelRow) ([]models.LevelRow, error) {
	rows := existing
	if rows == nil {
		rows = make([]models.LevelRow, n)
	}
	for i := range rows {
		name, err := a.askDefault(fmt.Sprintf("%s %d name", kind, i+1), rows[i].Name)
		if err != nil {
			return nil, err
		}
		rows[i].Name = name

		path, err := a.ask(fmt.Sprintf("%s %d image path (blank to skip)", kind, i+1))
		if err != nil {
			return nil, err
		}
		if path != "" {
			p, err := loadPhoto(path, "")
			if err != nil {
				return nil, err
			}
			rows[i].Image = &p
		}
	}
	return rows, nil
}
