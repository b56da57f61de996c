package models

import "github.com/paulmach/orb"

// BuildingForm backs both the add and the edit screen. Editing switches the
// required-field set: a new building needs name, address, zip code and
// suite number, an existing one only its address.
type BuildingForm struct {
	ID             ID         `validate:"required_if=Editing true"`
	Editing        bool       `validate:"-"`
	Name           string     `validate:"required_unless=Editing true"`
	Address        string     `validate:"required"`
	Zipcode        string     `validate:"required_unless=Editing true"`
	SuiteNumber    string     `validate:"required_unless=Editing true"`
	TotalFloors    int        `validate:"min=1"`
	TotalBasements int        `validate:"min=0"`
	Lat            *float64   `validate:"omitempty,latitude"`
	Lon            *float64   `validate:"omitempty,longitude"`
	Floors         []LevelRow `validate:"dive"`
	Basements      []LevelRow `validate:"dive"`
}

// LevelRow is one floor or basement line of the form. ID is empty for rows
// that do not exist on the server yet.
type LevelRow struct {
	ID    ID
	Name  string
	Image *Photo `validate:"-"`
}

// FormFromBuilding pre-fills an edit form.
func FormFromBuilding(b Building) BuildingForm {
	f := BuildingForm{
		ID:             b.ID,
		Editing:        true,
		Name:           b.Name,
		Address:        b.Address,
		Zipcode:        b.Zipcode.String(),
		SuiteNumber:    b.SuiteNumber.String(),
		TotalFloors:    len(b.Floors),
		TotalBasements: len(b.Basements),
	}
	if p, ok := b.Location(); ok {
		lat, lon := p.Lat(), p.Lon()
		f.Lat, f.Lon = &lat, &lon
	}
	for _, fl := range b.Floors {
		f.Floors = append(f.Floors, LevelRow{ID: fl.ID, Name: fl.Name})
	}
	for _, bs := range b.Basements {
		f.Basements = append(f.Basements, LevelRow{ID: bs.ID, Name: bs.Name})
	}
	return f
}

// Place is a geocoder result.
type Place struct {
	Formatted string
	Location  orb.Point
	Postcode  string
}

// Apply copies an address selection into the form.
func (f *BuildingForm) Apply(p Place) {
	lat, lon := p.Location.Lat(), p.Location.Lon()
	f.Address = p.Formatted
	f.Lat, f.Lon = &lat, &lon
	f.Zipcode = p.Postcode
}
