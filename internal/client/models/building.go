// Package models defines the data shapes exchanged with the remote API and
// used by the editor, caches and CLI.
package models

import (
	"fmt"

	"github.com/paulmach/orb"
)

// LevelKind tells floors and basements apart.
type LevelKind string

const (
	LevelFloor    LevelKind = "floor"
	LevelBasement LevelKind = "basement"
)

// ParseLevelKind accepts "floor"/"f" and "basement"/"b".
func ParseLevelKind(s string) (LevelKind, error) {
	switch s {
	case "floor", "f":
		return LevelFloor, nil
	case "basement", "b":
		return LevelBasement, nil
	}
	return "", fmt.Errorf("unknown level kind %q", s)
}

type Building struct {
	ID            ID         `json:"id"`
	Name          string     `json:"building_name"`
	Address       string     `json:"building_address"`
	Zipcode       FlexString `json:"zipcode"`
	SuiteNumber   FlexString `json:"suite_number"`
	TotalFloor    FlexString `json:"total_floor"`
	TotalBasement FlexString `json:"total_basement"`
	Lat           FlexFloat  `json:"lat"`
	Lon           FlexFloat  `json:"lon"`
	Status        FlexString `json:"status"`
	Floors        []Floor    `json:"floors"`
	Basements     []Basement `json:"basements"`
}

// Location returns the building coordinate; ok is false when either part is missing.
func (b Building) Location() (orb.Point, bool) {
	if !b.Lat.Valid || !b.Lon.Valid {
		return orb.Point{}, false
	}
	return orb.Point{b.Lon.Value, b.Lat.Value}, true
}

type Floor struct {
	ID        ID         `json:"id"`
	Number    FlexString `json:"floor_number"`
	Name      string     `json:"floor_name"`
	Image     string     `json:"floor_image"`
	Latitude  FlexFloat  `json:"latitude"`
	Longitude FlexFloat  `json:"longitude"`
}

type Basement struct {
	ID        ID         `json:"id"`
	Number    FlexString `json:"basement_number"`
	Name      string     `json:"basement_name"`
	Image     string     `json:"basement_image"`
	Latitude  FlexFloat  `json:"latitude"`
	Longitude FlexFloat  `json:"longitude"`
}

// Level is a floor or basement seen through a common shape. It is what the
// layout editor calls a context.
type Level struct {
	Kind        LevelKind
	ID          ID
	Number      string
	Name        string
	Location    orb.Point
	HasLocation bool
}

// Label is a human-readable level name.
func (l Level) Label() string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Number != "":
		return fmt.Sprintf("%s %s", l.Kind, l.Number)
	default:
		return fmt.Sprintf("%s %s", l.Kind, l.ID)
	}
}

func (f Floor) Level() Level {
	l := Level{Kind: LevelFloor, ID: f.ID, Number: f.Number.String(), Name: f.Name}
	if f.Latitude.Valid && f.Longitude.Valid {
		l.Location, l.HasLocation = orb.Point{f.Longitude.Value, f.Latitude.Value}, true
	}
	return l
}

func (b Basement) Level() Level {
	l := Level{Kind: LevelBasement, ID: b.ID, Number: b.Number.String(), Name: b.Name}
	if b.Latitude.Valid && b.Longitude.Valid {
		l.Location, l.HasLocation = orb.Point{b.Longitude.Value, b.Latitude.Value}, true
	}
	return l
}

// Levels lists floors first, then basements, in server order.
func (b Building) Levels() []Level {
	out := make([]Level, 0, len(b.Floors)+len(b.Basements))
	for _, f := range b.Floors {
		out = append(out, f.Level())
	}
	for _, bs := range b.Basements {
		out = append(out, bs.Level())
	}
	return out
}

// Level finds a floor or basement by kind and id.
func (b Building) Level(kind LevelKind, id ID) (Level, bool) {
	switch kind {
	case LevelFloor:
		for _, f := range b.Floors {
			if f.ID == id {
				return f.Level(), true
			}
		}
	case LevelBasement:
		for _, bs := range b.Basements {
			if bs.ID == id {
				return bs.Level(), true
			}
		}
	}
	return Level{}, false
}
