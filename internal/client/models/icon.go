package models

import (
	"strings"

	"github.com/paulmach/orb"
)

// IconCategory is one entry of the read-only icon catalog.
type IconCategory struct {
	Name  string        `json:"category_name"`
	Image string        `json:"category_image"`
	Icons []CatalogIcon `json:"icons"`
}

type CatalogIcon struct {
	ID       ID     `json:"icon_id"`
	ImageURL string `json:"icon_image_url"`
}

// HasImage reports whether the icon can be rendered.
func (c CatalogIcon) HasImage() bool {
	return strings.TrimSpace(c.ImageURL) != ""
}

// DragIcon is a placed icon as the server reports it.
type DragIcon struct {
	DragIconID   ID        `json:"drag_icon_id"`
	IconID       ID        `json:"icon_id"`
	Latitude     FlexFloat `json:"latitude"`
	Longitude    FlexFloat `json:"longitude"`
	ImageURL     string    `json:"icon_image_url"`
	CategoryName string    `json:"category_name"`
	Message      string    `json:"message"`
}

// IconPlacement is one row of a save request.
type IconPlacement struct {
	IconID   ID
	Location orb.Point
	Label    string
}

// LevelRef addresses a floor or basement of a building in API requests.
type LevelRef struct {
	BuildingID ID
	Kind       LevelKind
	LevelID    ID
}

// Photo is an image attachment ready for upload.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
	Caption     string
}
