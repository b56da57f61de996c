package models

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDecoding(t *testing.T) {
	var v struct {
		A ID         `json:"a"`
		B ID         `json:"b"`
		C FlexString `json:"c"`
		D FlexFloat  `json:"d"`
		E FlexFloat  `json:"e"`
		F FlexFloat  `json:"f"`
		G FlexFloat  `json:"g"`
	}
	err := json.Unmarshal([]byte(`{"a":12,"b":"34","c":90210,"d":"12.5","e":"","f":null,"g":-3.25}`), &v)
	require.NoError(t, err)

	assert.Equal(t, ID("12"), v.A)
	assert.Equal(t, ID("34"), v.B)
	assert.Equal(t, FlexString("90210"), v.C)
	assert.Equal(t, Float(12.5), v.D)
	assert.False(t, v.E.Valid)
	assert.False(t, v.F.Valid)
	assert.Equal(t, Float(-3.25), v.G)

	var bad FlexFloat
	require.NoError(t, json.Unmarshal([]byte(`"north"`), &bad))
	assert.False(t, bad.Valid)
	assert.Equal(t, "north", bad.Raw)
}

func TestDragIcons_BadCoordinateKeepsList(t *testing.T) {
	var icons []DragIcon
	err := json.Unmarshal([]byte(`[
		{"drag_icon_id": 1, "icon_id": 3, "latitude": "12.3", "longitude": 56.7},
		{"drag_icon_id": 2, "icon_id": 3, "latitude": "n/a", "longitude": "56.7"},
		{"drag_icon_id": 3, "icon_id": 3, "latitude": null, "longitude": ""}
	]`), &icons)
	require.NoError(t, err)
	require.Len(t, icons, 3)

	assert.Equal(t, Float(12.3), icons[0].Latitude)
	assert.Equal(t, FlexFloat{Raw: "n/a"}, icons[1].Latitude)
	assert.True(t, icons[1].Longitude.Valid)
	assert.False(t, icons[2].Latitude.Valid)
	assert.False(t, icons[2].Longitude.Valid)
}

func TestFlexFloat_Marshal(t *testing.T) {
	b, err := json.Marshal([]FlexFloat{Float(1.5), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,null]`, string(b))
}

const buildingJSON = `{
  "id": 7, "building_name": "Depot", "building_address": "1 Main St",
  "zipcode": "10001", "lat": "12.34", "lon": 56.78,
  "floors": [
    {"id": 1, "floor_number": "1", "floor_name": "Ground"},
    {"id": 2, "floor_number": 2, "floor_name": "", "latitude": "12.5", "longitude": "56.5"}
  ],
  "basements": [{"id": 9, "basement_number": 1, "basement_name": "B1"}]
}`

func TestBuilding_DecodeAndLevels(t *testing.T) {
	var b Building
	require.NoError(t, json.Unmarshal([]byte(buildingJSON), &b))

	p, ok := b.Location()
	require.True(t, ok)
	assert.Equal(t, orb.Point{56.78, 12.34}, p)

	levels := b.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, LevelFloor, levels[0].Kind)
	assert.False(t, levels[0].HasLocation)
	assert.True(t, levels[1].HasLocation)
	assert.Equal(t, orb.Point{56.5, 12.5}, levels[1].Location)
	assert.Equal(t, "floor 2", levels[1].Label())
	assert.Equal(t, LevelBasement, levels[2].Kind)
	assert.Equal(t, "B1", levels[2].Label())

	l, ok := b.Level(LevelBasement, "9")
	require.True(t, ok)
	assert.Equal(t, "B1", l.Name)

	_, ok = b.Level(LevelBasement, "1")
	assert.False(t, ok, "ids are scoped by kind")
}

func TestBuilding_NoLocation(t *testing.T) {
	var b Building
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"lat":"","lon":null}`), &b))
	_, ok := b.Location()
	assert.False(t, ok)
}

func TestParseLevelKind(t *testing.T) {
	k, err := ParseLevelKind("b")
	require.NoError(t, err)
	assert.Equal(t, LevelBasement, k)

	k, err = ParseLevelKind("floor")
	require.NoError(t, err)
	assert.Equal(t, LevelFloor, k)

	_, err = ParseLevelKind("attic")
	require.Error(t, err)
}

func TestFAQCategories_ArrayAndObject(t *testing.T) {
	var arr FAQCategories
	require.NoError(t, json.Unmarshal([]byte(`[{"category_name":"General","faqs":[{"faq_id":1,"question":"Q","answer":"A"}]}]`), &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "General", arr[0].Name)
	assert.Equal(t, ID("1"), arr[0].FAQs[0].ID)

	var obj FAQCategories
	require.NoError(t, json.Unmarshal([]byte(`{
	  "safety": {"category_name":"Safety","faqs":[]},
	  "account": {"faqs":[{"faq_id":"3","question":"How?","answer":"Like so"}]}
	}`), &obj))
	require.Len(t, obj, 2)
	assert.Equal(t, "account", obj[0].Name, "missing name falls back to key")
	assert.Equal(t, "Safety", obj[1].Name)
}

func TestLevelGallery_Items(t *testing.T) {
	g := LevelGallery{Images: []string{"a.jpg", "b.jpg", "c.jpg"}, Messages: []string{"front", ""}}
	assert.Equal(t, []GalleryImage{
		{URL: "a.jpg", Caption: "front"},
		{URL: "b.jpg", Caption: NoCaption},
		{URL: "c.jpg", Caption: NoCaption},
	}, g.Items())
}

func TestFormFromBuilding_And_Apply(t *testing.T) {
	var b Building
	require.NoError(t, json.Unmarshal([]byte(buildingJSON), &b))

	f := FormFromBuilding(b)
	assert.True(t, f.Editing)
	assert.Equal(t, ID("7"), f.ID)
	assert.Equal(t, 2, f.TotalFloors)
	assert.Equal(t, 1, f.TotalBasements)
	require.NotNil(t, f.Lat)
	assert.Equal(t, 12.34, *f.Lat)
	assert.Equal(t, ID("2"), f.Floors[1].ID)

	f.Apply(Place{Formatted: "2 Side St", Location: orb.Point{-0.1, 51.5}, Postcode: "EC1"})
	assert.Equal(t, "2 Side St", f.Address)
	assert.Equal(t, 51.5, *f.Lat)
	assert.Equal(t, -0.1, *f.Lon)
	assert.Equal(t, "EC1", f.Zipcode)
}

func TestCatalogIcon_HasImage(t *testing.T) {
	assert.True(t, CatalogIcon{ImageURL: "https://x/icon.png"}.HasImage())
	assert.False(t, CatalogIcon{ImageURL: "  "}.HasImage())
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "12.3401", FormatCoord(12.3401))
	assert.Equal(t, "10", FormatCoord(10))
}
