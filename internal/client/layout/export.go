package layout

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ExportGeoJSON renders the current level as a FeatureCollection with one
// point feature per icon. The building and level are foreign members of the
// collection; its bbox covers the icons, or the visible region when there
// are none.
func (e *Editor) ExportGeoJSON() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasLevel {
		return nil, ErrNoContext
	}

	fc := geojson.NewFeatureCollection()
	mp := make(orb.MultiPoint, 0, len(e.icons))
	for _, ic := range e.icons {
		f := geojson.NewFeature(ic.Location)
		f.Properties["ref"] = ic.Ref.String()
		f.Properties["icon_id"] = ic.IconID.String()
		f.Properties["category"] = ic.Category
		f.Properties["label"] = ic.Label
		f.Properties["image_url"] = ic.ImageURL
		f.Properties["hidden"] = e.hidden[ic.Category]
		fc.Append(f)
		mp = append(mp, ic.Location)
	}

	bound := e.region.Bound()
	if len(mp) > 0 {
		bound = mp.Bound()
	}
	fc.BBox = geojson.NewBBox(bound)
	fc.ExtraMembers = geojson.Properties{
		"building_id":   e.building.ID.String(),
		"building_name": e.building.Name,
		"level_kind":    string(e.level.Kind),
		"level_id":      e.level.ID.String(),
		"level_name":    e.level.Label(),
	}

	return json.MarshalIndent(fc, "", "  ")
}
