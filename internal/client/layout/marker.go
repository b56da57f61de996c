package layout

import "github.com/paulmach/orb"

const (
	// PlacementOffset separates a new icon from the previous one, in degrees
	// on both axes.
	PlacementOffset = 0.0001
	// DefaultDelta is the span of a freshly centred map region.
	DefaultDelta = 0.001

	baseMarkerSize = 40.0
	minMarkerSize  = 20.0
	maxMarkerSize  = 60.0
	minLabelWidth  = 60.0
	maxLabelWidth  = 120.0
)

// Region is the visible map window.
type Region struct {
	Center   orb.Point
	LatDelta float64
	LonDelta float64
}

func centred(p orb.Point) Region {
	return Region{Center: p, LatDelta: DefaultDelta, LonDelta: DefaultDelta}
}

func (r Region) Bound() orb.Bound {
	hl, ht := r.LonDelta/2, r.LatDelta/2
	return orb.Bound{
		Min: orb.Point{r.Center.Lon() - hl, r.Center.Lat() - ht},
		Max: orb.Point{r.Center.Lon() + hl, r.Center.Lat() + ht},
	}
}

// MarkerSize grows markers as the map zooms in, in pixels.
func MarkerSize(latDelta float64) float64 {
	if latDelta <= 0 {
		return maxMarkerSize
	}
	return clamp(baseMarkerSize*(DefaultDelta/latDelta), minMarkerSize, maxMarkerSize)
}

// LabelWidth is the label box width for a marker size, in pixels.
func LabelWidth(markerSize float64) float64 {
	return clamp(1.8*markerSize, minLabelWidth, maxLabelWidth)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
