package vatspy

import (
	"github.com/golang/geo/s2"
)

// Country is a country entry from the [Countries] section. A country may be
// known by several alias codes; every alias resolves to the same record.
type Country struct {
	Name      string
	Codes     []string
	RadarName string
}

// Airport is an airport entry from the [Airports] section.
type Airport struct {
	ICAO   string
	Name   string
	Lat    float64
	Lng    float64
	IATA   string // empty when the airport has no IATA code
	FIRID  string
	Pseudo bool
}

// FIR is a flight information region from the [FIRs] section.
// Geom is nil when the boundaries file has no matching feature.
type FIR struct {
	ICAO           string
	Name           string
	CallsignPrefix string
	Geom           *GeoItem
}

// UIR is an upper information region, a named group of FIRs.
type UIR struct {
	ICAO   string
	Name   string
	FIRIDs []string
}

// GeoItemProperties is the property bag attached to a boundary feature.
type GeoItemProperties struct {
	ID       string
	Oceanic  bool
	LabelLon float64
	LabelLat float64
	Region   string
	Division string
}

// GeoItem is a FIR boundary: an s2 polygon plus the feature properties.
// It has no lifecycle of its own and is only reachable through the FIR
// it is attached to.
type GeoItem struct {
	Properties GeoItemProperties
	Geom       *s2.Polygon
}

// ContainsLatLng reports whether the boundary contains the given point.
func (g *GeoItem) ContainsLatLng(lat, lng float64) bool {
	if g == nil || g.Geom == nil {
		return false
	}
	return g.Geom.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng)))
}
