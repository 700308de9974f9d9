package vatspy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// featureCollection mirrors the top level of the boundaries GeoJSON file.
type featureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Type       string        `json:"type"`
	Properties geoProperties `json:"properties"`
	Geometry   geoGeometry   `json:"geometry"`
}

// geoProperties is the raw property bag of a boundary feature. Upstream
// encodes booleans as "0"/"1" and floats as strings, so the scalar fields
// use tolerant wrapper types.
type geoProperties struct {
	ID       string    `json:"id"`
	Oceanic  flexBool  `json:"oceanic"`
	LabelLon flexFloat `json:"label_lon"`
	LabelLat flexFloat `json:"label_lat"`
	Region   string    `json:"region"`
	Division string    `json:"division"`
}

// geoGeometry defers coordinate decoding until the geometry type is known.
type geoGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// flexBool decodes JSON booleans as well as the "0"/"1" string encoding
// used by the upstream dataset.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "1", "true", "True":
		*b = true
	default:
		*b = false
	}
	return nil
}

// flexFloat decodes JSON numbers as well as numeric strings. Values that
// cannot be parsed decode as zero rather than failing the feature.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// parseBoundaries decodes the boundaries file and returns a mapping from
// feature id to GeoItem. A file that is not a decodable feature collection
// is a fatal error; individual features with a missing id or malformed
// geometry are dropped. Duplicate ids overwrite, last feature wins.
func parseBoundaries(data []byte) (map[string]*GeoItem, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decoding boundaries file: %w", err)
	}

	geoMap := make(map[string]*GeoItem, len(fc.Features))
	for _, feature := range fc.Features {
		id := feature.Properties.ID
		if id == "" {
			continue
		}
		poly, err := polygonFromGeometry(feature.Geometry)
		if err != nil {
			continue
		}
		geoMap[id] = &GeoItem{
			Properties: GeoItemProperties{
				ID:       id,
				Oceanic:  bool(feature.Properties.Oceanic),
				LabelLon: float64(feature.Properties.LabelLon),
				LabelLat: float64(feature.Properties.LabelLat),
				Region:   feature.Properties.Region,
				Division: feature.Properties.Division,
			},
			Geom: poly,
		}
	}
	return geoMap, nil
}

// polygonFromGeometry converts a GeoJSON Polygon or MultiPolygon into an
// s2 polygon.
func polygonFromGeometry(geom geoGeometry) (*s2.Polygon, error) {
	switch geom.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(geom.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		return polygonFromRings(rings)
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(geom.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		var rings [][][]float64
		for _, p := range polys {
			rings = append(rings, p...)
		}
		return polygonFromRings(rings)
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geom.Type)
	}
}

// polygonFromRings builds an s2 polygon from GeoJSON coordinate rings.
// GeoJSON positions are [lng, lat] and rings repeat their first vertex;
// s2 loops are open, so the closing vertex is dropped.
func polygonFromRings(rings [][][]float64) (*s2.Polygon, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("no coordinate rings")
	}

	loops := make([]*s2.Loop, 0, len(rings))
	for _, ring := range rings {
		if len(ring) < 4 {
			return nil, fmt.Errorf("ring has %d positions, need at least 4", len(ring))
		}
		points := make([]s2.Point, 0, len(ring)-1)
		for _, pos := range ring[:len(ring)-1] {
			if len(pos) < 2 {
				return nil, fmt.Errorf("position has %d coordinates, need 2", len(pos))
			}
			points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(pos[1], pos[0])))
		}
		loop := s2.LoopFromPoints(points)
		loop.Normalize()
		loops = append(loops, loop)
	}
	return s2.PolygonFromLoops(loops), nil
}
