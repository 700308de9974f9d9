package vatspy

import (
	"math"
	"sort"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/agnivade/levenshtein"
	"github.com/golang/geo/s2"
)

// airportCellLevel is the s2 cell level of the airport spatial index.
// Level 7 cells are roughly 80km across, so searching a cell and its
// neighbors covers the distances that separate real-world airports.
const airportCellLevel = 7

// maxSearchDistance caps the edit distance accepted by SearchAirports.
const maxSearchDistance = 3

// buildCellIndex indexes airports by s2 cell for NearestAirport.
func (v *VatspyData) buildCellIndex() {
	v.cellIndex = make(map[s2.CellID][]string)
	for icao, ap := range v.Airports {
		ll := s2.LatLngFromDegrees(ap.Lat, ap.Lng)
		cell := s2.CellIDFromLatLng(ll).Parent(airportCellLevel)
		v.cellIndex[cell] = append(v.cellIndex[cell], icao)
	}
}

// cellAndNeighbors returns the given cell plus its edge and corner neighbors.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	for i := 0; i < 4; i++ {
		cells = append(cells, edgeNeighbors[i])
	}

	seen := make(map[s2.CellID]bool)
	for _, c := range cells {
		seen[c] = true
	}
	for i := 0; i < 4; i++ {
		for _, corner := range edgeNeighbors[i].EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}

// FIRsAt returns the FIRs whose boundary contains the given point, sorted
// by ICAO. Overlaps are real in the upstream data (oceanic regions overlap
// domestic ones), so more than one FIR may match.
func (v *VatspyData) FIRsAt(lat, lng float64) []*FIR {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return nil
	}

	point := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	var matches []*FIR
	for _, fir := range v.FIRs {
		if fir.Geom != nil && fir.Geom.Geom.ContainsPoint(point) {
			matches = append(matches, fir)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ICAO < matches[j].ICAO
	})
	return matches
}

// NearestAirport returns the airport closest to the given point, searching
// the point's s2 cell and its neighbors. The second return value is false
// when no airport lies within that neighborhood.
func (v *VatspyData) NearestAirport(lat, lng float64) (*Airport, bool) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return nil, false
	}

	queryLL := s2.LatLngFromDegrees(lat, lng)
	queryCell := s2.CellIDFromLatLng(queryLL).Parent(airportCellLevel)

	var best *Airport
	bestDist := math.Inf(1)
	for _, cell := range cellAndNeighbors(queryCell) {
		for _, icao := range v.cellIndex[cell] {
			ap := v.Airports[icao]
			dist := float64(queryLL.Distance(s2.LatLngFromDegrees(ap.Lat, ap.Lng)))
			if dist < bestDist || (dist == bestDist && best != nil && ap.ICAO < best.ICAO) {
				best = ap
				bestDist = dist
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// SearchAirports returns the airports whose ICAO or name matches the query
// within the given edit distance, sorted by ICAO. A maxDist of 0 means
// exact case-insensitive matching; values above 3 are capped.
func (v *VatspyData) SearchAirports(query string, maxDist int) []*Airport {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if maxDist > maxSearchDistance {
		maxDist = maxSearchDistance
	}

	var matches []*Airport
	for _, ap := range v.Airports {
		if matchesQuery(query, ap.ICAO, maxDist) || matchesQuery(query, ap.Name, maxDist) {
			matches = append(matches, ap)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ICAO < matches[j].ICAO
	})
	return matches
}

func matchesQuery(query, candidate string, maxDist int) bool {
	if maxDist == 0 {
		return strings.EqualFold(query, candidate)
	}
	dist := levenshtein.ComputeDistance(
		strings.ToLower(query),
		strings.ToLower(candidate),
	)
	return dist <= maxDist
}

// Geohash returns the geohash of the airport's position at the given
// precision (number of characters, 1..12).
func (a *Airport) Geohash(precision int) string {
	return geohash.EncodeWithPrecision(a.Lat, a.Lng, precision)
}
