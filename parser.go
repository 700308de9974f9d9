package vatspy

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// parserState tracks which section of the data file is being read.
type parserState int

const (
	stateStarted parserState = iota
	stateCountries
	stateAirports
	stateFIRs
	stateUIRs
	stateSkip // inside an unrecognized section
	stateFinished
)

// Field counts per section. Upstream FIR rows may omit the trailing
// boundary id field.
const (
	countryFieldCount = 3
	airportFieldCount = 7
	firMinFieldCount  = 3
	firMaxFieldCount  = 4
	uirFieldCount     = 3
)

type countryRow struct {
	name      string
	codes     []string
	radarName string
}

type airportRow struct {
	icao   string
	name   string
	lat    float64
	lng    float64
	iata   string
	firID  string
	pseudo bool
}

type firRow struct {
	icao       string
	name       string
	prefix     string
	boundaryID string // empty when the row has no explicit boundary id
}

type uirRow struct {
	icao   string
	name   string
	firIDs []string
}

// datRecords holds the typed record streams produced by a single pass over
// the data file, in file order.
type datRecords struct {
	countries []countryRow
	airports  []airportRow
	firs      []firRow
	uirs      []uirRow
}

// sectionState maps a [Section] header to the parser state for its rows.
// Unknown sections are tolerated and their rows skipped; the IDL section
// marks the end of useful data.
func sectionState(name string) parserState {
	switch strings.ToLower(name) {
	case "countries":
		return stateCountries
	case "airports":
		return stateAirports
	case "firs":
		return stateFIRs
	case "uirs":
		return stateUIRs
	case "idl":
		return stateFinished
	default:
		return stateSkip
	}
}

// parseDat reads the section-delimited data file. Blank lines and lines
// starting with ";" are ignored. Rows that do not match their section's
// shape are dropped; upstream data is known to contain such rows.
func parseDat(r io.Reader) (*datRecords, error) {
	recs := &datRecords{}
	state := stateStarted

	scanner := bufio.NewScanner(r)
	for scanner.Scan() && state != stateFinished {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			state = sectionState(line[1 : len(line)-1])
			continue
		}

		switch state {
		case stateCountries:
			if row, ok := parseCountryRow(line); ok {
				recs.countries = append(recs.countries, row)
			}
		case stateAirports:
			if row, ok := parseAirportRow(line); ok {
				recs.airports = append(recs.airports, row)
			}
		case stateFIRs:
			if row, ok := parseFIRRow(line); ok {
				recs.firs = append(recs.firs, row)
			}
		case stateUIRs:
			if row, ok := parseUIRRow(line); ok {
				recs.uirs = append(recs.uirs, row)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// parseCountryRow parses "name|codes|radar_name". The codes field may carry
// several comma-separated alias codes; the radar name defaults to "Center".
func parseCountryRow(line string) (countryRow, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != countryFieldCount {
		return countryRow{}, false
	}

	var codes []string
	for _, code := range strings.Split(fields[1], ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	if fields[0] == "" || len(codes) == 0 {
		return countryRow{}, false
	}

	radar := strings.TrimSpace(fields[2])
	if radar == "" {
		radar = "Center"
	}
	return countryRow{name: fields[0], codes: codes, radarName: radar}, true
}

// parseAirportRow parses "icao|name|lat|lng|iata|fir_id|pseudo".
func parseAirportRow(line string) (airportRow, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != airportFieldCount || fields[0] == "" {
		return airportRow{}, false
	}

	lat, errLat := strconv.ParseFloat(fields[2], 64)
	lng, errLng := strconv.ParseFloat(fields[3], 64)
	if errLat != nil || errLng != nil {
		return airportRow{}, false
	}

	return airportRow{
		icao:   fields[0],
		name:   fields[1],
		lat:    lat,
		lng:    lng,
		iata:   fields[4],
		firID:  fields[5],
		pseudo: fields[6] == "1",
	}, true
}

// parseFIRRow parses "icao|name|callsign_prefix[|boundary_id]".
func parseFIRRow(line string) (firRow, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < firMinFieldCount || len(fields) > firMaxFieldCount || fields[0] == "" {
		return firRow{}, false
	}

	row := firRow{icao: fields[0], name: fields[1], prefix: fields[2]}
	if len(fields) == firMaxFieldCount {
		row.boundaryID = strings.TrimSpace(fields[3])
	}
	return row, true
}

// parseUIRRow parses "icao|name|fir1,fir2,...".
func parseUIRRow(line string) (uirRow, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != uirFieldCount || fields[0] == "" {
		return uirRow{}, false
	}

	var firIDs []string
	for _, id := range strings.Split(fields[2], ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			firIDs = append(firIDs, id)
		}
	}
	return uirRow{icao: fields[0], name: fields[1], firIDs: firIDs}, true
}
