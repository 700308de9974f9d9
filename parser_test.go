package vatspy

import (
	"strings"
	"testing"
)

func TestParseDat_SectionsAndComments(t *testing.T) {
	input := strings.Join([]string{
		"; header comment",
		"",
		"[Countries]",
		"Italy|LI|Radar",
		"; inline comment",
		"Italy|LO|Radar",
		"[Airports]",
		"EGLL|London Heathrow|51.4706|-0.461941|LHR|EGTT|0",
		"[FIRs]",
		"EGTT|London|EGTT|EGTT",
		"[UIRs]",
		"EUR-W|Western European|LFFF,EGTT",
	}, "\n")

	recs, err := parseDat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseDat() error: %v", err)
	}
	if len(recs.countries) != 2 {
		t.Errorf("countries = %d, want 2", len(recs.countries))
	}
	if len(recs.airports) != 1 {
		t.Errorf("airports = %d, want 1", len(recs.airports))
	}
	if len(recs.firs) != 1 {
		t.Errorf("firs = %d, want 1", len(recs.firs))
	}
	if len(recs.uirs) != 1 {
		t.Errorf("uirs = %d, want 1", len(recs.uirs))
	}
}

func TestParseDat_UnknownSectionSkipped(t *testing.T) {
	input := strings.Join([]string{
		"[Fixes]",
		"SOMEFIX|12.3|45.6",
		"[Countries]",
		"Italy|LI|Radar",
	}, "\n")

	recs, err := parseDat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseDat() error: %v", err)
	}
	if len(recs.countries) != 1 {
		t.Errorf("countries = %d, want 1", len(recs.countries))
	}
	if len(recs.airports)+len(recs.firs)+len(recs.uirs) != 0 {
		t.Error("unknown section produced records")
	}
}

func TestParseDat_RowsBeforeFirstSectionIgnored(t *testing.T) {
	input := "Italy|LI|Radar\n[Countries]\nFrance|LF|\n"

	recs, err := parseDat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseDat() error: %v", err)
	}
	if len(recs.countries) != 1 || recs.countries[0].name != "France" {
		t.Errorf("countries = %+v, want only France", recs.countries)
	}
}

func TestParseDat_IDLTerminates(t *testing.T) {
	input := strings.Join([]string{
		"[Countries]",
		"Italy|LI|Radar",
		"[IDL]",
		"180|90|180|-90",
		"[Countries]",
		"France|LF|",
	}, "\n")

	recs, err := parseDat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseDat() error: %v", err)
	}
	if len(recs.countries) != 1 {
		t.Errorf("countries = %d, want 1 (parse should stop at [IDL])", len(recs.countries))
	}
}

func TestParseCountryRow(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  countryRow
		valid bool
	}{
		{
			name:  "single code",
			line:  "Italy|LI|Radar",
			want:  countryRow{name: "Italy", codes: []string{"LI"}, radarName: "Radar"},
			valid: true,
		},
		{
			name:  "comma separated alias codes",
			line:  "Italy|LI,LO|Radar",
			want:  countryRow{name: "Italy", codes: []string{"LI", "LO"}, radarName: "Radar"},
			valid: true,
		},
		{
			name:  "radar name defaults to Center",
			line:  "France|LF|",
			want:  countryRow{name: "France", codes: []string{"LF"}, radarName: "Center"},
			valid: true,
		},
		{name: "too few fields", line: "Italy|LI", valid: false},
		{name: "too many fields", line: "Italy|LI|Radar|extra", valid: false},
		{name: "empty codes", line: "Italy||Radar", valid: false},
		{name: "empty name", line: "|LI|Radar", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := parseCountryRow(tt.line)
			if ok != tt.valid {
				t.Fatalf("parseCountryRow(%q) ok = %v, want %v", tt.line, ok, tt.valid)
			}
			if !tt.valid {
				return
			}
			if row.name != tt.want.name || row.radarName != tt.want.radarName {
				t.Errorf("parseCountryRow(%q) = %+v, want %+v", tt.line, row, tt.want)
			}
			if len(row.codes) != len(tt.want.codes) {
				t.Fatalf("codes = %v, want %v", row.codes, tt.want.codes)
			}
			for i := range row.codes {
				if row.codes[i] != tt.want.codes[i] {
					t.Errorf("codes = %v, want %v", row.codes, tt.want.codes)
				}
			}
		})
	}
}

func TestParseAirportRow(t *testing.T) {
	row, ok := parseAirportRow("EGLL|London Heathrow|51.4706|-0.461941|LHR|EGTT|0")
	if !ok {
		t.Fatal("valid airport row rejected")
	}
	if row.icao != "EGLL" || row.iata != "LHR" || row.firID != "EGTT" || row.pseudo {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.lat != 51.4706 || row.lng != -0.461941 {
		t.Errorf("coords = %v,%v", row.lat, row.lng)
	}

	if _, ok := parseAirportRow("EGLL|Heathrow|north|west|LHR|EGTT|0"); ok {
		t.Error("row with unparseable coordinates accepted")
	}
	if _, ok := parseAirportRow("EGLL|Heathrow|51.47"); ok {
		t.Error("row with wrong field count accepted")
	}

	pseudo, ok := parseAirportRow("EGTT-A|London Area|51.0|-1.0||EGTT|1")
	if !ok {
		t.Fatal("pseudo airport row rejected")
	}
	if !pseudo.pseudo || pseudo.iata != "" {
		t.Errorf("unexpected pseudo row: %+v", pseudo)
	}
}

func TestParseFIRRow(t *testing.T) {
	row, ok := parseFIRRow("EGTT|London|EGTT|EGTT-B")
	if !ok || row.boundaryID != "EGTT-B" {
		t.Errorf("four-field row: ok=%v row=%+v", ok, row)
	}

	row, ok = parseFIRRow("EGGX|Shanwick Oceanic|EGGX")
	if !ok || row.boundaryID != "" {
		t.Errorf("three-field row: ok=%v row=%+v", ok, row)
	}

	row, ok = parseFIRRow("LIRR|Rome|LIRR|")
	if !ok || row.boundaryID != "" {
		t.Errorf("empty boundary id: ok=%v row=%+v", ok, row)
	}

	if _, ok := parseFIRRow("EGTT|London"); ok {
		t.Error("two-field row accepted")
	}
	if _, ok := parseFIRRow("EGTT|London|EGTT|EGTT|extra"); ok {
		t.Error("five-field row accepted")
	}
}

func TestParseUIRRow(t *testing.T) {
	row, ok := parseUIRRow("EUR-W|Western European|LFFF, EGTT,")
	if !ok {
		t.Fatal("valid UIR row rejected")
	}
	if len(row.firIDs) != 2 || row.firIDs[0] != "LFFF" || row.firIDs[1] != "EGTT" {
		t.Errorf("firIDs = %v", row.firIDs)
	}

	if _, ok := parseUIRRow("EUR-W|Western European"); ok {
		t.Error("two-field row accepted")
	}
}
