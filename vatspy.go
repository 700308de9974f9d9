// Package vatspy loads the VATSpy reference dataset (countries, airports,
// flight information regions and their boundaries) into immutable in-memory
// lookup maps keyed by country code, airport ICAO and FIR ICAO.
package vatspy

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang/geo/s2"
)

// Default upstream locations of the dataset files.
const (
	DefaultDataURL       = "https://raw.githubusercontent.com/vatsimnetwork/vatspy-data-project/master/VATSpy.dat"
	DefaultBoundariesURL = "https://raw.githubusercontent.com/vatsimnetwork/vatspy-data-project/master/Boundaries.geojson"
)

// Config contains configuration options for dataset loading.
type Config struct {
	DataPath       string        // Local path or http(s) URL of the data file
	BoundariesPath string        // Local path or http(s) URL of the boundaries file
	Client         *http.Client  // HTTP client used for remote sources
	Cache          *FetchCache   // Optional raw-content cache for remote sources
}

// Option is a functional option for configuring dataset loading.
type Option func(*Config)

// WithDataPath sets the location of the data file. Both local paths and
// http(s) URLs are accepted.
func WithDataPath(path string) Option {
	return func(c *Config) {
		c.DataPath = path
	}
}

// WithBoundariesPath sets the location of the boundaries file. Both local
// paths and http(s) URLs are accepted.
func WithBoundariesPath(path string) Option {
	return func(c *Config) {
		c.BoundariesPath = path
	}
}

// WithHTTPClient sets the HTTP client used to fetch remote sources.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithFetchCache attaches a cache of raw fetched content. When the cache
// already holds an entry for a source URL, the download is skipped.
func WithFetchCache(cache *FetchCache) Option {
	return func(c *Config) {
		c.Cache = cache
	}
}

// defaultHTTPClient is shared across constructions that don't supply
// their own client.
var defaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

func defaultConfig() *Config {
	return &Config{
		DataPath:       DefaultDataURL,
		BoundariesPath: DefaultBoundariesURL,
		Client:         defaultHTTPClient,
	}
}

// VatspyData is the loaded dataset: three independent lookup maps plus the
// UIR groupings. Every alias code of a country points at the same Country
// record. The maps are built once by New and must not be mutated.
type VatspyData struct {
	Countries map[string]*Country
	Airports  map[string]*Airport
	FIRs      map[string]*FIR
	UIRs      map[string]*UIR

	cellIndex map[s2.CellID][]string // airport ICAOs per s2 cell
}

// New loads both dataset files, parses them and builds the lookup maps.
// A missing or unreadable file, or a boundaries file that is not a valid
// feature collection, fails construction; no partial object is returned.
// Individual malformed rows and features are dropped, matching the known
// state of the upstream data.
func New(opts ...Option) (*VatspyData, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	boundsRaw, err := loadSource(cfg, cfg.BoundariesPath)
	if err != nil {
		return nil, fmt.Errorf("loading boundaries: %w", err)
	}
	geoMap, err := parseBoundaries(boundsRaw)
	if err != nil {
		return nil, err
	}

	dataRaw, err := loadSource(cfg, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("loading data file: %w", err)
	}
	recs, err := parseDat(bytes.NewReader(dataRaw))
	if err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}

	v := &VatspyData{
		Countries: make(map[string]*Country),
		Airports:  make(map[string]*Airport, len(recs.airports)),
		FIRs:      make(map[string]*FIR, len(recs.firs)),
		UIRs:      make(map[string]*UIR, len(recs.uirs)),
	}
	v.buildIndexes(recs, geoMap)
	v.buildCellIndex()
	return v, nil
}

// buildIndexes consumes the parsed record streams and populates the lookup
// maps. Countries aggregate alias codes by name; airports, FIRs and UIRs
// are keyed by ICAO with last row winning on duplicates. A FIR picks up
// geometry by its boundary id, falling back to its own ICAO.
func (v *VatspyData) buildIndexes(recs *datRecords, geoMap map[string]*GeoItem) {
	byName := make(map[string]*Country)
	var order []*Country
	for _, row := range recs.countries {
		country, ok := byName[row.name]
		if !ok {
			country = &Country{Name: row.name, RadarName: row.radarName}
			byName[row.name] = country
			order = append(order, country)
		}
		country.Codes = append(country.Codes, row.codes...)
	}
	for _, country := range order {
		for _, code := range country.Codes {
			v.Countries[code] = country
		}
	}

	for _, row := range recs.airports {
		v.Airports[row.icao] = &Airport{
			ICAO:   row.icao,
			Name:   row.name,
			Lat:    row.lat,
			Lng:    row.lng,
			IATA:   row.iata,
			FIRID:  row.firID,
			Pseudo: row.pseudo,
		}
	}

	for _, row := range recs.firs {
		boundaryID := row.boundaryID
		if boundaryID == "" {
			boundaryID = row.icao
		}
		v.FIRs[row.icao] = &FIR{
			ICAO:           row.icao,
			Name:           row.name,
			CallsignPrefix: row.prefix,
			Geom:           geoMap[boundaryID],
		}
	}

	for _, row := range recs.uirs {
		v.UIRs[row.icao] = &UIR{
			ICAO:   row.icao,
			Name:   row.name,
			FIRIDs: row.firIDs,
		}
	}
}

// loadSource returns the raw content of a local path or http(s) URL,
// consulting the fetch cache for remote sources when one is configured.
func loadSource(cfg *Config, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}

	if cfg.Cache != nil {
		if data, ok := cfg.Cache.Get(path); ok {
			return data, nil
		}
	}

	client := cfg.Client
	if client == nil {
		client = defaultHTTPClient
	}
	data, err := fetchURL(client, path)
	if err != nil {
		return nil, err
	}
	if cfg.Cache != nil {
		cfg.Cache.Put(path, data)
	}
	return data, nil
}

func fetchURL(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of %s: %w", url, err)
	}
	return data, nil
}
