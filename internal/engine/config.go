package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HL                   string        // interface language sent as hl=
	GL                   string        // region sent as gl=
	FetchTimeout         time.Duration // per-page fetch budget
	FetchRPS             float64       // outbound page fetches per second, 0 = unlimited
	FetchBurst           int
	FetchMaxBytes        int64
	MaxDescriptionChars  int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	DumpDSN              string // sqlite path or postgres:// URL; empty disables dumps
	DumpMaxBytes         int
	InitialDataMarkers   []string // tried before the built-in ytInitialData markers
	PlayerMarkers        []string // tried before the built-in ytInitialPlayerResponse markers
	HTTPClient           *http.Client
}

// Defaults applied by Init for zero fields.
const (
	DefaultHL            = "en"
	DefaultGL            = "US"
	DefaultFetchTimeout  = 45 * time.Second
	DefaultFetchMaxBytes = 8 << 20
	DefaultDumpMaxBytes  = 2 << 20
)

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HL == "" {
		c.HL = DefaultHL
	}
	if c.GL == "" {
		c.GL = DefaultGL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.FetchMaxBytes <= 0 {
		c.FetchMaxBytes = DefaultFetchMaxBytes
	}
	if c.DumpMaxBytes <= 0 {
		c.DumpMaxBytes = DefaultDumpMaxBytes
	}
	if c.HTTPClient == nil {
		c.HTTPClient = newFetchClient()
	}
	cfg = c
	Cfg = &cfg
	initLimiter(c.FetchRPS, c.FetchBurst)
}
