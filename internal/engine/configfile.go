package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// FileConfig is the JSON5 config file. Zero fields leave the env value alone.
type FileConfig struct {
	HL                  string  `json:"hl"`
	GL                  string  `json:"gl"`
	FetchTimeout        string  `json:"fetchTimeout"` // Go duration, e.g. "30s"
	FetchRPS            float64 `json:"fetchRps"`
	FetchBurst          int     `json:"fetchBurst"`
	MaxDescriptionChars int     `json:"maxDescriptionChars"`
	DumpDSN             string  `json:"dumpDsn"`
	DumpMaxBytes        int     `json:"dumpMaxBytes"`
	Markers             Markers `json:"markers"`
}

// Markers are extra assignment spellings tried before the built-in ones.
type Markers struct {
	InitialData []string `json:"initialData"`
	Player      []string `json:"player"`
}

// ReadConfigFile reads name and then <name>.local.<ext>, the local file
// overriding. os.ErrNotExist is returned only when neither exists.
func ReadConfigFile(name string) (FileConfig, error) {
	var out FileConfig
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	local := localConfigName(name)
	overrideData, err := os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(overrideData) > 0 {
		var override FileConfig
		if err := json5.Unmarshal(overrideData, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", local, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("config: merged local overrides", slog.String("local", local))
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localConfigName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ApplyTo overlays the file values onto c.
func (fc FileConfig) ApplyTo(c *Config) error {
	overlay := Config{
		HL:                  fc.HL,
		GL:                  fc.GL,
		FetchRPS:            fc.FetchRPS,
		FetchBurst:          fc.FetchBurst,
		MaxDescriptionChars: fc.MaxDescriptionChars,
		DumpDSN:             fc.DumpDSN,
		DumpMaxBytes:        fc.DumpMaxBytes,
		InitialDataMarkers:  fc.Markers.InitialData,
		PlayerMarkers:       fc.Markers.Player,
	}
	if fc.FetchTimeout != "" {
		d, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("fetchTimeout: %w", err)
		}
		overlay.FetchTimeout = d
	}
	return mergo.Merge(c, overlay, mergo.WithOverride)
}
