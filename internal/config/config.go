// Package config loads and serializes the JSONC generate-config file that
// drives a dissonance-map render, following the hujson.Standardize +
// encoding/json pattern in
// _examples/calvinalkan-agent-task/config.go's parseConfig, in place of
// original_source/src/disson/config.rs's RON-based GenerateConfig.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tailscale/hujson"

	"github.com/arlojs/dissonmap/internal/mapcompute"
)

// MapConfig is the user-facing, JSON-serializable shape of a map request —
// distinct from mapcompute.Config, which adds the derived view matrix and
// uses a cache-friendly binary encoding instead.
type MapConfig struct {
	Width         uint32  `json:"width"`
	Height        uint32  `json:"height"`
	BaseFrequency float64 `json:"base_frequency"`
	PitchCurve    string  `json:"pitch_curve"`
	OverlapCurve  string  `json:"overlap_curve"`
}

// FormatConfig is reserved for output-format options; empty today, kept so
// the config file's shape can grow without a breaking migration (mirrors
// original_source's FormatConfig, already empty there).
type FormatConfig struct{}

// GenerateConfig is the full contents of a generate-config file.
type GenerateConfig struct {
	Map    MapConfig    `json:"map"`
	Format FormatConfig `json:"format"`
}

// Default matches original_source/src/disson/config.rs's
// impl Default for GenerateConfig.
func Default() GenerateConfig {
	return GenerateConfig{
		Map: MapConfig{
			Width:         1000,
			Height:        1000,
			BaseFrequency: 440,
			PitchCurve:    "ErbRate",
			OverlapCurve:  "ExponentialDissonance",
		},
	}
}

// Load reads and parses a JSONC generate-config file.
func Load(path string) (GenerateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerateConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return GenerateConfig{}, fmt.Errorf("config: %s is not valid JSONC: %w", path, err)
	}
	var cfg GenerateConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return GenerateConfig{}, fmt.Errorf("config: %s is not valid JSON after standardization: %w", path, err)
	}
	return cfg, nil
}

// pitchCurves and overlapCurves name every valid value for their config
// field, matching the #[serde(rename = "...")] names in
// original_source/src/disson/disson/algo.rs.
var pitchCurves = map[string]mapcompute.PitchCurve{
	"Logarithmic": mapcompute.Edo,
	"ErbRate":     mapcompute.Erb,
}

var overlapCurves = map[string]mapcompute.OverlapCurve{
	"ExponentialDissonance": mapcompute.ExpDiss,
	"TrapezoidDissonance":   mapcompute.TrapDiss,
	"TriangleConsonance":    mapcompute.TriCons,
	"TrapezoidConsonance":   mapcompute.TrapCons,
}

// ToMapcomputeConfig resolves the JSON config's curve names and derives
// the render-ready mapcompute.Config. The view transform is always
// identity: no subcommand in this system currently exposes pan/zoom, so
// there is nothing yet to populate it with (an Open Question carried over
// from the original map.rs, where the matrix is also always
// Matrix3::identity()).
func (c MapConfig) ToMapcomputeConfig() (mapcompute.Config, error) {
	pitch, ok := pitchCurves[c.PitchCurve]
	if !ok {
		return mapcompute.Config{}, fmt.Errorf("config: unknown pitch_curve %q", c.PitchCurve)
	}
	overlap, ok := overlapCurves[c.OverlapCurve]
	if !ok {
		return mapcompute.Config{}, fmt.Errorf("config: unknown overlap_curve %q", c.OverlapCurve)
	}
	if c.Width == 0 || c.Height == 0 {
		return mapcompute.Config{}, fmt.Errorf("config: width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	return mapcompute.Config{
		Width:         c.Width,
		Height:        c.Height,
		View:          mapcompute.IdentityMatrix3,
		BaseFrequency: c.BaseFrequency,
		Pitch:         pitch,
		Overlap:       overlap,
	}, nil
}

// PrintDefaults writes the default config, pretty-printed, to w. A
// trailing newline is added only when w is an interactive terminal,
// matching original_source/src/disson/config.rs's atty::is check — no
// pack repo imports an isatty binding, so this checks the file mode bits
// directly via os.File.Stat, the same stdlib substitute pmtiles' own
// CLI output path uses implicitly whenever it writes straight to
// os.Stdout without forcing a trailing newline.
func PrintDefaults(w io.Writer) error {
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return fmt.Errorf("config: serializing defaults: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("config: writing defaults: %w", err)
	}
	if f, ok := w.(*os.File); ok && isInteractive(f) {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("config: writing trailing newline: %w", err)
		}
	}
	return nil
}

func isInteractive(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
