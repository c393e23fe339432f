package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	widthHeightRe = regexp.MustCompile(`(?i)^(\d+)([wh])$`)
	percentRe     = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)%$`)
	exactRe       = regexp.MustCompile(`(?i)^(\d+)x(\d+)$`)
)

// SizeOverride resizes a MapConfig's output dimensions, parsed from the
// --size flag per the grammar in
// original_source/src/disson/cli.rs's SizeOverride::FromStr: "<n>w" or
// "<n>h" keep the configured aspect ratio while pinning one dimension,
// "<x>%" scales both dimensions, and "<w>x<h>" sets them exactly.
type SizeOverride struct {
	kind          sizeKind
	width, height uint32
	percent       float64
}

type sizeKind int

const (
	sizeWidth sizeKind = iota
	sizeHeight
	sizeExact
	sizePercent
)

// ParseSizeOverride parses the --size flag's value.
func ParseSizeOverride(s string) (SizeOverride, error) {
	if m := widthHeightRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return SizeOverride{}, fmt.Errorf("config: invalid number in size override %q: %w", s, err)
		}
		switch m[2] {
		case "w", "W":
			return SizeOverride{kind: sizeWidth, width: uint32(n)}, nil
		default:
			return SizeOverride{kind: sizeHeight, height: uint32(n)}, nil
		}
	}
	if m := percentRe.FindStringSubmatch(s); m != nil {
		p, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return SizeOverride{}, fmt.Errorf("config: invalid number in size override %q: %w", s, err)
		}
		return SizeOverride{kind: sizePercent, percent: p / 100}, nil
	}
	if m := exactRe.FindStringSubmatch(s); m != nil {
		w, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return SizeOverride{}, fmt.Errorf("config: invalid width in size override %q: %w", s, err)
		}
		h, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return SizeOverride{}, fmt.Errorf("config: invalid height in size override %q: %w", s, err)
		}
		return SizeOverride{kind: sizeExact, width: uint32(w), height: uint32(h)}, nil
	}
	return SizeOverride{}, fmt.Errorf("config: invalid size override %q, valid formats are <n>w, <n>h, <x>%%, or <w>x<h>", s)
}

// Apply resizes cfg in place according to the override, preserving aspect
// ratio for the Width/Height single-dimension forms.
func (o SizeOverride) Apply(cfg *MapConfig) error {
	switch o.kind {
	case sizeWidth:
		h := round(float64(o.width) * float64(cfg.Height) / float64(cfg.Width))
		if !isNormal(h) {
			return fmt.Errorf("config: couldn't calculate new map height for override")
		}
		cfg.Width = o.width
		cfg.Height = uint32(h)
	case sizeHeight:
		w := round(float64(o.height) * float64(cfg.Width) / float64(cfg.Height))
		if !isNormal(w) {
			return fmt.Errorf("config: couldn't calculate new map width for override")
		}
		cfg.Width = uint32(w)
		cfg.Height = o.height
	case sizeExact:
		cfg.Width = o.width
		cfg.Height = o.height
	case sizePercent:
		if o.percent < 1e-9 {
			return fmt.Errorf("config: invalid percentage for map size override, must be positive")
		}
		w := round(float64(cfg.Width) * o.percent)
		h := round(float64(cfg.Height) * o.percent)
		if !isNormal(w) || !isNormal(h) {
			return fmt.Errorf("config: couldn't calculate new map size for override")
		}
		cfg.Width = uint32(w)
		cfg.Height = uint32(h)
	}
	return nil
}

func round(v float64) float64 {
	return math.Round(v)
}

func isNormal(v float64) bool {
	return v > 0 && v < 1e18
}
