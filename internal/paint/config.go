package paint

import (
	"image/color"
	"strconv"
)

const (
	// MinDiameter and MaxDiameter bound the brush slider.
	MinDiameter = 1
	MaxDiameter = 100
)

// Config controls the surface dimensions and brush defaults.
type Config struct {
	Width    int
	Height   int
	Diameter int

	// Highlight is the colour stamped onto the visual layer.
	Highlight color.RGBA
}

// DefaultConfig returns the standard 512x512 configuration.
func DefaultConfig() Config {
	return Config{
		Width:     512,
		Height:    512,
		Diameter:  50,
		Highlight: color.RGBA{R: 128, G: 32, B: 80, A: 128},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["diameter"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Diameter = clampDiameter(parsed)
		}
	}
	return c
}

func clampDiameter(d int) int {
	if d < MinDiameter {
		return MinDiameter
	}
	if d > MaxDiameter {
		return MaxDiameter
	}
	return d
}
