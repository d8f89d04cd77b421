package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"preview": {
		NumPoints: 50, GridResolution: 40, Sampler: "halton", Levels: 10,
		Renderer: "terminal", Output: DefaultOutput, Theme: DefaultTheme,
	},
	"default": {
		NumPoints: DefaultNumPoints, GridResolution: DefaultGridResolution, Sampler: "halton", Levels: DefaultLevels,
		Renderer: DefaultRenderer, Output: DefaultOutput, Theme: DefaultTheme,
	},
	"sparse": {
		NumPoints: 20, GridResolution: 60, Sampler: "halton", Levels: DefaultLevels,
		Renderer: DefaultRenderer, Output: DefaultOutput, Theme: DefaultTheme,
	},
	"dense": {
		NumPoints: 400, GridResolution: 150, Sampler: "halton", Polynomial: true, Levels: 30,
		Renderer: "svg", Output: DefaultOutput, Theme: DefaultTheme,
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	cfg := *p
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
