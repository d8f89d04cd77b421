package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/san-kum/rbfviz/internal/sampling"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNumPoints      = 100
	DefaultGridResolution = 100
	DefaultSeed           = 0
	DefaultSampler        = "halton"
	DefaultLevels         = 20
	DefaultRenderer       = "window"
	DefaultOutput         = "interpolation.svg"
	DefaultTheme          = "cyberpunk"
)

// Renderers lists the accepted values of Config.Renderer.
var Renderers = []string{"window", "terminal", "svg"}

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid")
)

type Config struct {
	NumPoints      int    `yaml:"num_points"`
	GridResolution int    `yaml:"grid_resolution"`
	Seed           uint64 `yaml:"seed"`
	Sampler        string `yaml:"sampler"`
	Polynomial     bool   `yaml:"polynomial"`
	Levels         int    `yaml:"levels"`
	Renderer       string `yaml:"renderer"`
	Output         string `yaml:"output"`
	Theme          string `yaml:"theme"`
	Workers        int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		NumPoints:      DefaultNumPoints,
		GridResolution: DefaultGridResolution,
		Seed:           DefaultSeed,
		Sampler:        DefaultSampler,
		Levels:         DefaultLevels,
		Renderer:       DefaultRenderer,
		Output:         DefaultOutput,
		Theme:          DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS reads path from fs on top of DefaultConfig, so omitted keys keep
// their defaults.
func LoadFS(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := mergeYAML(data, path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Merge(path string, cfg *Config) error {
	return MergeFS(afero.NewOsFs(), path, cfg)
}

// MergeFS reads path from fs on top of cfg. Keys absent from the file leave
// the matching fields of cfg untouched.
func MergeFS(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	return mergeYAML(data, path, cfg)
}

func mergeYAML(data []byte, path string, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	return SaveFS(afero.NewOsFs(), path, cfg)
}

func SaveFS(fs afero.Fs, path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, os.FileMode(0644))
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.NumPoints < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: num_points must be positive, got %d", ErrInvalid, c.NumPoints))
	}
	if c.GridResolution < 2 {
		result = multierror.Append(result, fmt.Errorf("%w: grid_resolution must be at least 2, got %d", ErrInvalid, c.GridResolution))
	}
	if c.Levels < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: levels must be positive, got %d", ErrInvalid, c.Levels))
	}
	if c.Workers < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers))
	}
	if !contains(sampling.Names(), c.Sampler) {
		result = multierror.Append(result, fmt.Errorf("%w: %q", sampling.ErrUnknownSampler, c.Sampler))
	}
	if !contains(Renderers, c.Renderer) {
		result = multierror.Append(result, fmt.Errorf("%w: unknown renderer %q", ErrInvalid, c.Renderer))
	}
	return result.ErrorOrNil()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
