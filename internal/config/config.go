// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/Qiqian1999/sement/internal/blend"
)

// Configuration holds all configuration for sement.
type Configuration struct {
	Materials []Material
	Quality   QualityConfig `yaml:"quality,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// Material holds the per-material price, proportion bounds, and baseline share.
type Material struct {
	Name           string
	Price          float64 `yaml:"price"`          // currency per tonne
	MinRatio       float64 `yaml:"minRatio"`       // fraction in [0,1]
	MaxRatio       float64 `yaml:"maxRatio"`       // fraction in [0,1], MinRatio <= MaxRatio
	ReferenceRatio float64 `yaml:"referenceRatio"` // baseline blend share
}

// QualityConfig holds the informational quality targets. The source process
// tracks them alongside the blend but they are not solver constraints.
type QualityConfig struct {
	StrengthTarget float64 `yaml:"strengthTarget,omitempty"` // early strength, MPa
	FinenessTarget float64 `yaml:"finenessTarget,omitempty"` // 45um fineness, %
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

// rawMaterial mirrors Material with pointer bounds so an explicit
// `minRatio: 0, maxRatio: 0` pin survives decoding; only a genuinely
// absent bound falls back to its default.
type rawMaterial struct {
	Name           string
	Price          float64  `yaml:"price"`
	MinRatio       *float64 `yaml:"minRatio"`
	MaxRatio       *float64 `yaml:"maxRatio"`
	ReferenceRatio float64  `yaml:"referenceRatio"`
}

type rawConfiguration struct {
	Materials []rawMaterial
	Quality   QualityConfig `yaml:"quality,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var raw rawConfiguration
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration := Configuration{
		Materials: make([]Material, len(raw.Materials)),
		Quality:   raw.Quality,
		Logging:   raw.Logging,
		Output:    raw.Output,
	}
	for i, m := range raw.Materials {
		material := Material{
			Name:           m.Name,
			Price:          m.Price,
			MaxRatio:       1,
			ReferenceRatio: m.ReferenceRatio,
		}
		if m.MinRatio != nil {
			material.MinRatio = *m.MinRatio
		}
		if m.MaxRatio != nil {
			material.MaxRatio = *m.MaxRatio
		}
		configuration.Materials[i] = material
	}

	return &configuration, nil
}

// Names returns the material names in configuration order.
func (c *Configuration) Names() []string {
	names := make([]string, len(c.Materials))
	for i, m := range c.Materials {
		names[i] = m.Name
	}
	return names
}

// Prices returns the per-material unit prices in configuration order.
func (c *Configuration) Prices() []float64 {
	prices := make([]float64, len(c.Materials))
	for i, m := range c.Materials {
		prices[i] = m.Price
	}
	return prices
}

// MinRatios returns the per-material minimum proportions in configuration order.
func (c *Configuration) MinRatios() []float64 {
	ratios := make([]float64, len(c.Materials))
	for i, m := range c.Materials {
		ratios[i] = m.MinRatio
	}
	return ratios
}

// MaxRatios returns the per-material maximum proportions in configuration order.
func (c *Configuration) MaxRatios() []float64 {
	ratios := make([]float64, len(c.Materials))
	for i, m := range c.Materials {
		ratios[i] = m.MaxRatio
	}
	return ratios
}

// ReferenceBlend returns the baseline blend in configuration order.
func (c *Configuration) ReferenceBlend() blend.Blend {
	reference := make(blend.Blend, len(c.Materials))
	for i, m := range c.Materials {
		reference[i] = m.ReferenceRatio
	}
	return reference
}
