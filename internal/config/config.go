// Package config handles meshcut configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/Faultbox/meshcut/internal/batch"
	"github.com/Faultbox/meshcut/pkg/cone"
	"github.com/Faultbox/meshcut/pkg/encoding"
)

// Config holds all meshcut settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Extract ExtractConfig `yaml:"extract"`
	Split   SplitConfig   `yaml:"split"`
	Cone    ConeConfig    `yaml:"cone"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig describes how mesh files are read and written.
type InputConfig struct {
	Encoding string `yaml:"encoding"` // Text encoding of OBJ files (utf-8, euc-kr, latin1, ...)
}

// ExtractConfig holds defaults for the extract command.
type ExtractConfig struct {
	Faces string `yaml:"faces"` // Face selection, e.g. "42-44,191-193"
}

// SplitConfig holds the parts written by the split command.
type SplitConfig struct {
	OutputDir string       `yaml:"output_dir"`
	Workers   int          `yaml:"workers"` // 0 = one per CPU
	Parts     []PartConfig `yaml:"parts"`
}

// PartConfig names one face selection of a split.
type PartConfig struct {
	Name  string `yaml:"name"`
	Faces string `yaml:"faces"`
}

// ConeConfig holds cone generator settings.
type ConeConfig struct {
	Sides    int     `yaml:"sides"`
	Theta    float64 `yaml:"theta"` // Half-angle in radians
	MtlLib   string  `yaml:"mtllib"`
	Material string  `yaml:"material"`
}

// Params converts the settings for the generator.
func (c ConeConfig) Params() cone.Params {
	return cone.Params{
		Sides:    c.Sides,
		Theta:    c.Theta,
		MtlLib:   c.MtlLib,
		Material: c.Material,
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Encoding: "utf-8",
		},
		Split: SplitConfig{
			OutputDir: ".",
			Workers:   0,
		},
		Cone: ConeConfig{
			Sides:    10,
			Theta:    math.Pi / 3,
			MtlLib:   "UV.mtl",
			Material: "ABC",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// EffectiveWorkers returns the split parallelism, resolving 0 to the CPU count.
func (s SplitConfig) EffectiveWorkers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// BatchParts converts the configured parts for batch.Run.
func (s SplitConfig) BatchParts() []batch.Part {
	parts := make([]batch.Part, len(s.Parts))
	for i, p := range s.Parts {
		parts[i] = batch.Part{Name: p.Name, Faces: p.Faces}
	}
	return parts
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error

	if _, err := encoding.Lookup(c.Input.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("input.encoding: %w", err))
	}
	if c.Split.Workers < 0 {
		errs = append(errs, fmt.Errorf("split.workers: must not be negative, got %d", c.Split.Workers))
	}

	if err := batch.Validate(c.Split.BatchParts()); err != nil {
		errs = append(errs, fmt.Errorf("split.parts: %w", err))
	}

	if err := c.Cone.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cone: %w", err))
	}

	return errors.Join(errs...)
}
