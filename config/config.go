package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/kde"
	"github.com/uyouii/peakcal/model"
	"github.com/uyouii/peakcal/peak"
	"gopkg.in/yaml.v3"
)

const maxFileSize = 1 * 1024 * 1024

// Window is a named x range holding one peak of interest.
type Window struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

func (w Window) Range() model.Range {
	return model.Range{Lower: w.Min, Upper: w.Max}
}

type Logging struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// Config describes one calibration run.
type Config struct {
	// Column is the dataset column analysed.
	Column string `yaml:"column"`
	// CategoryColumn holds the particle code of every event.
	CategoryColumn string `yaml:"category_column"`
	// Category selects the events analysed.
	Category int `yaml:"category"`

	BandwidthScale float64 `yaml:"bandwidth_scale"`
	BandwidthRule  string  `yaml:"bandwidth_rule"`
	HeightRatio    float64 `yaml:"height_ratio"`
	GridSize       int     `yaml:"grid_size"`
	SearchStep     float64 `yaml:"search_step"`

	Windows    []Window         `yaml:"windows"`
	Categories []model.Category `yaml:"categories"`
	Logging    Logging          `yaml:"logging"`
}

// DefaultCategories are the particle types found in the detector simulation output.
func DefaultCategories() []model.Category {
	return []model.Category{
		{Code: 11, Name: "electrons"},
		{Code: 12, Name: "electron neutrinos"},
		{Code: 22, Name: "gamma-rays"},
	}
}

func Default() *Config {
	return &Config{
		CategoryColumn: "PDG",
		Category:       11,
		BandwidthScale: 1,
		BandwidthRule:  kde.BandWidthScott,
		HeightRatio:    peak.DefaultRatio,
		GridSize:       peak.DefaultGridSize,
		SearchStep:     peak.DefaultSearchStep,
		Categories:     DefaultCategories(),
		Logging:        Logging{Level: "info"},
	}
}

// Load reads a YAML config. Omitted fields keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml extension, got %q: %w", ext, common.ErrorInvalidConfig)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d): %w",
			fileInfo.Size(), maxFileSize, common.ErrorInvalidConfig)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v: %w", err, common.ErrorInvalidConfig)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Column == "" {
		return fmt.Errorf("column is required: %w", common.ErrorInvalidConfig)
	}
	if c.CategoryColumn == "" {
		return fmt.Errorf("category_column is required: %w", common.ErrorInvalidConfig)
	}
	if len(c.Windows) == 0 {
		return fmt.Errorf("at least one window is required: %w", common.ErrorInvalidConfig)
	}
	names := map[string]bool{}
	for i, w := range c.Windows {
		if w.Name == "" {
			return fmt.Errorf("window %d has no name: %w", i, common.ErrorInvalidConfig)
		}
		if names[w.Name] {
			return fmt.Errorf("duplicate window %q: %w", w.Name, common.ErrorInvalidConfig)
		}
		names[w.Name] = true
		if !(w.Min < w.Max) || math.IsInf(w.Min, 0) || math.IsInf(w.Max, 0) {
			return fmt.Errorf("window %q: min %v must be below max %v: %w", w.Name, w.Min, w.Max, common.ErrorInvalidConfig)
		}
	}
	for _, w := range c.Windows {
		if err := c.Params(w).Validate(); err != nil {
			return fmt.Errorf("window %q: %v: %w", w.Name, err, common.ErrorInvalidConfig)
		}
	}
	if _, err := kde.NewBandWidth(c.BandwidthRule); err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrorInvalidConfig)
	}
	return nil
}

// Params returns the analysis parameters for a window.
func (c *Config) Params(w Window) peak.Params {
	return peak.Params{
		BandwidthScale: c.BandwidthScale,
		BandWidthRule:  c.BandwidthRule,
		HeightRatio:    c.HeightRatio,
		Range:          w.Range(),
		GridSize:       c.GridSize,
		SearchStep:     c.SearchStep,
	}
}

// CategoryInfo returns the configured description of a particle code.
func (c *Config) CategoryInfo(code int) (model.Category, bool) {
	for _, category := range c.Categories {
		if category.Code == code {
			return category, true
		}
	}
	return model.Category{Code: code, Name: fmt.Sprintf("pdg %d", code)}, false
}
