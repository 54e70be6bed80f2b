package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config 流水线配置
type Config struct {
	DataDir string        `toml:"data_dir"`
	Extract ExtractConfig `toml:"extract"`
	Enrich  EnrichConfig  `toml:"enrich"`
	Cluster ClusterConfig `toml:"cluster"`
}

// ExtractConfig configures the timeline extraction stage
type ExtractConfig struct {
	Input string `toml:"input"`
}

// EnrichConfig configures the place enrichment stage
type EnrichConfig struct {
	CostPerRequest    float64 `toml:"cost_per_request"`
	MaxTotalCost      float64 `toml:"max_total_cost"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	CheckpointEvery   int     `toml:"checkpoint_every"`
	APIKey            string  `toml:"api_key"`
	Endpoint          string  `toml:"endpoint"`
}

// ClusterConfig configures the spatial clustering stage
type ClusterConfig struct {
	RadiusKilometers float64 `toml:"radius_kilometers"`
	MinPoints        int     `toml:"min_points"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir: "./data",
		Extract: ExtractConfig{
			Input: "./data/Timeline.json",
		},
		Enrich: EnrichConfig{
			CostPerRequest:    0.017, // USD per details request
			MaxTotalCost:      190,
			RequestsPerSecond: 50,
			CheckpointEvery:   100,
		},
		Cluster: ClusterConfig{
			RadiusKilometers: 1.0,
			MinPoints:        5,
		},
	}
}

// Load 加载配置：默认值 → TOML 文件 → 环境变量
// path may be empty; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if key := os.Getenv("PLACES_API_KEY"); key != "" {
		cfg.Enrich.APIKey = key
	}
	if dir := os.Getenv("PLACEWALK_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	return cfg, nil
}

// Validate rejects parameter combinations the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Enrich.CostPerRequest <= 0 {
		return fmt.Errorf("cost_per_request must be positive")
	}
	if c.Enrich.MaxTotalCost < 0 {
		return fmt.Errorf("max_total_cost must not be negative")
	}
	if c.Cluster.RadiusKilometers <= 0 {
		return fmt.Errorf("radius_kilometers must be positive")
	}
	if c.Cluster.MinPoints < 1 {
		return fmt.Errorf("min_points must be at least 1")
	}
	return nil
}
