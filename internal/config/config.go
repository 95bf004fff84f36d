// Package config loads map generation parameters from a YAML file,
// layered over built-in defaults. CLI flags override whatever the file
// provides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable generation parameters.
type Config struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	TileSizePx int  `yaml:"tile_size_px"`
	ChunkSize  int  `yaml:"chunk_size"`
	Counties   int  `yaml:"counties"`
	Duchies    int  `yaml:"duchies"`
	Kingdoms   int  `yaml:"kingdoms"`
	Terrain    bool `yaml:"terrain"`
}

// Default returns the standard map parameters.
func Default() Config {
	return Config{
		Width:      80,
		Height:     50,
		TileSizePx: 32,
		ChunkSize:  16,
		Counties:   48,
		Duchies:    16,
		Kingdoms:   5,
		Terrain:    true,
	}
}

// Load reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
