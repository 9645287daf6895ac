// Package config handles brepctl configuration loading and management.
package config

import "time"

// Config holds all brepctl settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	Export  ExportConfig  `yaml:"export"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	// KernelTrace routes the kernel's per-operator debug events to the log.
	KernelTrace bool `yaml:"kernel_trace"`
}

// EngineConfig holds script evaluation settings.
type EngineConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ExportConfig holds settings for the dot, svg and stl subcommands.
type ExportConfig struct {
	OutputDir string    `yaml:"output_dir"` // Default directory for written files
	SVG       SVGConfig `yaml:"svg"`
}

// SVGConfig holds the half-edge plot layout.
type SVGConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Margin       int     `yaml:"margin"`
	VertexRadius int     `yaml:"vertex_radius"`
	OriginRadius int     `yaml:"origin_radius"`
	Lateral      float64 `yaml:"lateral"`
	Inset        float64 `yaml:"inset"`
	Labels       bool    `yaml:"labels"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Engine: EngineConfig{
			Timeout: 5 * time.Second,
		},
		Export: ExportConfig{
			OutputDir: ".",
			SVG: SVGConfig{
				Width:        800,
				Height:       800,
				Margin:       40,
				VertexRadius: 10,
				OriginRadius: 5,
				Lateral:      5,
				Inset:        20,
				Labels:       true,
			},
		},
	}
}
