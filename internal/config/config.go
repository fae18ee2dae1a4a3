// Package config handles tool configuration loading and management.
package config

// Config holds all shapemirror settings.
type Config struct {
	Mirror  MirrorConfig  `yaml:"mirror"`
	Octree  OctreeConfig  `yaml:"octree"`
	Logging LoggingConfig `yaml:"logging"`
}

// MirrorConfig holds the mirroring engine settings.
type MirrorConfig struct {
	Tolerance       float64 `yaml:"tolerance"`        // max distance to a mirror partner
	CenterTolerance float64 `yaml:"center_tolerance"` // half-width of the center band
	DeformEpsilon   float64 `yaml:"deform_epsilon"`   // displacement below this is noise
	Axis            string  `yaml:"axis"`             // x, y or z
	Direction       string  `yaml:"direction"`        // left, right or auto
	FaultTolerant   bool    `yaml:"fault_tolerant"`
	SnapCenter      bool    `yaml:"snap_center"`
	TagFailed       bool    `yaml:"tag_failed"`
}

// OctreeConfig holds spatial index tuning.
type OctreeConfig struct {
	MaxPoints int `yaml:"max_points"` // leaf capacity before subdivision
	MaxDepth  int `yaml:"max_depth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mirror: MirrorConfig{
			Tolerance:       0.001,
			CenterTolerance: 0.0001,
			DeformEpsilon:   0.0001,
			Axis:            "x",
			Direction:       "auto",
			FaultTolerant:   true,
			SnapCenter:      true,
			TagFailed:       true,
		},
		Octree: OctreeConfig{
			MaxPoints: 10,
			MaxDepth:  10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
