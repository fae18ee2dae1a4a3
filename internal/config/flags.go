package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagTolerance = flag.Float64("tolerance", 0, "Mirror tolerance override")
	flagAxis      = flag.String("axis", "", "Mirror axis override (x, y or z)")
	flagDirection = flag.String("direction", "", "Mirror direction override (left, right or auto)")
	flagStrict    = flag.Bool("strict", false, "Fail the whole operation when any vertex cannot be mirrored")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTolerance > 0 {
		cfg.Mirror.Tolerance = *flagTolerance
	}
	if *flagAxis != "" {
		cfg.Mirror.Axis = *flagAxis
	}
	if *flagDirection != "" {
		cfg.Mirror.Direction = *flagDirection
	}
	if *flagStrict {
		cfg.Mirror.FaultTolerant = false
	}
}
