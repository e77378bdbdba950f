package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagAddr     = flag.String("addr", "", "Viewer server listen address")
	flagRadius   = flag.Int("radius", -1, "Field radius")
	flagShape    = flag.String("shape", "", "Field shape (spiral, ring, range)")
	flagTickRate = flag.Int("tick-rate", 0, "Frames per second")
	flagPick     = flag.String("pick", "", "Pick mode (tiles, plane)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagRadius >= 0 {
		cfg.Field.Radius = *flagRadius
	}
	if *flagShape != "" {
		cfg.Field.Shape = *flagShape
	}
	if *flagPick != "" {
		cfg.Field.PickMode = *flagPick
	}
	if *flagTickRate > 0 {
		cfg.Server.TickRate = *flagTickRate
	}
}
