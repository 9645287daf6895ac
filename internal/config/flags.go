package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagTrace   = flag.Bool("trace", false, "Log every Euler operator (implies -debug)")
	flagLogFile = flag.String("log-file", "", "Also write logs to this file")
	flagTimeout = flag.Duration("timeout", 0, "Script evaluation timeout")
	flagOutDir  = flag.String("o", "", "Output directory for exported files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments: the subcommand and its operands.
func Args() []string {
	return flag.Args()
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
	if *flagTrace {
		cfg.Logging.Level = "debug"
		cfg.Logging.KernelTrace = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagTimeout > 0 {
		cfg.Engine.Timeout = *flagTimeout
	}
	if *flagOutDir != "" {
		cfg.Export.OutputDir = *flagOutDir
	}
}
