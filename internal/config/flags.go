package config

import (
	"flag"
	"strings"

	"github.com/Faultbox/meshcut/pkg/encoding"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagQuiet    = flag.Bool("quiet", false, "Only log errors")
	flagLogFile  = flag.String("log-file", "", "Also write logs to this file (rotated)")
	flagEncoding = flag.String("encoding", "", "Text encoding of mesh files ("+strings.Join(encoding.Names(), ", ")+")")
)

// ParseFlags parses global command-line flags. Call this early in main().
// Parsing stops at the subcommand name; see Args.
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags.
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
	if *flagQuiet {
		cfg.Logging.Level = "error"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagEncoding != "" {
		cfg.Input.Encoding = *flagEncoding
	}
}
