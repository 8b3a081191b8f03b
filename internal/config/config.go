// Package config defines the CLI structure and configuration for ds4wire.
package config

import (
	"github.com/Alia5/ds4wire/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"DS4WIRE_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"DS4WIRE_LOG_FILE"`
	RawFile string `help:"Raw frame log file path (default: none)" env:"DS4WIRE_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config string `help:"Configuration file (JSON, YAML or TOML)" env:"DS4WIRE_CONFIG" placeholder:"PATH"`
	Log    `embed:"" prefix:"log."`

	Decode cmd.Decode `cmd:"" default:"withargs" help:"Decode ds4 frames from a file or stdin"`
}
