// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.Debug {
		cfg.Level = log.DebugLevel
	} else if opts.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
