// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/frontend/ebitenui"
	"github.com/retroenv/chip8emu/internal/frontend/headless"
	"github.com/retroenv/chip8emu/internal/frontend/terminal"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/rom"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8emu", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// run loads the ROM into a fresh machine and hands it to the selected
// front end.
func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	data, err := rom.New().Load(opts.Input)
	if err != nil {
		return err
	}

	machine := chip8.New(chip8.DefaultConfig())
	if err := machine.LoadROM(data); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Info("Loaded ROM",
		log.String("file", opts.Input), log.Int("size", len(data)))

	cfg := driver.Config{
		ClockRate:  opts.ClockRate,
		Trace:      opts.Trace,
		SkipFaults: opts.SkipFaults,
	}

	switch opts.UI {
	case options.UIHeadless:
		frontend := headless.New()
		return frontend.Run(ctx, driver.New(logger, machine, frontend, frontend, cfg))

	case options.UITerminal:
		frontend := terminal.New(logger, machine)
		return frontend.Run(ctx, driver.New(logger, machine, frontend, frontend, cfg))

	default:
		frontend, err := ebitenui.New(logger, machine)
		if err != nil {
			return err
		}
		return frontend.Run(ctx, driver.New(logger, machine, frontend, frontend, cfg))
	}
}
