// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.UI = strings.ToLower(opts.UI)

	validUIs := []string{options.UIEbiten, options.UITerminal, options.UIHeadless}
	valid := false
	for _, ui := range validUIs {
		if opts.UI == ui {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported UI: %s. Valid options: %s",
			opts.UI, strings.Join(validUIs, ", "))
	}

	if opts.ClockRate <= 0 {
		return fmt.Errorf("invalid clock rate: %d, must be above zero", opts.ClockRate)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.UI, "ui", options.UIEbiten, "front end to use (ebiten/terminal/headless)")
	flags.IntVar(&opts.ClockRate, "clock", driver.DefaultClockRate, "CPU clock rate in instructions per second")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.SkipFaults, "skip-faults", false, "log and skip faulting instructions instead of halting")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
