// Package options contains the program options.
package options

// UI front end names.
const (
	UIEbiten   = "ebiten"
	UITerminal = "terminal"
	UIHeadless = "headless"
)

// Program options of the emulator.
type Program struct {
	Input string // ROM file to run

	UI        string // front end: ebiten, terminal, headless
	ClockRate int    // instructions per second

	Trace      bool // log every executed instruction
	SkipFaults bool // skip faulting instructions instead of halting
	Debug      bool // enable debug logging
	Quiet      bool // quiet mode
}
