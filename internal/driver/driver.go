// Package driver runs a machine against a front end.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Renderer displays framebuffer snapshots. It is called from the driver
// goroutine after every instruction that changed the display.
type Renderer interface {
	Render(frame chip8.Frame) error
}

// Beeper emits the buzzer tone. Start and Stop are only called on sound
// timer edges, from the driver goroutine.
type Beeper interface {
	Start()
	Stop()
}

// DefaultClockRate is the instruction rate most original programs were
// written against.
const DefaultClockRate = 700

const timerInterval = time.Second / chip8.TimerRate

// Config adjusts the run loop behavior.
type Config struct {
	ClockRate  int  // instructions per second
	Trace      bool // log every executed instruction
	SkipFaults bool // skip faulting instructions instead of halting
}

// Driver steps a machine at a fixed instruction rate, derives the 60Hz
// timer ticks from elapsed wall clock time and forwards display and sound
// changes to the front end. All machine access happens on the goroutine
// calling Run, except for key events which the front ends deliver
// directly to the machine.
type Driver struct {
	logger   *log.Logger
	machine  *chip8.Machine
	renderer Renderer
	beeper   Beeper
	cfg      Config

	timerDebt time.Duration
	beeping   bool
}

// New creates a driver for the given machine and front end.
func New(logger *log.Logger, machine *chip8.Machine, renderer Renderer,
	beeper Beeper, cfg Config) *Driver {

	if cfg.ClockRate <= 0 {
		cfg.ClockRate = DefaultClockRate
	}
	return &Driver{
		logger:   logger,
		machine:  machine,
		renderer: renderer,
		beeper:   beeper,
		cfg:      cfg,
	}
}

// Run executes instructions at the configured clock rate until the
// context is cancelled or a fault halts execution.
func (d *Driver) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(d.cfg.ClockRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer d.beeper.Stop()

	d.logger.Debug("Starting run loop",
		log.Int("clock_rate", d.cfg.ClockRate))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			if err := d.Tick(now.Sub(last)); err != nil {
				return err
			}
			last = now
		}
	}
}

// Tick advances the timers by the elapsed wall clock time and executes
// one instruction. It is the unit of work of Run, exposed so tests can
// drive the loop with a synthetic clock.
func (d *Driver) Tick(elapsed time.Duration) error {
	d.timerDebt += elapsed
	for d.timerDebt >= timerInterval {
		d.machine.TickTimers()
		d.timerDebt -= timerInterval
	}

	pc := d.machine.PC()
	in, err := d.machine.Step()
	if err != nil {
		if !d.cfg.SkipFaults {
			return fmt.Errorf("executing instruction at %#04x: %w", pc, err)
		}
		d.logger.Warn("Skipping faulting instruction",
			log.Hex("pc", pc), log.Err(err))
		d.machine.Skip()
		return nil
	}

	if d.cfg.Trace && in.Word != 0 {
		d.logger.Debug("Trace",
			log.Hex("pc", pc), log.String("instruction", in.String()))
	}

	if in.Op == chip8.OpDrw || in.Op == chip8.OpCls {
		if err := d.renderer.Render(d.machine.DisplaySnapshot()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
	}

	d.updateSound()
	return nil
}

// updateSound translates sound timer edges into beeper calls.
func (d *Driver) updateSound() {
	sounding := d.machine.SoundTimer() > 0
	switch {
	case sounding && !d.beeping:
		d.beeper.Start()
		d.beeping = true

	case !sounding && d.beeping:
		d.beeper.Stop()
		d.beeping = false
	}
}
