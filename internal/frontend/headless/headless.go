// Package headless provides a front end without display, sound or input,
// used for benchmarks and automated runs.
package headless

import (
	"context"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/driver"
)

// Frontend discards frames and sound.
type Frontend struct{}

// New creates a new headless front end.
func New() *Frontend {
	return &Frontend{}
}

// Run blocks in the driver loop until the context is cancelled or a fault
// halts execution.
func (f *Frontend) Run(ctx context.Context, d *driver.Driver) error {
	return d.Run(ctx)
}

// Render discards the frame.
func (f *Frontend) Render(chip8.Frame) error {
	return nil
}

// Start does nothing.
func (f *Frontend) Start() {}

// Stop does nothing.
func (f *Frontend) Stop() {}
