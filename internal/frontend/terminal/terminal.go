// Package terminal implements a terminal front end based on gocui.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/retrogolib/log"
)

const (
	displayView   = "display"
	registersView = "registers"
	statusView    = "status"

	// terminals deliver no key release events, a pressed key counts as
	// held for this long
	keyHoldTime = 100 * time.Millisecond

	registerRefresh = 250 * time.Millisecond
)

// Frontend renders the display with block characters and reads the keypad
// from terminal key presses.
type Frontend struct {
	logger  *log.Logger
	machine *chip8.Machine
	g       *gocui.Gui
}

// New creates a new terminal front end.
func New(logger *log.Logger, machine *chip8.Machine) *Frontend {
	return &Frontend{
		logger:  logger,
		machine: machine,
	}
}

// Run starts the driver loop in the background and blocks in the terminal
// UI main loop until the user quits, the context is cancelled or a fault
// halts execution.
func (f *Frontend) Run(ctx context.Context, d *driver.Driver) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating terminal UI: %w", err)
	}
	defer g.Close()
	f.g = g

	g.SetManagerFunc(layout)
	if err := f.bindKeys(g); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	f.logger.Debug("Starting terminal UI")

	driverErr := make(chan error, 1)
	go func() {
		driverErr <- d.Run(ctx)
		g.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()
	go f.refreshRegisters(ctx)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		cancel()
		<-driverErr
		return fmt.Errorf("terminal UI: %w", err)
	}

	cancel()
	return <-driverErr
}

// Render pushes a frame to the display view. It is called from the driver
// goroutine, the drawing itself runs on the UI loop.
func (f *Frontend) Render(frame chip8.Frame) error {
	f.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(displayView)
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, renderFrame(frame))
		return nil
	})
	return nil
}

// Start shows the buzzer state in the status line.
func (f *Frontend) Start() {
	f.setStatus("beep")
}

// Stop clears the buzzer state from the status line.
func (f *Frontend) Stop() {
	f.setStatus("")
}

func (f *Frontend) setStatus(status string) {
	if f.g == nil {
		return
	}
	f.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(statusView)
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, status)
		return nil
	})
}

func (f *Frontend) bindKeys(g *gocui.Gui) error {
	quit := func(*gocui.Gui, *gocui.View) error {
		return gocui.ErrQuit
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return fmt.Errorf("binding quit key: %w", err)
	}
	if err := g.SetKeybinding("", gocui.KeyEsc, gocui.ModNone, quit); err != nil {
		return fmt.Errorf("binding quit key: %w", err)
	}

	for input, key := range driver.Keymap {
		key := key
		handler := func(*gocui.Gui, *gocui.View) error {
			f.machine.PressKey(key)
			time.AfterFunc(keyHoldTime, func() {
				f.machine.ReleaseKey(key)
			})
			return nil
		}
		if err := g.SetKeybinding("", input, gocui.ModNone, handler); err != nil {
			return fmt.Errorf("binding keypad key %q: %w", input, err)
		}
	}
	return nil
}

// refreshRegisters redraws the register view on a ticker, gocui allows
// view writes only through Update.
func (f *Frontend) refreshRegisters(ctx context.Context) {
	ticker := time.NewTicker(registerRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			f.g.Update(func(g *gocui.Gui) error {
				v, err := g.View(registersView)
				if err != nil {
					return err
				}
				v.Clear()
				writeRegisters(v, f.machine)
				return nil
			})
		}
	}
}

// renderFrame converts the one-bit framebuffer into block character rows.
func renderFrame(frame chip8.Frame) string {
	var sb strings.Builder
	for y := range frame {
		for x := range frame[y] {
			if frame[y][x] {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeRegisters formats the register file for the registers view.
func writeRegisters(w io.Writer, m *chip8.Machine) {
	regs := m.Registers()
	for i, value := range regs.V {
		fmt.Fprintf(w, "V%X:%02X ", i, value)
		if i == 7 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\nPC:%04X I:%04X DT:%02X ST:%02X",
		regs.PC, regs.I, m.DelayTimer(), m.SoundTimer())
}

// layout arranges the display on top with registers and status below.
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	displayBottom := chip8.DisplayHeight + 1
	if displayBottom > maxY-1 {
		displayBottom = maxY - 1
	}

	if v, err := g.SetView(displayView, 0, 0, chip8.DisplayWidth+1, displayBottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Display"
	}
	if v, err := g.SetView(registersView, 0, displayBottom+1, maxX-1, displayBottom+5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	if v, err := g.SetView(statusView, 0, displayBottom+6, maxX-1, displayBottom+8); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	return nil
}
