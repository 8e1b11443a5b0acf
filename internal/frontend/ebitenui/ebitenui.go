// Package ebitenui implements the windowed front end based on ebiten.
package ebitenui

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/retrogolib/log"
)

// windowScale enlarges the 64x32 grid to a usable window size, rendering
// itself stays at the native resolution and ebiten scales it.
const windowScale = 10

// Frontend owns the window and the audio beeper. The driver runs in a
// background goroutine and publishes frames, the window loop owns the
// screen and polls the keyboard.
type Frontend struct {
	logger  *log.Logger
	machine *chip8.Machine
	beeper  *beeper

	mu    sync.Mutex
	frame chip8.Frame
}

// New creates the windowed front end and initializes the audio device.
func New(logger *log.Logger, machine *chip8.Machine) (*Frontend, error) {
	b, err := newBeeper()
	if err != nil {
		return nil, fmt.Errorf("initializing audio: %w", err)
	}
	return &Frontend{
		logger:  logger,
		machine: machine,
		beeper:  b,
	}, nil
}

// Run starts the driver loop in the background and blocks in the window
// loop until the window is closed, the context is cancelled or a fault
// halts execution.
func (f *Frontend) Run(ctx context.Context, d *driver.Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driverErr := make(chan error, 1)
	go func() {
		driverErr <- d.Run(ctx)
	}()

	ebiten.SetWindowSize(chip8.DisplayWidth*windowScale, chip8.DisplayHeight*windowScale)
	ebiten.SetWindowTitle("chip8emu")

	f.logger.Debug("Starting window loop")
	if err := ebiten.RunGame(&game{frontend: f, ctx: ctx}); err != nil {
		cancel()
		<-driverErr
		return fmt.Errorf("window loop: %w", err)
	}

	cancel()
	return <-driverErr
}

// Render publishes a frame for the next Draw call. It is called from the
// driver goroutine.
func (f *Frontend) Render(frame chip8.Frame) error {
	f.mu.Lock()
	f.frame = frame
	f.mu.Unlock()
	return nil
}

// Start turns the buzzer on.
func (f *Frontend) Start() {
	f.beeper.Start()
}

// Stop turns the buzzer off.
func (f *Frontend) Stop() {
	f.beeper.Stop()
}

// keymap maps the left 4x4 block of a QWERTY keyboard to the hex keypad,
// mirroring the shared rune layout for physical key codes.
var keymap = map[ebiten.Key]byte{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

type game struct {
	frontend *Frontend
	ctx      context.Context
}

// Update forwards key edges to the machine and ends the loop on
// cancellation or escape.
func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, hex := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			g.frontend.machine.PressKey(hex)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.frontend.machine.ReleaseKey(hex)
		}
	}
	return nil
}

// Draw writes the latest published frame at native resolution, ebiten
// scales it to the window size.
func (g *game) Draw(screen *ebiten.Image) {
	g.frontend.mu.Lock()
	frame := g.frontend.frame
	g.frontend.mu.Unlock()

	screen.WritePixels(framePixels(frame))
}

// Layout fixes the logical screen size to the native display resolution.
func (g *game) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}

// framePixels converts the one-bit framebuffer into RGBA pixels.
func framePixels(frame chip8.Frame) []byte {
	pixels := make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4)
	for y := range frame {
		for x := range frame[y] {
			if !frame[y][x] {
				pixels[(y*chip8.DisplayWidth+x)*4+3] = 0xFF
				continue
			}
			offset := (y*chip8.DisplayWidth + x) * 4
			pixels[offset] = 0xFF
			pixels[offset+1] = 0xFF
			pixels[offset+2] = 0xFF
			pixels[offset+3] = 0xFF
		}
	}
	return pixels
}
