// Package rom handles program file loading operations.
package rom

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a program file as a raw byte stream and validates that it
// fits the program area. Programs are loaded at 0x200, leaving 3584 bytes
// of room.
func (l *Loader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ROM file %s is empty", path)
	}
	if len(data) > chip8.MaxROMSize {
		return nil, fmt.Errorf("ROM file %s has %d bytes: %w",
			path, len(data), chip8.ErrROMTooLarge)
	}
	return data, nil
}
