package chip8

import "fmt"

// CHIP-8 memory layout constants.
//
// Memory map (4KB total):
//
//	0x000-0x1FF: reserved interpreter area, holds the font set
//	0x200-0xFFF: user program and data area
const (
	// MemorySize is the total amount of addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address where programs are loaded and begin
	// execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid memory address.
	MaxAddress = 0xFFF

	// MaxROMSize is the largest program that fits into the program area.
	MaxROMSize = MemorySize - ProgramStart

	// FontStart is the address the built-in font set is stored at.
	FontStart = 0x050

	// FontSpriteSize is the size of a single font glyph in bytes.
	FontSpriteSize = 5
)

// fontSet contains the sprites for the hex digits 0-F, 5 bytes per glyph.
// Each byte's top nibble encodes one 4 pixel wide row, for example "0":
//
//	****  11110000  0xF0
//	*  *  10010000  0x90
//	*  *  10010000  0x90
//	*  *  10010000  0x90
//	****  11110000  0xF0
var fontSet = [16 * FontSpriteSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB address space of the machine. The font set lives
// at FontStart, programs at ProgramStart upward.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory returns initialized memory with the font set in place.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], fontSet[:])
	return m
}

// ReadByte reads the byte at the given address.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: read at %#04x", ErrMemoryFault, address)
	}
	return m.data[address], nil
}

// WriteByte writes a byte to the given address.
func (m *Memory) WriteByte(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: write at %#04x", ErrMemoryFault, address)
	}
	m.data[address] = value
	return nil
}

// ReadWord reads the big-endian 16-bit word at the given address. This is
// how instruction words are fetched: the byte at the address is the high
// byte.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if address+1 > MaxAddress || address > MaxAddress {
		return 0, fmt.Errorf("%w: word read at %#04x", ErrMemoryFault, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// ReadBlock reads length bytes starting at the given address. The whole
// range is validated before anything is read.
func (m *Memory) ReadBlock(address, length uint16) ([]byte, error) {
	if err := m.checkRange(address, length); err != nil {
		return nil, err
	}
	block := make([]byte, length)
	copy(block, m.data[address:address+length])
	return block, nil
}

// WriteBlock writes the given bytes starting at the given address. The
// whole range is validated before anything is written, so a failing write
// leaves memory untouched.
func (m *Memory) WriteBlock(address uint16, data []byte) error {
	if err := m.checkRange(address, uint16(len(data))); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// LoadROM copies a program into memory starting at ProgramStart.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.data[ProgramStart:], rom)
	return nil
}

// FontAddress returns the address of the font sprite for a hex digit. Only
// the low nibble of the digit is used.
func (m *Memory) FontAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*FontSpriteSize
}

// FontSprite returns the 5 glyph rows for a hex digit.
func (m *Memory) FontSprite(digit byte) []byte {
	address := m.FontAddress(digit)
	sprite := make([]byte, FontSpriteSize)
	copy(sprite, m.data[address:address+FontSpriteSize])
	return sprite
}

func (m *Memory) checkRange(address, length uint16) error {
	end := uint32(address) + uint32(length)
	if address > MaxAddress || end > MemorySize {
		return fmt.Errorf("%w: %d bytes at %#04x", ErrMemoryFault, length, address)
	}
	return nil
}
