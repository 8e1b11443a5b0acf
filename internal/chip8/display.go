package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Frame is a read-only snapshot of the monochrome framebuffer, indexed as
// [y][x]. Renderers receive copies of this type and never touch the live
// buffer.
type Frame [DisplayHeight][DisplayWidth]bool

// Display is the 64x32 one-bit framebuffer. Sprites are XOR-composited
// onto it; erased pixels are reported as collisions.
type Display struct {
	pixels Frame
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Pixel reports whether the pixel at the given coordinates is set.
// Coordinates wrap around the screen edges.
func (d *Display) Pixel(x, y byte) bool {
	return d.pixels[y%DisplayHeight][x%DisplayWidth]
}

// DrawSprite XOR-composites a sprite onto the framebuffer at the given
// coordinates. A sprite is 8 pixels wide and one row tall per byte; the
// most significant bit of each byte is the leftmost pixel. The start
// coordinates and every row wrap around the screen edges. It returns true
// if any pixel was flipped from set to unset.
func (d *Display) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false

	for row, b := range sprite {
		py := (int(y) + row) % DisplayHeight
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % DisplayWidth
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	return collision
}

// Snapshot returns a copy of the framebuffer for rendering.
func (d *Display) Snapshot() Frame {
	return d.pixels
}
