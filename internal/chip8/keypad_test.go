package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad_PressRelease(t *testing.T) {
	var k Keypad

	assert.False(t, k.Pressed(0x5))
	k.Press(0x5)
	assert.True(t, k.Pressed(0x5))
	k.Release(0x5)
	assert.False(t, k.Pressed(0x5))
}

func TestKeypad_KeyNumbersAreMasked(t *testing.T) {
	var k Keypad

	k.Press(0x15)
	assert.True(t, k.Pressed(0x5))
	k.Release(0xF5)
	assert.False(t, k.Pressed(0x5))
}

func TestKeypad_CaptureOnPressEdge(t *testing.T) {
	var k Keypad

	// a key held before the wait starts is not captured
	k.Press(0x3)
	k.await(0x2)
	assert.True(t, k.Waiting())

	_, _, ok := k.takeCaptured()
	assert.False(t, ok)

	// releases do not end the wait
	k.Release(0x3)
	assert.True(t, k.Waiting())

	k.Press(0x7)
	assert.False(t, k.Waiting())

	register, key, ok := k.takeCaptured()
	assert.True(t, ok)
	assert.Equal(t, byte(0x2), register)
	assert.Equal(t, byte(0x7), key)

	// capture is consumed
	_, _, ok = k.takeCaptured()
	assert.False(t, ok)
}

func TestKeypad_FirstPressWins(t *testing.T) {
	var k Keypad

	k.await(0x0)
	k.Press(0x7)
	k.Press(0x8)

	_, key, ok := k.takeCaptured()
	assert.True(t, ok)
	assert.Equal(t, byte(0x7), key)

	// both keys are still recorded as held
	assert.True(t, k.Pressed(0x7))
	assert.True(t, k.Pressed(0x8))
}
