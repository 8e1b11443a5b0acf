package ebitenui

import (
	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 48000
	beepFrequency  = 440
	beepVolume     = 8000
)

// beeper plays a square wave while the sound timer is above zero. The
// player pulls samples from an endless wave source, Start and Stop only
// toggle playback.
type beeper struct {
	player *oto.Player
}

func newBeeper() (*beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	player := ctx.NewPlayer(&squareWave{
		period: beepSampleRate / beepFrequency,
	})
	return &beeper{player: player}, nil
}

func (b *beeper) Start() {
	if !b.player.IsPlaying() {
		b.player.Play()
	}
}

func (b *beeper) Stop() {
	if b.player.IsPlaying() {
		b.player.Pause()
	}
}

// squareWave is an endless 16-bit mono square wave source.
type squareWave struct {
	period int
	pos    int
}

func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		sample := int16(beepVolume)
		if w.pos >= w.period/2 {
			sample = -beepVolume
		}
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)

		w.pos++
		if w.pos == w.period {
			w.pos = 0
		}
	}
	return n, nil
}
