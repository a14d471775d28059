package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	SampleRate   = 22050
	ChannelCount = 1
	volume       = 0.25
)

// Wave is an oscillator shape.
type Wave int

const (
	Square Wave = iota
	Triangle
)

// Tone is one short beep.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
	Wave     Wave
}

var tones = map[Cue]Tone{
	CueTurn:     {Freq: 920, Duration: 28 * time.Millisecond, Wave: Square},
	CueEat:      {Freq: 320, Duration: 120 * time.Millisecond, Wave: Square},
	CueDeath:    {Freq: 80, Duration: 420 * time.Millisecond, Wave: Triangle},
	CueUIMove:   {Freq: 660, Duration: 40 * time.Millisecond, Wave: Square},
	CueUISelect: {Freq: 420, Duration: 80 * time.Millisecond, Wave: Square},
	CueTrophy:   {Freq: 880, Duration: 150 * time.Millisecond, Wave: Triangle},
}

// ToneFor returns the beep for a cue.
func ToneFor(c Cue) (Tone, bool) {
	t, ok := tones[c]
	return t, ok
}

// sample evaluates the oscillator at phase in [0, 1).
func (w Wave) sample(phase float64) float64 {
	switch w {
	case Triangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		if phase < 0.5 {
			return 1
		}
		return -1
	}
}

// PCM renders the tone as mono signed 16-bit little-endian samples.
// A short linear fade at both ends avoids clicks.
func (t Tone) PCM() []byte {
	n := int(t.Duration.Seconds() * SampleRate)
	if n <= 0 || t.Freq <= 0 {
		return nil
	}
	fade := min(n/2, SampleRate/200)

	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		phase := math.Mod(float64(i)*t.Freq/SampleRate, 1)
		gain := volume
		if fade > 0 {
			if i < fade {
				gain *= float64(i) / float64(fade)
			} else if n-1-i < fade {
				gain *= float64(n-1-i) / float64(fade)
			}
		}
		v := int16(t.Wave.sample(phase) * gain * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}
