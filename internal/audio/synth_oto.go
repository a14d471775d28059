//go:build sound

package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Synth plays cues through the system audio device.
type Synth struct {
	ctx   *oto.Context
	ready chan struct{}
	pcm   map[Cue][]byte
}

// NewSynth opens the audio device and pre-renders every cue.
func NewSynth() (*Synth, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	s := &Synth{ctx: ctx, ready: ready, pcm: make(map[Cue][]byte, len(tones))}
	for c, t := range tones {
		s.pcm[c] = t.PCM()
	}
	return s, nil
}

// Play starts the cue on its own player and returns immediately.
// Cues requested before the device is ready are dropped.
func (s *Synth) Play(c Cue) {
	select {
	case <-s.ready:
	default:
		return
	}
	data, ok := s.pcm[c]
	if !ok || len(data) == 0 {
		return
	}
	go func() {
		player := s.ctx.NewPlayer(bytes.NewReader(data))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

func (s *Synth) Close() error {
	return s.ctx.Suspend()
}
