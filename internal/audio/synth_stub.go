//go:build !sound

package audio

import "errors"

// ErrNoSound is returned by NewSynth in builds without the sound tag.
var ErrNoSound = errors.New("audio: built without the sound tag")

// Synth is unavailable in this build.
type Synth struct{}

// NewSynth always fails; callers fall back to Nop.
func NewSynth() (*Synth, error) {
	return nil, ErrNoSound
}

func (*Synth) Play(Cue)     {}
func (*Synth) Close() error { return nil }
