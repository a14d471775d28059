// Package audio turns game cues into sound. Playback is best-effort: the
// game never waits on it and never learns whether it worked.
package audio

// Cue is a discrete sound event emitted by the application core.
type Cue int

const (
	CueTurn Cue = iota // A queued turn was applied
	CueEat
	CueDeath
	CueUIMove
	CueUISelect
	CueTrophy
)

func (c Cue) String() string {
	switch c {
	case CueTurn:
		return "turn"
	case CueEat:
		return "eat"
	case CueDeath:
		return "death"
	case CueUIMove:
		return "ui-move"
	case CueUISelect:
		return "ui-select"
	case CueTrophy:
		return "trophy"
	default:
		return "unknown"
	}
}

// Player plays cues. Play must not block the caller.
type Player interface {
	Play(c Cue)
	Close() error
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue)     {}
func (Nop) Close() error { return nil }

// Recorder keeps cues in order instead of playing them.
type Recorder struct {
	Cues []Cue
}

func (r *Recorder) Play(c Cue) {
	r.Cues = append(r.Cues, c)
}

func (r *Recorder) Close() error { return nil }

// Reset forgets recorded cues.
func (r *Recorder) Reset() {
	r.Cues = r.Cues[:0]
}
