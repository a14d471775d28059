package core

// IntentKind represents a decoded, device-independent user action.
// The platform layer maps raw key presses onto intents; the application
// never sees key codes.
type IntentKind int

const (
	IntentNone        IntentKind = iota
	IntentMove                   // Arrow keys / WASD - carries a Direction
	IntentConfirm                // Enter, Space
	IntentCancel                 // Esc, M
	IntentPause                  // P
	IntentRestart                // R
	IntentToggleVibes            // V
	IntentCharacter              // Printable rune during name entry - carries Char
	IntentErase                  // Backspace
	IntentQuit                   // Ctrl+C, window close
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentMove:
		return "Move"
	case IntentConfirm:
		return "Confirm"
	case IntentCancel:
		return "Cancel"
	case IntentPause:
		return "Pause"
	case IntentRestart:
		return "Restart"
	case IntentToggleVibes:
		return "ToggleVibes"
	case IntentCharacter:
		return "Character"
	case IntentErase:
		return "Erase"
	case IntentQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intent is a single decoded input event.
type Intent struct {
	Kind IntentKind
	Dir  Direction // Valid for IntentMove
	Char rune      // Valid for IntentCharacter
}

// Move builds a movement intent.
func Move(d Direction) Intent {
	return Intent{Kind: IntentMove, Dir: d}
}

// Char builds a character intent.
func Char(r rune) Intent {
	return Intent{Kind: IntentCharacter, Char: r}
}

// Do builds an intent that carries no payload.
func Do(k IntentKind) Intent {
	return Intent{Kind: k}
}

// InputFrame collects the intents decoded during one frame, in arrival order.
// Order matters: two quick turns in the same frame must both reach the
// turn queue in sequence.
type InputFrame struct {
	Intents []Intent
}

// Push appends an intent. IntentNone is dropped.
func (f *InputFrame) Push(in Intent) {
	if in.Kind == IntentNone {
		return
	}
	f.Intents = append(f.Intents, in)
}

// Has returns true if an intent of the given kind was triggered this frame.
func (f InputFrame) Has(k IntentKind) bool {
	for _, in := range f.Intents {
		if in.Kind == k {
			return true
		}
	}
	return false
}

// Clear resets the frame for reuse, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Intents = f.Intents[:0]
}

// Len returns the number of intents in the frame.
func (f InputFrame) Len() int {
	return len(f.Intents)
}
