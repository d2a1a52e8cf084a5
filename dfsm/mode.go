package dfsm

import "fmt"

// Mode selects the replay policy of an [Observable].
// The zero value is [ModeOnce].
type Mode uint8

const (
	// ModeOnce replays nothing to late observers.
	ModeOnce Mode = iota

	// ModeUniq replays nothing, and refuses observers bound to
	// the next channel or a terminal channel once the observable has terminated.
	// Name-agnostic observers are still admitted.
	ModeUniq

	// ModeCache replays every next and terminal notification, in order.
	ModeCache

	// ModeCacheFinalState replays only the terminal notification.
	ModeCacheFinalState

	// ModeCacheAll replays every notification,
	// including those on channels other than next and terminal channels.
	ModeCacheAll

	// ModeEvery runs the setup callback separately for each observer,
	// instead of sharing one producer among all observers.
	// Per-run Admit hooks are ignored, since each run starts after its link.
	ModeEvery
)

var modeNames = [...]string{
	ModeOnce:            "once",
	ModeUniq:            "uniq",
	ModeCache:           "cache",
	ModeCacheFinalState: "cache-final-state",
	ModeCacheAll:        "cache-all",
	ModeEvery:           "every",
}

// ParseMode returns the Mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown finite-state mode %q", s)
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, UnknownModeError{Mode: m}
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// caches reports whether m records notifications for replay.
func (m Mode) caches() bool {
	return m == ModeCache || m == ModeCacheFinalState || m == ModeCacheAll
}
