package dfsm

import "fmt"

// TerminatedError is the panic value when a producer emits
// a next or terminal notification after the terminal state.
type TerminatedError struct {
	// The terminal state already reached.
	State string

	// The notification name that was attempted.
	Attempted string
}

func (e TerminatedError) Error() string {
	return fmt.Sprintf(
		"cannot emit %q: observable already reached terminal state %q",
		e.Attempted, e.State,
	)
}

// UnknownModeError is the panic value from [New]
// when [Config.Mode] is not a defined mode.
type UnknownModeError struct {
	Mode Mode
}

func (e UnknownModeError) Error() string {
	return fmt.Sprintf("unknown finite-state mode %d", uint8(e.Mode))
}

// UnknownTerminalError is the panic value from [*Context.Terminate]
// when the name is not a terminal state of the observable.
type UnknownTerminalError struct {
	Name string
}

func (e UnknownTerminalError) Error() string {
	return fmt.Sprintf("%q is not a terminal state of this observable", e.Name)
}

// UniqueLateObserverError is the panic value when an observer bound
// to the next channel or a terminal channel attaches to a [ModeUniq]
// observable that has already terminated.
type UniqueLateObserverError struct {
	Channel string
	State   string
}

func (e UniqueLateObserverError) Error() string {
	return fmt.Sprintf(
		"cannot observe channel %q of unique observable: already reached terminal state %q",
		e.Channel, e.State,
	)
}
