package dcancel

import "fmt"

// Strategy decides how a wrapped operation settles
// when cancellation wins the race.
// The zero value is [StrategyReject].
type Strategy uint8

const (
	// StrategyReject settles with the token's reason as the error.
	StrategyReject Strategy = iota

	// StrategyResolve settles with the zero value and a nil error.
	StrategyResolve

	// StrategyNever never settles.
	// The caller is expected to be watching the token as well.
	StrategyNever
)

var strategyNames = [...]string{
	StrategyReject:  "reject",
	StrategyResolve: "resolve",
	StrategyNever:   "never",
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(s string) (Strategy, error) {
	for st, name := range strategyNames {
		if name == s {
			return Strategy(st), nil
		}
	}
	return 0, fmt.Errorf("unknown cancellation strategy %q", s)
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return int(s) < len(strategyNames)
}

func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
	return strategyNames[s]
}

// MarshalText implements [encoding.TextMarshaler].
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, UnknownStrategyError{Strategy: s}
	}
	return []byte(strategyNames[s]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
