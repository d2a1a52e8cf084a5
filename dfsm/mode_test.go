package dfsm_test

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/gordian-engine/notify/dfsm"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, m := range []dfsm.Mode{
		dfsm.ModeOnce, dfsm.ModeUniq, dfsm.ModeCache,
		dfsm.ModeCacheFinalState, dfsm.ModeCacheAll, dfsm.ModeEvery,
	} {
		got, err := dfsm.ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := dfsm.ParseMode("sometimes")
	require.Error(t, err)
}

func TestMode_invalid(t *testing.T) {
	t.Parallel()

	m := dfsm.Mode(99)
	require.False(t, m.Valid())
	require.Equal(t, "Mode(99)", m.String())

	_, err := m.MarshalText()
	require.ErrorIs(t, err, dfsm.UnknownModeError{Mode: 99})
}

func TestMode_decodeTOML(t *testing.T) {
	t.Parallel()

	var cfg struct {
		Fetch dfsm.Mode `toml:"fetch_mode"`
		Clock dfsm.Mode `toml:"clock_mode"`
	}

	_, err := toml.Decode(`
fetch_mode = "cache-final-state"
clock_mode = "every"
`, &cfg)
	require.NoError(t, err)
	require.Equal(t, dfsm.ModeCacheFinalState, cfg.Fetch)
	require.Equal(t, dfsm.ModeEvery, cfg.Clock)

	_, err = toml.Decode(`fetch_mode = "bogus"`, &cfg)
	require.Error(t, err)
}
