package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFormatTMinus covers the three display shapes.
func TestFormatTMinus(t *testing.T) {
	t.Parallel()

	require.Equal(t, "—", FormatTMinus(-time.Second))
	require.Equal(t, "00:00", FormatTMinus(0))
	require.Equal(t, "00:59", FormatTMinus(59*time.Second))
	require.Equal(t, "59:59", FormatTMinus(59*time.Minute+59*time.Second))
	require.Equal(t, "01:00:00", FormatTMinus(time.Hour))
	require.Equal(t, "03:07:09", FormatTMinus(3*time.Hour+7*time.Minute+9*time.Second))
}

// TestCountdowns reflects fired, disabled, empty and malformed entries.
func TestCountdowns(t *testing.T) {
	t.Parallel()

	s, registry, _ := newTestScheduler(t, Config{})
	upcoming := registry.Add("up", "10:00", true)
	registry.Add("empty", "", true)
	registry.Add("broken", "banana", true)
	disabled := registry.Add("off", "11:00", false)
	fired := registry.Add("done", "12:00", true)
	fired.Fired = true

	got := s.countdowns(at(9, 0, 0))
	require.Len(t, got, 5)

	require.Equal(t, "01:00:00", got[0].Remaining)
	require.Equal(t, upcoming.Label, got[0].Label)
	require.Equal(t, "—", got[1].Remaining)
	require.Equal(t, "ERR", got[2].Remaining)
	require.Equal(t, "—", got[3].Remaining)
	require.Equal(t, "—", got[4].Remaining)
	require.Equal(t, disabled.Label, got[3].Label)
}
