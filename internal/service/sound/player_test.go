package sound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoopPlayer_StopIsIdempotent ensures Stop is safe before, after and between plays.
func TestLoopPlayer_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	p := NewLoopPlayer()

	// Stop without a running loop is a no-op.
	p.Stop()
	p.Stop()

	p.Play(context.Background(), "")
	p.Stop()
	p.Stop()
}

// TestLoopPlayer_PlayReplacesRunningLoop verifies a second Play supersedes the first.
func TestLoopPlayer_PlayReplacesRunningLoop(t *testing.T) {
	t.Parallel()

	p := NewLoopPlayer()
	defer p.Stop()

	p.Play(context.Background(), "")

	first := p.done
	require.NotNil(t, first)

	p.Play(context.Background(), "")

	// The first loop has been stopped and waited out.
	select {
	case <-first:
	default:
		t.Fatal("previous playback loop still running")
	}
}
