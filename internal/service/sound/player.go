package sound

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/oshokin/day-starter/internal/logger"
)

// Player loops a ringtone until stopped.
// Both operations are safe to call at any time from any goroutine; the
// playback goroutine owns no alarm state.
type Player interface {
	// Play starts looping the sound file at path, replacing any loop that
	// is already running. An empty or unreadable path falls back to a
	// generated tone. Play never blocks on playback.
	Play(ctx context.Context, path string)
	// Stop silences any running loop. Idempotent.
	Stop()
}

// tonePause separates generated tone bursts so Stop is picked up quickly.
const tonePause = 300 * time.Millisecond

// LoopPlayer plays a sound file in a loop via a platform audio command,
// falling back to a generated tone when no file is playable.
type LoopPlayer struct {
	// mu protects cancel and done below.
	mu sync.Mutex
	// cancel stops the active playback goroutine.
	cancel context.CancelFunc
	// done is closed when the active playback goroutine exits.
	done chan struct{}
}

// NewLoopPlayer creates a stopped player.
func NewLoopPlayer() *LoopPlayer {
	return &LoopPlayer{}
}

// Play starts looping the provided sound file, replacing any current loop.
func (p *LoopPlayer) Play(ctx context.Context, path string) {
	p.Stop()

	// Playback must outlive the caller's context only until Stop.
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		runLoop(loopCtx, path)
	}()
}

// Stop silences any running loop and waits for the playback goroutine to exit.
func (p *LoopPlayer) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// runLoop repeats the ringtone until the context is canceled.
func runLoop(ctx context.Context, path string) {
	playable := path != ""
	if playable {
		if _, err := os.Stat(path); err != nil {
			logger.WarnKV(ctx, "Ringtone not readable, using tone fallback", "path", path, "error", err)

			playable = false
		}
	}

	for ctx.Err() == nil {
		if playable {
			if err := playFile(ctx, path); err != nil && ctx.Err() == nil {
				logger.WarnKV(ctx, "Ringtone playback failed, using tone fallback", "path", path, "error", err)

				playable = false
			}

			continue
		}

		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			logger.DebugKV(ctx, "Tone playback failed", "error", err)
		}

		select {
		case <-ctx.Done():
		case <-time.After(tonePause):
		}
	}
}

// playFile plays the sound file once using a common, built-in audio tool:
// - Linux:   paplay (PulseAudio/PipeWire) or aplay
// - macOS:   afplay
// - Windows: PowerShell Media.SoundPlayer
// The command is killed when the context is canceled.
func playFile(ctx context.Context, path string) error {
	name, args, err := playerCommand(path)
	if err != nil {
		return err
	}

	return exec.CommandContext(ctx, name, args...).Run()
}

// playerCommand picks the audio command for the current platform.
func playerCommand(path string) (string, []string, error) {
	switch runtime.GOOS {
	case "linux":
		if player, err := exec.LookPath("paplay"); err == nil {
			return player, []string{path}, nil
		}

		player, err := exec.LookPath("aplay")
		if err != nil {
			return "", nil, err
		}

		return player, []string{"-q", path}, nil
	case "darwin":
		return "afplay", []string{path}, nil
	case "windows":
		script := "(New-Object Media.SoundPlayer '" + path + "').PlaySync()"

		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	default:
		return "", nil, exec.ErrNotFound
	}
}
