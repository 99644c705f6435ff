// Package sound plays short tones when a shot is accepted or rejected.
package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	acceptFreq     = 880
	acceptDuration = 50 * time.Millisecond
	rejectFreq     = 220
	rejectDuration = 150 * time.Millisecond
)

// Player plays cue tones through the system speaker. A Player whose speaker
// failed to start, or that was created muted, silently does nothing.
type Player struct {
	sampleRate beep.SampleRate
	enabled    bool
	log        zerolog.Logger
}

// NewMuted returns a player that never makes a sound.
func NewMuted() *Player {
	return &Player{log: zerolog.Nop()}
}

// New initialises the speaker. Audio failures are logged and leave the player
// muted; the game runs without sound.
func New(sampleRate int, log zerolog.Logger) *Player {
	p := &Player{sampleRate: beep.SampleRate(sampleRate), log: log}

	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("Audio initialization failed, continuing without sound")
		return p
	}

	p.enabled = true
	return p
}

// Enabled reports whether the speaker is live.
func (p *Player) Enabled() bool {
	return p.enabled
}

// Accept plays the accepted-shot cue.
func (p *Player) Accept() {
	p.play(acceptFreq, acceptDuration)
}

// Reject plays the duplicate-shot cue.
func (p *Player) Reject() {
	p.play(rejectFreq, rejectDuration)
}

// Close stops the speaker.
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}

func (p *Player) play(freq int, d time.Duration) {
	if !p.enabled {
		return
	}

	s, err := tone(p.sampleRate, freq, d)
	if err != nil {
		p.log.Debug().Err(err).Int("freq", freq).Msg("failed to build tone")
		return
	}
	speaker.Play(s)
}

// tone returns a sine wave of the given frequency cut to duration d.
func tone(sr beep.SampleRate, freq int, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, float64(freq))
	if err != nil {
		return nil, fmt.Errorf("sine tone %dHz: %w", freq, err)
	}
	return beep.Take(sr.N(d), sine), nil
}
