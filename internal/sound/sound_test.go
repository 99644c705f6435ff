package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestTone_Length(t *testing.T) {
	sr := beep.SampleRate(44100)

	s, err := tone(sr, acceptFreq, acceptDuration)
	require.NoError(t, err)
	assert.Equal(t, sr.N(acceptDuration), drain(s))

	s, err = tone(sr, rejectFreq, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 44100, drain(s))
}

func TestTone_AboveNyquist(t *testing.T) {
	_, err := tone(beep.SampleRate(1000), 880, acceptDuration)
	assert.Error(t, err)
}

func TestMutedPlayer(t *testing.T) {
	p := NewMuted()
	assert.False(t, p.Enabled())
	assert.NotPanics(t, func() {
		p.Accept()
		p.Reject()
		p.Close()
	})
}
