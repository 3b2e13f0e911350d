package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVoice(t *testing.T, name, notation string) Voice {
	t.Helper()
	v, err := ParseVoice(name, notation)
	require.NoError(t, err)
	return v
}

func names(voices []Voice) []string {
	out := make([]string, len(voices))
	for i, v := range voices {
		out[i] = v.Name()
	}
	return out
}

func TestBarLength(t *testing.T) {
	s := NewSong("test")
	assert.Equal(t, 0, s.BarLength())

	s.Add(mustVoice(t, "kick", "x..."))
	assert.Equal(t, 4, s.BarLength())

	s.Add(mustVoice(t, "hihat", "..x...x...x...x."))
	assert.Equal(t, 16, s.BarLength())

	s.Add(mustVoice(t, "snare", "....x..."))
	assert.Equal(t, 16, s.BarLength())

	s.RemoveVoice("hihat")
	assert.Equal(t, 8, s.BarLength())

	s.RemoveVoice("snare")
	s.RemoveVoice("kick")
	assert.Equal(t, 0, s.BarLength())
}

func TestRemoveVoice(t *testing.T) {
	s := NewSong("dupes",
		mustVoice(t, "kick", "x..."),
		mustVoice(t, "snare", "..x."),
		mustVoice(t, "kick", "x.x."),
		mustVoice(t, "hihat", "xxxx"),
	)

	assert.Equal(t, 0, s.RemoveVoice("clap"))
	assert.Equal(t, []string{"kick", "snare", "kick", "hihat"}, names(s.Voices()))

	assert.Equal(t, 2, s.RemoveVoice("kick"))
	assert.Equal(t, []string{"snare", "hihat"}, names(s.Voices()))

	// second removal is a no-op
	assert.Equal(t, 0, s.RemoveVoice("kick"))
	assert.Equal(t, []string{"snare", "hihat"}, names(s.Voices()))
}

func TestReplaceVoice(t *testing.T) {
	s := NewSong("replace", mustVoice(t, "kick", "x..."), mustVoice(t, "snare", "..x."))
	s.ReplaceVoice(mustVoice(t, "kick", "x.x.x.x."))

	assert.Equal(t, []string{"snare", "kick"}, names(s.Voices()))
	kick, ok := s.Voice("kick")
	require.True(t, ok)
	assert.Equal(t, "x.x.x.x.", FormatPattern(kick.Pattern()))
	assert.Equal(t, 8, s.BarLength())
}

func TestSongOwnsVoices(t *testing.T) {
	kick := mustVoice(t, "kick", "x...")
	s := NewSong("owned", kick)

	require.NoError(t, kick.SetStep(1, true))
	got, _ := s.Voice("kick")
	assert.False(t, got.Step(1))

	voices := s.Voices()
	require.NoError(t, voices[0].SetStep(2, true))
	got, _ = s.Voice("kick")
	assert.False(t, got.Step(2))

	c := s.Clone()
	c.RemoveVoice("kick")
	assert.Equal(t, 1, s.Len())

	_, ok := s.Voice("missing")
	assert.False(t, ok)
}
