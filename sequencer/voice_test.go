package sequencer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatternLength(t *testing.T) {
	for n := -1; n <= 64; n++ {
		l, ok := ParsePatternLength(n)
		switch n {
		case 4, 8, 16, 32:
			assert.True(t, ok, "n=%d", n)
			assert.Equal(t, n, l.Int())
		default:
			assert.False(t, ok, "n=%d", n)
		}
	}
}

func TestNewVoiceLengths(t *testing.T) {
	for n := 0; n <= 40; n++ {
		v, err := NewVoice("kick", make([]bool, n))
		if PatternLength(n).IsValid() {
			require.NoError(t, err, "n=%d", n)
			assert.Equal(t, PatternLength(n), v.PatternLength())
			assert.Len(t, v.Pattern(), n)
			continue
		}
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, ErrInvalidPatternLength))

		var lerr *PatternLengthError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, n, lerr.Length)
	}
}

func TestNewVoiceCopiesPattern(t *testing.T) {
	steps := []bool{true, false, false, false}
	v, err := NewVoice("kick", steps, WithAudio("samples/kick.wav"))
	require.NoError(t, err)

	steps[1] = true
	assert.False(t, v.Step(1))
	assert.Equal(t, "samples/kick.wav", v.Audio())
	assert.Equal(t, "kick", v.Name())
}

func TestNewEmptyVoice(t *testing.T) {
	for _, l := range PatternLengths() {
		v := NewEmptyVoice("hihat", l)
		assert.Equal(t, l, v.PatternLength())
		for i := 0; i < l.Int(); i++ {
			assert.False(t, v.Step(i))
		}
	}
	assert.Panics(t, func() { NewEmptyVoice("bad", PatternLength(5)) })
}

func TestSetStep(t *testing.T) {
	v := NewEmptyVoice("snare", Eight)

	for _, i := range []int{-1, 8, 9, 100} {
		err := v.SetStep(i, true)
		require.Error(t, err, "i=%d", i)
		assert.True(t, errors.Is(err, ErrInvalidStepIndex))

		var serr *StepIndexError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, i, serr.Index)
		assert.Equal(t, 8, serr.Length)
	}
	assert.Equal(t, "........", FormatPattern(v.Pattern()))

	for i := 0; i < 8; i++ {
		w := v.Clone()
		require.NoError(t, w.SetStep(i, true))
		for j := 0; j < 8; j++ {
			assert.Equal(t, i == j, w.Step(j), "set %d, check %d", i, j)
		}
	}
	// clones never leak edits back
	assert.Equal(t, "........", FormatPattern(v.Pattern()))
}

func TestFiresAtLoopsShortPatterns(t *testing.T) {
	kick, err := ParseVoice("kick", "x...")
	require.NoError(t, err)

	for tick := 0; tick < 32; tick++ {
		assert.Equal(t, tick%4 == 0, kick.FiresAt(tick), "tick=%d", tick)
	}
	assert.False(t, kick.FiresAt(-1))
}

func TestParsePattern(t *testing.T) {
	steps, err := ParsePattern("x..X")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true}, steps)
	assert.Equal(t, "x..x", FormatPattern(steps))

	_, err = ParsePattern("x.o.")
	var nerr *NotationError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 2, nerr.Pos)
	assert.Equal(t, 'o', nerr.Char)
	assert.True(t, errors.Is(err, ErrInvalidNotation))

	_, err = ParsePattern("x..")
	assert.True(t, errors.Is(err, ErrInvalidPatternLength))

	_, err = ParsePattern("")
	assert.True(t, errors.Is(err, ErrInvalidPatternLength))

	v, err := ParseVoice("hihat", "..x...x.")
	require.NoError(t, err)
	assert.Equal(t, "hihat ..x...x.", v.String())
}
