package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sm808/sequencer"
)

func TestParseVoice(t *testing.T) {
	cmd, err := Parse("kick x...x...")
	require.NoError(t, err)
	assert.Equal(t, Voice, cmd.Kind)
	assert.Equal(t, "kick", cmd.Name)
	assert.Equal(t, "kick", cmd.Voice.Name())
	assert.Equal(t, sequencer.Eight, cmd.Voice.PatternLength())

	cmd, err = Parse("  HiHat   ..X.  ")
	require.NoError(t, err)
	assert.Equal(t, "hihat", cmd.Voice.Name())
	assert.Equal(t, []bool{false, false, true, false}, cmd.Voice.Pattern())
}

func TestParseVoiceErrors(t *testing.T) {
	tests := []struct {
		line  string
		cause error
	}{
		{"kick", nil},
		{"kick x... x...", nil},
		{"snare x.o.", sequencer.ErrInvalidNotation},
		{"hihat x..", sequencer.ErrInvalidPatternLength},
		{"hihat x.........", nil}, // 10 steps
	}
	for _, tt := range tests {
		_, err := Parse(tt.line)
		require.Error(t, err, tt.line)
		assert.True(t, errors.Is(err, ErrInvalidArgument), tt.line)

		var aerr *ArgumentError
		require.True(t, errors.As(err, &aerr))
		assert.Contains(t, aerr.Error(), "Usage:")
		if tt.cause != nil {
			assert.True(t, errors.Is(err, tt.cause), tt.line)
		}
	}
}

func TestParseSimpleCommands(t *testing.T) {
	tests := map[string]Kind{
		"":        Noop,
		"   ":     Noop,
		"play":    Play,
		"PLAY":    Play,
		"stop":    Stop,
		"preset":  Preset,
		"presets": Presets,
		"clear":   Clear,
		"show":    Show,
		"list":    Show,
		"help":    Help,
		"quit":    Quit,
		"Exit":    Quit,
	}
	for line, want := range tests {
		cmd, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, cmd.Kind, line)
	}

	_, err := Parse("play now")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("preset Animal-Rights")
	require.NoError(t, err)
	assert.Equal(t, Preset, cmd.Kind)
	assert.Equal(t, "animal-rights", cmd.Name)

	cmd, err = Parse("remove snare")
	require.NoError(t, err)
	assert.Equal(t, Remove, cmd.Kind)
	assert.Equal(t, "snare", cmd.Name)

	cmd, err = Parse("bpm 140")
	require.NoError(t, err)
	assert.Equal(t, Tempo, cmd.Kind)
	assert.Equal(t, 140, cmd.Value)

	cmd, err = Parse("repeat 2")
	require.NoError(t, err)
	assert.Equal(t, Repeat, cmd.Kind)
	assert.Equal(t, 2, cmd.Value)

	for _, bad := range []string{"bpm", "bpm fast", "bpm 10", "bpm 301", "repeat -1", "remove", "preset a b"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("cowbell! x...")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, "Command not found: COWBELL!.", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bpm", Tempo.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
