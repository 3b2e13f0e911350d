package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sm808/sequencer"
)

type session struct {
	m      *sequencer.Machine
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newSession(opts ...sequencer.Option) *session {
	opts = append([]sequencer.Option{sequencer.WithClock(sequencer.NewVirtualClock(time.Unix(0, 0)))}, opts...)
	return &session{m: sequencer.NewMachine(opts...)}
}

func (s *session) run(t *testing.T, input string, opts ...Option) error {
	t.Helper()
	sh := New(s.m, strings.NewReader(input), &s.out, &s.errOut, opts...)
	return sh.Run(context.Background())
}

func TestPlayPrintsTrace(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "kick x...\nplay\nquit\n"))

	assert.Contains(t, s.out.String(), "Welcome to SM808")
	assert.Contains(t, s.out.String(), strings.Repeat("|kick|_|_|_|\n", 4))
	assert.Empty(t, s.errOut.String())
}

func TestPresetPlaysDefaultSong(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "preset\n"))

	line := "|kick|_|hihat|_|kick+snare|_|hihat|_|\n"
	assert.Contains(t, s.out.String(), strings.Repeat(line, 4))
	assert.Equal(t, 128, s.m.Tempo())
	assert.Equal(t, "Animal Rights", s.m.Song().Title)
}

func TestErrorsDoNotEndSession(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "foo\nkick x..\nplay\nstop\nsnare x...\nplay\n"))

	errs := s.errOut.String()
	assert.Contains(t, errs, "Command not found: FOO.")
	assert.Contains(t, errs, "Number of steps must be 4, 8, 16 or 32.")
	assert.Contains(t, errs, "song is not set")
	assert.Contains(t, errs, "nothing is playing\n")

	assert.Contains(t, s.out.String(), "|snare|_|_|_|\n")
	assert.NotContains(t, s.out.String(), "|kick")
}

func TestPlayWithoutSong(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "play\n"))
	assert.Contains(t, s.errOut.String(), "song is not set")
}

func TestEditCommands(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "kick x...\nsnare ..x.\nKICK x.x.\nremove kick\nshow\nremove kick\n"))

	song := s.m.Song()
	require.NotNil(t, song)
	assert.Equal(t, 1, song.Len())
	_, ok := song.Voice("kick")
	assert.False(t, ok)

	assert.Contains(t, s.out.String(), "snare ..x.")
	assert.Contains(t, s.errOut.String(), "remove: no voice named kick")

	require.NoError(t, s.run(t, "clear\n"))
	assert.Zero(t, s.m.Song().Len())
}

func TestTempoAndRepeat(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "bpm 90\nrepeat 1\nkick x...\nplay\n"))

	assert.Equal(t, 90, s.m.Tempo())
	assert.Equal(t, 1, s.m.RepeatCount())
	assert.Contains(t, s.out.String(), "bpm 90\n")
	assert.Equal(t, 1, strings.Count(s.out.String(), "|kick|"))
}

func TestExtraListeners(t *testing.T) {
	s := newSession(sequencer.WithRepeatCount(2))

	var ticks int
	count := sequencer.ListenerFunc(func(sequencer.Tick) { ticks++ })
	require.NoError(t, s.run(t, "hihat x.x.x.x.\nplay\n", WithListener(count)))
	assert.Equal(t, 16, ticks)
}

func TestPromptAndHelp(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "help\n", WithPrompt("sm808> ")))
	assert.Contains(t, s.out.String(), "sm808> ")
	assert.Contains(t, s.out.String(), "preset [name]")
}

func TestPresetsList(t *testing.T) {
	s := newSession()
	require.NoError(t, s.run(t, "presets\npreset nope\n"))
	assert.Contains(t, s.out.String(), "animal-rights")
	assert.Contains(t, s.out.String(), "boom-bap")
	assert.Contains(t, s.errOut.String(), "unknown preset")
}

func TestCancelledContext(t *testing.T) {
	s := newSession()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh := New(s.m, strings.NewReader("kick x...\n"), &s.out, &s.errOut)
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
	assert.Nil(t, s.m.Song())
}

func TestStopWhenIdle(t *testing.T) {
	s := newSession()
	sh := New(s.m, strings.NewReader(""), &s.out, &s.errOut)

	quit, err := sh.Exec(context.Background(), "stop")
	assert.False(t, quit)
	assert.ErrorIs(t, err, sequencer.ErrNotPlaying)
	assert.Equal(t, "nothing is playing", err.Error())
}
