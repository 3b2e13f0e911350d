// Package shell is the line-oriented front end: it reads commands, edits the
// machine's song and prints a bar trace while playing.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"go-sm808/command"
	"go-sm808/debug"
	"go-sm808/preset"
	"go-sm808/sequencer"
	"go-sm808/widgets"
)

const banner = `Welcome to SM808
- KICK, HIHAT, SNARE (or any voice) with <pattern> to set a 4, 8, 16 or 32 step pattern
- Use "x" to play the voice at that step and "." to mute, e.g: kick x...x...
- PLAY to print the song as it plays (%d repetitions)
- PRESET to play a classic "4-on-the-floor" sampler
- HELP for every command, QUIT to exit
`

type Option func(*Shell)

// WithListener adds listeners that receive every tick next to the trace
// (a MIDI sink, for instance).
func WithListener(l ...sequencer.Listener) Option {
	return func(s *Shell) { s.listeners = append(s.listeners, l...) }
}

// WithPrompt prints p before reading each line
func WithPrompt(p string) Option {
	return func(s *Shell) { s.prompt = p }
}

// WithDefaultPreset sets what a bare "preset" plays
func WithDefaultPreset(name string) Option {
	return func(s *Shell) { s.defaultPreset = name }
}

// Shell drives a Machine from text commands
type Shell struct {
	m      *sequencer.Machine
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	listeners     []sequencer.Listener
	prompt        string
	defaultPreset string
}

func New(m *sequencer.Machine, in io.Reader, out, errOut io.Writer, opts ...Option) *Shell {
	s := &Shell{
		m:             m,
		in:            in,
		out:           out,
		errOut:        errOut,
		defaultPreset: preset.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prints the banner and executes lines until quit, EOF or ctx is done.
// Command errors are reported on errOut and do not end the session.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, banner, s.m.RepeatCount())

	sc := bufio.NewScanner(s.in)
	for {
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		if !sc.Scan() {
			return errors.Wrap(sc.Err(), "read input")
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Exec(ctx, sc.Text())
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(s.errOut, err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. quit is true after quit or exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return false, err
	}
	if cmd.Kind != command.Noop {
		debug.Log("shell", "%s %s", cmd.Kind, strings.TrimSpace(line))
	}

	switch cmd.Kind {
	case command.Noop:
	case command.Voice:
		s.song().ReplaceVoice(cmd.Voice)
	case command.Play:
		return false, s.play(ctx)
	case command.Stop:
		return false, sequencer.ErrNotPlaying
	case command.Preset:
		return false, s.playPreset(ctx, cmd.Name)
	case command.Presets:
		s.listPresets()
	case command.Remove:
		if s.m.Song() == nil || s.m.Song().RemoveVoice(cmd.Name) == 0 {
			return false, errors.Errorf("remove: no voice named %s", cmd.Name)
		}
	case command.Clear:
		s.m.SetSong(sequencer.NewSong(s.song().Title))
	case command.Show:
		s.show()
	case command.Tempo:
		s.m.SetTempo(cmd.Value)
		fmt.Fprintf(s.out, "bpm %d\n", s.m.Tempo())
	case command.Repeat:
		s.m.SetRepeatCount(cmd.Value)
		fmt.Fprintf(s.out, "repeat %d\n", s.m.RepeatCount())
	case command.Help:
		fmt.Fprintln(s.out, widgets.RenderKeyHelp(widgets.CommandHelp()))
	case command.Quit:
		return true, nil
	}
	return false, nil
}

// song returns the attached song, attaching an empty one first if needed
func (s *Shell) song() *sequencer.Song {
	song := s.m.Song()
	if song == nil {
		song = sequencer.NewSong("Untitled")
		s.m.SetSong(song)
	}
	return song
}

func (s *Shell) play(ctx context.Context) error {
	trace := widgets.NewTrace(s.out)
	listeners := append([]sequencer.Listener{trace}, s.listeners...)

	if err := s.m.Play(ctx, sequencer.Multi(listeners...)); err != nil {
		return err
	}
	return errors.Wrap(trace.Err(), "write trace")
}

func (s *Shell) playPreset(ctx context.Context, name string) error {
	if name == "" {
		name = s.defaultPreset
	}
	p, err := preset.Load(name)
	if err != nil {
		return err
	}
	song, err := p.Song()
	if err != nil {
		return err
	}

	s.m.SetSong(song)
	if p.Tempo > 0 {
		s.m.SetTempo(p.Tempo)
	}
	return s.play(ctx)
}

func (s *Shell) listPresets() {
	for _, name := range preset.Names() {
		p, err := preset.Load(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(s.out, "  %-18s %s (%d bpm)\n", p.Name, p.Title, p.Tempo)
	}
}

func (s *Shell) show() {
	song := s.song()
	fmt.Fprintf(s.out, "%s  bpm %d  repeat %d\n", song.Title, s.m.Tempo(), s.m.RepeatCount())
	fmt.Fprintln(s.out, widgets.RenderGrid(song, -1, widgets.PlainGrid()))
}
