package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go-sm808/preset"
	"go-sm808/sequencer"
	"go-sm808/widgets"
)

type playOptions struct {
	preset  string
	voices  []string
	bpm     int
	repeat  int
	midi    string
	instant bool
}

func (o *playOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.preset, "preset", "p", "", "start from a built-in song")
	fs.StringArrayVarP(&o.voices, "voice", "v", nil, "set a voice, name=pattern (repeatable)")
	fs.IntVar(&o.bpm, "bpm", 0, "tempo, 20-300 (default from preset or config)")
	fs.IntVarP(&o.repeat, "repeat", "r", -1, "bars to play (default from config)")
	fs.StringVar(&o.midi, "midi", "", "send triggers to this MIDI output port")
	fs.BoolVar(&o.instant, "instant", false, "print the trace without waiting for the clock")
}

func newPlayCmd() *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Plays a song once and prints its trace",
		Long: `Plays a preset and/or voices given on the command line, printing one
trace line per bar:

  sm808 play --preset animal-rights
  sm808 play -v kick=x...x... -v hihat=..x. --bpm 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd, opts)
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func play(cmd *cobra.Command, opts *playOptions) error {
	m := newMachine(cfg, opts.instant)

	song, tempo, err := buildSong(opts)
	if err != nil {
		return err
	}
	m.SetSong(song)
	if opts.bpm > 0 {
		tempo = opts.bpm
	}
	if tempo > 0 {
		m.SetTempo(tempo)
	}
	if opts.repeat >= 0 {
		m.SetRepeatCount(opts.repeat)
	}

	trace := widgets.NewTrace(cmd.OutOrStdout())
	listeners := []sequencer.Listener{trace}

	sink, closeSink, err := openSink(cfg, opts.midi)
	if err != nil {
		return err
	}
	defer closeSink()
	if sink != nil {
		listeners = append(listeners, sink)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := m.Play(ctx, sequencer.Multi(listeners...)); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if sink != nil && sink.Err() != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "midi: %v\n", sink.Err())
	}
	return errors.Wrap(trace.Err(), "write trace")
}

// buildSong starts from the preset (the configured default when no voices are
// given) and replaces voices from --voice.
func buildSong(opts *playOptions) (*sequencer.Song, int, error) {
	name := opts.preset
	if name == "" && len(opts.voices) == 0 {
		name = cfg.DefaultPreset
	}

	song := sequencer.NewSong("Untitled")
	tempo := 0
	if name != "" {
		p, err := preset.Load(name)
		if err != nil {
			return nil, 0, err
		}
		if song, err = p.Song(); err != nil {
			return nil, 0, err
		}
		tempo = p.Tempo
	}

	for _, arg := range opts.voices {
		v, err := parseVoiceFlag(arg)
		if err != nil {
			return nil, 0, err
		}
		song.ReplaceVoice(v)
	}
	return song, tempo, nil
}

// parseVoiceFlag parses name=pattern
func parseVoiceFlag(arg string) (sequencer.Voice, error) {
	name, pattern, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return sequencer.Voice{}, errors.Errorf("--voice %q: want name=pattern", arg)
	}
	v, err := sequencer.ParseVoice(strings.ToLower(name), pattern)
	if err != nil {
		return sequencer.Voice{}, errors.Wrapf(err, "--voice %s", name)
	}
	return v, nil
}
