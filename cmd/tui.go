package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-sm808/preset"
	"go-sm808/theme"
	"go-sm808/tui"
)

func newTuiCmd() *cobra.Command {
	var paletteName string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Opens the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if paletteName == "" {
				paletteName = cfg.Theme
			}
			palette, err := theme.Resolve(paletteName)
			if err != nil {
				return errors.Wrap(err, "load theme")
			}

			m := newMachine(cfg, false)
			p, err := preset.Load(cfg.DefaultPreset)
			if err != nil {
				return err
			}
			song, err := p.Song()
			if err != nil {
				return err
			}
			m.SetSong(song)

			opts := []tui.Option{tui.WithDefaultPreset(cfg.DefaultPreset)}
			sink, closeSink, err := openSink(cfg, "")
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "midi: %v\n", err)
			} else if sink != nil {
				defer closeSink()
				opts = append(opts, tui.WithListener(sink))
			}

			model := tui.NewModel(m, theme.New(palette), opts...)
			prog := tea.NewProgram(model, tea.WithAltScreen())
			_, err = prog.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&paletteName, "theme", "", "builtin palette name or .gpl file")
	return cmd
}
