package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-sm808/preset"
	"go-sm808/widgets"
)

func newPresetsCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Lists the built-in songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range preset.Names() {
				p, err := preset.Load(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-18s %s (%d bpm)\n", p.Name, p.Title, p.Tempo)
				if !show {
					continue
				}
				song, err := p.Song()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n\n", widgets.RenderGrid(song, -1, widgets.PlainGrid()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&show, "show", "s", false, "print each song's patterns")
	return cmd
}
