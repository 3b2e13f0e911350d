package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-sm808/midi"
)

func newPortsCmd() *cobra.Command {
	var timeout = midi.DefaultScanTimeout
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "Lists MIDI ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer midi.Close()

			ports, err := midi.ListPorts(timeout)
			if err != nil {
				// CoreMIDI hangs are cleared with: sudo killall coreaudiod midiserver
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== MIDI Input Ports ===")
			for i, name := range ports.In {
				fmt.Fprintf(out, "  %d: %s\n", i, name)
			}
			fmt.Fprintln(out, "\n=== MIDI Output Ports ===")
			for i, name := range ports.Out {
				fmt.Fprintf(out, "  %d: %s\n", i, name)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "give up listing after this long")
	return cmd
}
