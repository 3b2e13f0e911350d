package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-sm808/config"
	"go-sm808/debug"
	"go-sm808/shell"
)

// cfg is loaded before any command runs
var cfg = config.DefaultConfig()

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sm808",
		Short: "SM808 step sequencer",
		Long: `SM808 is a step-sequencer drum machine. Voices are written as patterns of
"x" (play) and "." (mute), 4, 8, 16 or 32 steps long, and loop against a shared
bar. Without a subcommand it reads commands from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/go-sm808/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "write a debug log to "+debug.LogPath())

	rootCmd.AddCommand(
		newPlayCmd(),
		newTuiCmd(),
		newPresetsCmd(),
		newPortsCmd(),
	)
	return rootCmd
}

func Execute() {
	cobra.CheckErr(newRootCmd().Execute())
}

func setup(opts *rootOptions) error {
	load := config.Load
	if opts.configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFile(opts.configPath) }
	}
	c, err := load()
	if err != nil {
		return err
	}
	cfg = c

	if opts.debug || cfg.Debug {
		if err := debug.Enable(""); err != nil {
			return errors.Wrap(err, "enable debug log")
		}
	}
	debug.Dump("cmd", "config", cfg)
	return nil
}

func runShell(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := newMachine(cfg, false)
	shellOpts := []shell.Option{shell.WithDefaultPreset(cfg.DefaultPreset)}

	sink, closeSink, err := openSink(cfg, "")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "midi: %v\n", err)
	} else if sink != nil {
		defer closeSink()
		shellOpts = append(shellOpts, shell.WithListener(sink))
	}

	sh := shell.New(m, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), shellOpts...)
	err = sh.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
