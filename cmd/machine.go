package cmd

import (
	"time"

	"go-sm808/config"
	"go-sm808/debug"
	"go-sm808/midi"
	"go-sm808/sequencer"
)

// newMachine builds a machine from the config. An instant machine runs on a
// virtual clock and prints a whole song without waiting.
func newMachine(c *config.Config, instant bool) *sequencer.Machine {
	opts := []sequencer.Option{
		sequencer.WithTempo(c.Tempo),
		sequencer.WithRepeatCount(c.RepeatCount),
	}
	if instant {
		opts = append(opts, sequencer.WithClock(sequencer.NewVirtualClock(time.Now())))
	}
	return sequencer.NewMachine(opts...)
}

// openSink opens the MIDI port (port, or the configured one) as a tick
// listener. No port configured means no sink and no error.
func openSink(c *config.Config, port string) (*midi.Sink, func(), error) {
	if port == "" {
		port = c.MIDI.Port
	}
	if port == "" {
		return nil, func() {}, nil
	}

	send, err := midi.OpenSender(port, midi.DefaultScanTimeout)
	if err != nil {
		return nil, func() {}, err
	}
	debug.Log("cmd", "midi out %s kit=%s ch=%d", port, c.Kit, c.MIDI.Channel)

	sink := midi.NewSink(send,
		midi.WithKit(c.Kit),
		midi.WithChannel(c.MIDI.Channel),
		midi.WithVelocity(c.MIDI.Velocity),
	)
	return sink, midi.Close, nil
}
