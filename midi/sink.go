package midi

import (
	"sync"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-sm808/debug"
	"go-sm808/sequencer"
)

const (
	DefaultChannel  = 10 // GM percussion
	DefaultVelocity = 100
)

// Sender writes one message to an output port (see gomidi.SendTo)
type Sender func(msg gomidi.Message) error

type SinkOption func(*Sink)

func WithKit(name string) SinkOption {
	return func(s *Sink) { s.kit = sequencer.GetKit(name) }
}

// WithChannel sets the 1-based MIDI channel. Out of range values keep the default.
func WithChannel(ch int) SinkOption {
	return func(s *Sink) {
		if ch >= 1 && ch <= 16 {
			s.channel = uint8(ch - 1)
		}
	}
}

func WithVelocity(v int) SinkOption {
	return func(s *Sink) {
		if v >= 1 && v <= 127 {
			s.velocity = uint8(v)
		}
	}
}

// Sink is a sequencer.Listener that triggers a drum machine over MIDI.
type Sink struct {
	send     Sender
	kit      sequencer.DrumKit
	channel  uint8
	velocity uint8

	mu     sync.Mutex
	err    error
	warned map[string]bool
	sent   int
}

func NewSink(send Sender, opts ...SinkOption) *Sink {
	s := &Sink{
		send:     send,
		kit:      sequencer.GetKit(sequencer.DefaultKit),
		channel:  DefaultChannel - 1,
		velocity: DefaultVelocity,
		warned:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick implements sequencer.Listener. Send errors are kept, not fatal to the run.
func (s *Sink) Tick(tk sequencer.Tick) {
	events, skipped := TickEvents(tk, s.kit, s.channel, s.velocity)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range skipped {
		if !s.warned[name] {
			s.warned[name] = true
			debug.Log("midi", "kit %s has no note for voice %q", s.kit.Name, name)
		}
	}
	for _, e := range events {
		if err := s.send(e.Message()); err != nil {
			if s.err == nil {
				s.err = errors.Wrapf(err, "send %s note %d", e.Voice, e.Note)
				debug.Log("midi", "%v", s.err)
			}
			continue
		}
		s.sent++
	}
}

// Err returns the first send error
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Sent returns how many messages went out
func (s *Sink) Sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}
