package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-sm808/debug"
)

const (
	DefaultTempo       = 128
	DefaultRepeatCount = 4

	MinTempo = 20
	MaxTempo = 300
)

// State is the machine's playback state
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tick describes one step of playback.
type Tick struct {
	Index    int       // position within the bar
	Voices   []Voice   // voices firing at this tick, in song order
	BarStart bool      // Index == 0
	BarEnd   bool      // Index == bar length - 1
	Loop     int       // bars completed before this tick
	At       time.Time // scheduled time of the tick
}

// Names returns the names of the firing voices.
func (t Tick) Names() []string {
	names := make([]string, len(t.Voices))
	for i, v := range t.Voices {
		names[i] = v.Name()
	}
	return names
}

// Listener receives every tick of a run, synchronously and in order.
type Listener interface {
	Tick(t Tick)
}

type ListenerFunc func(t Tick)

func (f ListenerFunc) Tick(t Tick) { f(t) }

// Multi fans each tick out to every non-nil listener, in order.
func Multi(listeners ...Listener) Listener {
	return ListenerFunc(func(t Tick) {
		for _, l := range listeners {
			if l != nil {
				l.Tick(t)
			}
		}
	})
}

type Option func(*Machine)

func WithSong(s *Song) Option {
	return func(m *Machine) { m.song = s }
}

func WithTempo(bpm int) Option {
	return func(m *Machine) { m.tempo = clampTempo(bpm) }
}

func WithRepeatCount(n int) Option {
	return func(m *Machine) { m.repeatCount = clampRepeats(n) }
}

func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// Machine schedules the voices of its song against a shared tick clock.
// One run may be active at a time; a finished machine can be played again.
type Machine struct {
	mu          sync.Mutex
	song        *Song
	tempo       int
	repeatCount int
	clock       Clock

	state   State
	cancel  context.CancelFunc
	stopped bool // Stop was called during the current run

	// position of the current run
	tick int
	loop int
}

// NewMachine creates an idle machine
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		tempo:       DefaultTempo,
		repeatCount: DefaultRepeatCount,
		clock:       RealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSong attaches a song. A nil song detaches.
func (m *Machine) SetSong(s *Song) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.song = s
}

func (m *Machine) Song() *Song {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.song
}

// SetTempo sets the BPM
func (m *Machine) SetTempo(bpm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tempo = clampTempo(bpm)
}

func (m *Machine) Tempo() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tempo
}

// SetRepeatCount sets how many bars a run plays before stopping.
func (m *Machine) SetRepeatCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repeatCount = clampRepeats(n)
}

func (m *Machine) RepeatCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repeatCount
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Position returns the tick and completed loops of the current run.
func (m *Machine) Position() (tick, loop int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick, m.loop
}

// Interval returns the tick spacing for the attached song at the current tempo.
func (m *Machine) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.song == nil {
		return 0
	}
	return Interval(m.tempo, m.song.BarLength())
}

// Stop ends the current run, if any. Safe to call from a listener.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Running {
		return
	}
	m.stopped = true
	m.cancel()
}

// Play runs the attached song from the start of the bar. See PlayFrom.
func (m *Machine) Play(ctx context.Context, l Listener) error {
	return m.PlayFrom(ctx, 0, l)
}

// PlayFrom runs the attached song starting at startTick and blocks until
// RepeatCount bars have ended, ctx is cancelled or Stop is called.
// The song is copied when the run starts; later edits apply to the next run.
func (m *Machine) PlayFrom(ctx context.Context, startTick int, l Listener) error {
	m.mu.Lock()
	if m.state == Running {
		m.mu.Unlock()
		return ErrAlreadyPlaying
	}
	if m.song == nil {
		m.mu.Unlock()
		return ErrNoSong
	}
	if m.song.Len() == 0 {
		m.mu.Unlock()
		return ErrNoVoices
	}
	song := m.song.Clone()
	bar := song.BarLength()
	if bar == 0 {
		m.mu.Unlock()
		debug.Log("machine", "%q has no steps, nothing to play", song.Title)
		return nil
	}
	if startTick < 0 || startTick >= bar {
		m.mu.Unlock()
		return fmt.Errorf("%w: %d is outside 0..%d", ErrInvalidStartTick, startTick, bar-1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := run{
		id:      uuid.NewString(),
		voices:  song.Voices(),
		bar:     bar,
		repeats: m.repeatCount,
		clock:   m.clock,
		tempo:   m.tempo,
	}
	m.state = Running
	m.cancel = cancel
	m.stopped = false
	m.tick, m.loop = startTick, 0
	m.mu.Unlock()

	debug.Log("machine", "run %s start: %q bar=%d tempo=%d repeats=%d from=%d", r.id, song.Title, r.bar, r.tempo, r.repeats, startTick)
	debug.Dump("machine", "song", song)

	err := r.play(runCtx, startTick, m, l)
	cancel()

	m.mu.Lock()
	if err != nil && m.stopped {
		err = ErrStopped
	}
	m.state = Stopped
	m.cancel = nil
	m.stopped = false
	m.tick, m.loop = 0, 0
	m.mu.Unlock()

	if err != nil && !errors.Is(err, ErrStopped) {
		debug.Log("machine", "run %s aborted: %v", r.id, err)
	} else {
		debug.Log("machine", "run %s done: %v", r.id, err)
	}
	return err
}

func (m *Machine) setPosition(tick, loop int) {
	m.mu.Lock()
	m.tick, m.loop = tick, loop
	m.mu.Unlock()
}

// run holds the immutable parameters of a single playback.
type run struct {
	id      string
	voices  []Voice
	bar     int
	repeats int
	tempo   int
	clock   Clock
}

func (r *run) play(ctx context.Context, startTick int, m *Machine, l Listener) error {
	interval := Interval(r.tempo, r.bar)
	start := r.clock.Now()
	tick, loops := startTick, 0

	// Deadlines are absolute (start + n*interval) so slow listeners never accumulate drift.
	n := 0
	for ; loops < r.repeats; n++ {
		at := start.Add(time.Duration(n) * interval)
		if err := r.waitUntil(ctx, at); err != nil {
			return err
		}

		t := Tick{
			Index:    tick,
			BarStart: tick == 0,
			BarEnd:   tick == r.bar-1,
			Loop:     loops,
			At:       at,
		}
		for _, v := range r.voices {
			if v.FiresAt(tick) {
				t.Voices = append(t.Voices, v.Clone())
			}
		}

		m.setPosition(tick, loops)
		if l != nil {
			l.Tick(t)
		}
		if debug.Enabled() {
			debug.LogEvery(64, "tick", "run %s tick=%d loop=%d firing=%v", r.id, t.Index, t.Loop, t.Names())
		}

		tick = (tick + 1) % r.bar
		if t.BarEnd {
			loops++
		}
	}

	// Let the last step sound for its full length.
	if n > 0 {
		return r.waitUntil(ctx, start.Add(time.Duration(n)*interval))
	}
	return nil
}

func (r *run) waitUntil(ctx context.Context, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wait := deadline.Sub(r.clock.Now())
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(wait):
		return ctx.Err()
	}
}

// clampTempo keeps bpm within MinTempo..MaxTempo and logs any adjustment.
func clampTempo(bpm int) int {
	c := min(max(bpm, MinTempo), MaxTempo)
	if c != bpm {
		debug.Log("machine", "tempo %d out of range, clamped to %d", bpm, c)
	}
	return c
}

func clampRepeats(n int) int {
	if n < 0 {
		debug.Log("machine", "repeat count %d is negative, using 0", n)
		return 0
	}
	return n
}
