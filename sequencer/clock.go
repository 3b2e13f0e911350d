package sequencer

import (
	"sync"
	"time"
)

// Clock paces the machine. Tests and offline rendering swap in a VirtualClock.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns a Clock backed by the wall clock.
func RealClock() Clock { return realClock{} }

// VirtualClock never sleeps: After advances the clock by d and fires at once.
// Runs against it finish immediately with exact tick timestamps.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *VirtualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Interval returns the time between ticks: a bar spans four beats at bpm,
// split evenly across barLength ticks.
func Interval(bpm, barLength int) time.Duration {
	if bpm <= 0 || barLength <= 0 {
		return 0
	}
	return 4 * time.Minute / time.Duration(bpm*barLength)
}
