package widgets

import (
	"io"
	"strings"
	"sync"

	"go-sm808/sequencer"
)

// Trace renders ticks as a pipe-delimited bar trace, one line per bar:
//
//	|kick|_|hihat|_|kick+snare|_|hihat|_|
type Trace struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

func NewTrace(w io.Writer) *Trace {
	return &Trace{w: w}
}

// Tick implements sequencer.Listener. The first write error is kept and
// later ticks are dropped.
func (t *Trace) Tick(tk sequencer.Tick) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, FormatTick(tk))
}

func (t *Trace) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// FormatTick returns the trace text for a single tick
func FormatTick(tk sequencer.Tick) string {
	var b strings.Builder
	if tk.BarStart {
		b.WriteString("|")
	}
	if len(tk.Voices) == 0 {
		b.WriteString("_")
	} else {
		b.WriteString(strings.Join(tk.Names(), "+"))
	}
	b.WriteString("|")
	if tk.BarEnd {
		b.WriteString("\n")
	}
	return b.String()
}
