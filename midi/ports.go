package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DefaultScanTimeout bounds port enumeration (CoreMIDI can hang)
const DefaultScanTimeout = 3 * time.Second

var (
	ErrPortNotFound = errors.New("midi output port not found")
	ErrScanTimeout  = errors.New("timed out listing midi ports")
)

// Ports lists input and output port names
type Ports struct {
	In  []string
	Out []string
}

func scanPorts(timeout time.Duration) ([]drivers.In, []drivers.Out, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.inPorts, r.outPorts, nil
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, nil, ErrScanTimeout
	}
}

// ListPorts returns the names of all MIDI ports
func ListPorts(timeout time.Duration) (Ports, error) {
	ins, outs, err := scanPorts(timeout)
	if err != nil {
		return Ports{}, err
	}
	var p Ports
	for _, in := range ins {
		p.In = append(p.In, in.String())
	}
	for _, out := range outs {
		p.Out = append(p.Out, out.String())
	}
	return p, nil
}

// OpenSender opens the output port matching name
func OpenSender(name string, timeout time.Duration) (Sender, error) {
	_, outs, err := scanPorts(timeout)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	i, ok := MatchPort(names, name)
	if !ok {
		return nil, errors.Wrapf(ErrPortNotFound, "%q (have %v)", name, names)
	}
	send, err := gomidi.SendTo(outs[i])
	if err != nil {
		return nil, errors.Wrapf(err, "open port %s", names[i])
	}
	return send, nil
}

// MatchPort finds want among names: an exact match first, then the first
// case-insensitive substring match.
func MatchPort(names []string, want string) (int, bool) {
	if want == "" {
		return -1, false
	}
	for i, n := range names {
		if n == want {
			return i, true
		}
	}
	lower := strings.ToLower(want)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), lower) {
			return i, true
		}
	}
	return -1, false
}

// Close releases the MIDI driver
func Close() {
	gomidi.CloseDriver()
}
