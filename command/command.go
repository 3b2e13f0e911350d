// Package command parses the line-oriented command language shared by the
// REPL and the terminal UI.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"go-sm808/sequencer"
)

// Kind identifies a parsed command
type Kind int

const (
	Noop   Kind = iota // blank line
	Voice              // <instrument> <pattern>
	Play
	Stop
	Preset  // preset [name]
	Presets // list presets
	Remove  // remove <name>
	Clear
	Show
	Tempo  // bpm <n>
	Repeat // repeat <n>
	Help
	Quit
)

var kindNames = map[Kind]string{
	Noop:    "noop",
	Voice:   "voice",
	Play:    "play",
	Stop:    "stop",
	Preset:  "preset",
	Presets: "presets",
	Remove:  "remove",
	Clear:   "clear",
	Show:    "show",
	Tempo:   "bpm",
	Repeat:  "repeat",
	Help:    "help",
	Quit:    "quit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is one parsed input line. Only the fields relevant to Kind are set.
type Command struct {
	Kind  Kind
	Name  string // voice, preset or removal target
	Voice sequencer.Voice
	Value int // bpm or repeat count
}

var (
	ErrUnknownCommand  = errors.New("command not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Command not found: %s.", strings.ToUpper(e.Name))
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

type ArgumentError struct {
	Command string
	Reason  string
	Usage   string
	Err     error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Command, e.Reason)
	if e.Usage != "" {
		msg += "\nUsage: " + e.Usage
	}
	return msg
}

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func (e *ArgumentError) Unwrap() error { return e.Err }

// foldCase lower-cases command words. Casers are stateful, so one is made per call.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Parse parses a single input line
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: Noop}, nil
	}

	name := foldCase(fields[0])
	args := fields[1:]

	if sequencer.IsVoiceName(name) {
		return parseVoice(name, args)
	}

	switch name {
	case "play":
		return noArgs(Play, name, args)
	case "stop":
		return noArgs(Stop, name, args)
	case "clear":
		return noArgs(Clear, name, args)
	case "show", "list":
		return noArgs(Show, name, args)
	case "presets":
		return noArgs(Presets, name, args)
	case "help", "?":
		return noArgs(Help, name, args)
	case "quit", "exit":
		return noArgs(Quit, name, args)
	case "preset":
		if len(args) > 1 {
			return Command{}, &ArgumentError{Command: name, Reason: "Invalid arguments.", Usage: "preset [name]"}
		}
		cmd := Command{Kind: Preset}
		if len(args) == 1 {
			cmd.Name = foldCase(args[0])
		}
		return cmd, nil
	case "remove", "rm":
		if len(args) != 1 {
			return Command{}, &ArgumentError{Command: name, Reason: "Invalid arguments.", Usage: "remove <voice>"}
		}
		return Command{Kind: Remove, Name: foldCase(args[0])}, nil
	case "bpm", "tempo":
		return parseNumber(Tempo, name, args, "bpm <20-300>", sequencer.MinTempo, sequencer.MaxTempo)
	case "repeat":
		return parseNumber(Repeat, name, args, "repeat <count>", 0, 1<<16)
	default:
		return Command{}, &UnknownCommandError{Name: fields[0]}
	}
}

func parseVoice(name string, args []string) (Command, error) {
	usage := name + " <pattern>"
	if len(args) != 1 {
		return Command{}, &ArgumentError{Command: name, Reason: "Invalid arguments.", Usage: usage}
	}

	v, err := sequencer.ParseVoice(name, args[0])
	if err != nil {
		reason := "Invalid pattern."
		if errors.Is(err, sequencer.ErrInvalidNotation) {
			reason = `Invalid pattern. Pattern must use "x" and "." characters only.`
		} else if errors.Is(err, sequencer.ErrInvalidPatternLength) {
			reason = "Number of steps must be 4, 8, 16 or 32."
		}
		return Command{}, &ArgumentError{Command: name, Reason: reason, Usage: usage, Err: err}
	}
	return Command{Kind: Voice, Name: name, Voice: v}, nil
}

func parseNumber(kind Kind, name string, args []string, usage string, lo, hi int) (Command, error) {
	if len(args) != 1 {
		return Command{}, &ArgumentError{Command: name, Reason: "Invalid arguments.", Usage: usage}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &ArgumentError{Command: name, Reason: fmt.Sprintf("%q is not a number.", args[0]), Usage: usage, Err: err}
	}
	if n < lo || n > hi {
		return Command{}, &ArgumentError{Command: name, Reason: fmt.Sprintf("%d is out of range.", n), Usage: usage}
	}
	return Command{Kind: kind, Value: n}, nil
}

func noArgs(kind Kind, name string, args []string) (Command, error) {
	if len(args) != 0 {
		return Command{}, &ArgumentError{Command: name, Reason: "Takes no arguments.", Usage: name}
	}
	return Command{Kind: kind}, nil
}
