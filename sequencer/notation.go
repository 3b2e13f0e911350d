package sequencer

import "strings"

// Pattern notation: one character per step, "x" triggers and "." mutes.
const (
	TriggerChar = 'x'
	MuteChar    = '.'
)

// ParsePattern converts notation like "x...x..." into steps.
// Characters are checked before the length.
func ParsePattern(s string) ([]bool, error) {
	steps := make([]bool, 0, len(s))
	for i, c := range s {
		switch c {
		case TriggerChar, 'X':
			steps = append(steps, true)
		case MuteChar:
			steps = append(steps, false)
		default:
			return nil, &NotationError{Pattern: s, Pos: i, Char: c}
		}
	}
	if _, ok := ParsePatternLength(len(steps)); !ok {
		return nil, &PatternLengthError{Length: len(steps)}
	}
	return steps, nil
}

func FormatPattern(steps []bool) string {
	var b strings.Builder
	b.Grow(len(steps))
	for _, on := range steps {
		if on {
			b.WriteRune(TriggerChar)
		} else {
			b.WriteRune(MuteChar)
		}
	}
	return b.String()
}

// ParseVoice builds a voice from its name and pattern notation.
func ParseVoice(name, notation string, opts ...VoiceOption) (Voice, error) {
	steps, err := ParsePattern(notation)
	if err != nil {
		return Voice{}, err
	}
	return NewVoice(name, steps, opts...)
}
