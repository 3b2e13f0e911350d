package sequencer

// PatternLength is the number of steps in a voice's pattern.
type PatternLength int

const (
	Four      PatternLength = 4
	Eight     PatternLength = 8
	Sixteen   PatternLength = 16
	ThirtyTwo PatternLength = 32
)

// PatternLengths returns every legal pattern length, shortest first.
func PatternLengths() []PatternLength {
	return []PatternLength{Four, Eight, Sixteen, ThirtyTwo}
}

// ParsePatternLength returns the PatternLength for n, or false if n is not a legal step count.
func ParsePatternLength(n int) (PatternLength, bool) {
	l := PatternLength(n)
	if !l.IsValid() {
		return 0, false
	}
	return l, true
}

func (l PatternLength) IsValid() bool {
	switch l {
	case Four, Eight, Sixteen, ThirtyTwo:
		return true
	default:
		return false
	}
}

func (l PatternLength) Int() int {
	return int(l)
}
