package sequencer

import "fmt"

// Voice is one rhythmic part of a song (kick, snare, ...) with its own pattern.
// The pattern length is fixed when the voice is created.
type Voice struct {
	name    string
	audio   string // opaque sample reference, never read by the machine
	pattern []bool
	length  PatternLength
}

type VoiceOption func(*Voice)

// WithAudio attaches a reference to an external sound asset.
func WithAudio(ref string) VoiceOption {
	return func(v *Voice) {
		v.audio = ref
	}
}

// NewVoice creates a voice from an explicit step sequence.
// The sequence length must be one of the legal pattern lengths.
func NewVoice(name string, pattern []bool, opts ...VoiceOption) (Voice, error) {
	length, ok := ParsePatternLength(len(pattern))
	if !ok {
		return Voice{}, &PatternLengthError{Length: len(pattern)}
	}

	v := Voice{
		name:    name,
		pattern: append([]bool(nil), pattern...),
		length:  length,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v, nil
}

// NewEmptyVoice creates a voice of the given length with every step muted.
func NewEmptyVoice(name string, length PatternLength, opts ...VoiceOption) Voice {
	if !length.IsValid() {
		panic(fmt.Sprintf("sequencer: NewEmptyVoice with invalid length %d", length))
	}
	v := Voice{
		name:    name,
		pattern: make([]bool, length),
		length:  length,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

func (v Voice) Name() string { return v.name }

func (v Voice) Audio() string { return v.audio }

func (v Voice) PatternLength() PatternLength { return v.length }

// SetStep sets the trigger at index. No other step changes.
func (v *Voice) SetStep(index int, value bool) error {
	if index < 0 || index >= len(v.pattern) {
		return &StepIndexError{Index: index, Length: len(v.pattern)}
	}
	v.pattern[index] = value
	return nil
}

// Step reports whether the step at index triggers. Out of range steps never trigger.
func (v Voice) Step(index int) bool {
	if index < 0 || index >= len(v.pattern) {
		return false
	}
	return v.pattern[index]
}

// Pattern returns a copy of the step sequence.
func (v Voice) Pattern() []bool {
	return append([]bool(nil), v.pattern...)
}

// FiresAt reports whether the voice triggers at a tick of the bar.
// Patterns shorter than the bar loop, phase-aligned to the bar start.
func (v Voice) FiresAt(tick int) bool {
	if len(v.pattern) == 0 || tick < 0 {
		return false
	}
	return v.pattern[tick%len(v.pattern)]
}

// Clone returns a voice that shares no pattern storage with v.
func (v Voice) Clone() Voice {
	v.pattern = append([]bool(nil), v.pattern...)
	return v
}

func (v Voice) String() string {
	return fmt.Sprintf("%s %s", v.name, FormatPattern(v.pattern))
}
