package sequencer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPatternLength = errors.New("invalid pattern length")
	ErrInvalidStepIndex     = errors.New("invalid step index")
	ErrInvalidNotation      = errors.New("invalid pattern notation")
	ErrNoSong               = errors.New("song is not set")
	ErrNoVoices             = errors.New("no voices set for song")
	ErrInvalidStartTick     = errors.New("invalid start tick")
	ErrAlreadyPlaying       = errors.New("machine is already playing")
	ErrStopped              = errors.New("playback stopped")
	ErrNotPlaying           = errors.New("nothing is playing")
)

// PatternLengthError reports a step count outside the legal pattern lengths.
type PatternLengthError struct {
	Length int
}

func (e *PatternLengthError) Error() string {
	return fmt.Sprintf("%v: got %d steps, must be 4, 8, 16 or 32", ErrInvalidPatternLength, e.Length)
}

func (e *PatternLengthError) Is(target error) bool {
	return target == ErrInvalidPatternLength
}

// StepIndexError reports a step index outside a voice's pattern.
type StepIndexError struct {
	Index  int
	Length int
}

func (e *StepIndexError) Error() string {
	return fmt.Sprintf("%v: %d is outside 0..%d", ErrInvalidStepIndex, e.Index, e.Length-1)
}

func (e *StepIndexError) Is(target error) bool {
	return target == ErrInvalidStepIndex
}

// NotationError reports a character that is neither a trigger nor a mute.
type NotationError struct {
	Pattern string
	Pos     int
	Char    rune
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("%v: %q at position %d in %q, use \"x\" and \".\" only", ErrInvalidNotation, e.Char, e.Pos, e.Pattern)
}

func (e *NotationError) Is(target error) bool {
	return target == ErrInvalidNotation
}
