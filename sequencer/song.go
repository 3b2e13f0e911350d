package sequencer

import (
	"golang.org/x/exp/slices"
)

// Song is an ordered arrangement of voices. Voice names are not required to be unique.
type Song struct {
	Title  string
	voices []Voice
}

// NewSong creates a song holding copies of the given voices.
func NewSong(title string, voices ...Voice) *Song {
	s := &Song{Title: title}
	for _, v := range voices {
		s.Add(v)
	}
	return s
}

// Add appends a copy of v. Existing voices with the same name are kept.
func (s *Song) Add(v Voice) {
	s.voices = append(s.voices, v.Clone())
}

// RemoveVoice removes every voice called name and returns how many were removed.
func (s *Song) RemoveVoice(name string) int {
	before := len(s.voices)
	s.voices = slices.DeleteFunc(s.voices, func(v Voice) bool {
		return v.name == name
	})
	return before - len(s.voices)
}

// ReplaceVoice removes all voices named like v, then appends v.
func (s *Song) ReplaceVoice(v Voice) {
	s.RemoveVoice(v.name)
	s.Add(v)
}

// Voice returns the first voice called name.
func (s *Song) Voice(name string) (Voice, bool) {
	i := slices.IndexFunc(s.voices, func(v Voice) bool {
		return v.name == name
	})
	if i < 0 {
		return Voice{}, false
	}
	return s.voices[i].Clone(), true
}

// Voices returns copies of the voices in song order.
func (s *Song) Voices() []Voice {
	out := make([]Voice, len(s.voices))
	for i, v := range s.voices {
		out[i] = v.Clone()
	}
	return out
}

func (s *Song) Len() int {
	return len(s.voices)
}

// BarLength returns the number of ticks in a bar: the longest pattern, or 0 for an empty song.
func (s *Song) BarLength() int {
	max := 0
	for _, v := range s.voices {
		if int(v.length) > max {
			max = int(v.length)
		}
	}
	return max
}

// Clone returns a deep copy of the song.
func (s *Song) Clone() *Song {
	return NewSong(s.Title, s.voices...)
}
