package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-sm808/sequencer"
	"go-sm808/theme"
)

// GridStyle controls how RenderGrid draws steps. Zero-value styles render plain text.
type GridStyle struct {
	Symbols  theme.Symbols
	Name     lipgloss.Style
	Muted    lipgloss.Style
	Playhead lipgloss.Style
	Voices   []lipgloss.Style // per voice row, cycled
	Colored  bool
}

// PlainGrid draws with the pattern notation and no colors
func PlainGrid() GridStyle {
	return GridStyle{Symbols: theme.ASCIISymbols()}
}

// ThemedGrid draws with the theme's symbols and palette
func ThemedGrid(th *theme.Theme, voices int) GridStyle {
	st := GridStyle{
		Symbols:  th.Symbols,
		Name:     lipgloss.NewStyle().Foreground(th.FG()),
		Muted:    lipgloss.NewStyle().Foreground(th.Muted()),
		Playhead: lipgloss.NewStyle().Foreground(th.Success()).Bold(true),
		Colored:  true,
	}
	for i := 0; i < voices; i++ {
		st.Voices = append(st.Voices, lipgloss.NewStyle().Foreground(th.VoiceColor(i, voices)))
	}
	return st
}

func (st GridStyle) paint(s lipgloss.Style, text string) string {
	if !st.Colored {
		return text
	}
	return s.Render(text)
}

// RenderGrid draws one row per voice across a full bar. Short patterns are
// drawn looping, the way they play. playhead < 0 hides the playhead.
func RenderGrid(song *sequencer.Song, playhead int, st GridStyle) string {
	voices := song.Voices()
	if len(voices) == 0 {
		return st.paint(st.Muted, "(no voices)")
	}
	bar := song.BarLength()

	width := 0
	for _, v := range voices {
		width = max(width, len(v.Name()))
	}

	var lines []string
	for i, v := range voices {
		var row strings.Builder
		row.WriteString(st.paint(st.Name, fmt.Sprintf("%-*s ", width, v.Name())))
		voiceStyle := lipgloss.NewStyle()
		if len(st.Voices) > 0 {
			voiceStyle = st.Voices[i%len(st.Voices)]
		}

		for s := 0; s < bar; s++ {
			if s > 0 && s%4 == 0 && st.Symbols.BarLine != ' ' {
				row.WriteString(st.paint(st.Muted, string(st.Symbols.BarLine)))
			}
			on := v.FiresAt(s)
			switch {
			case s == playhead && on:
				row.WriteString(st.paint(st.Playhead, string(st.Symbols.PlayheadHit)))
			case s == playhead:
				row.WriteString(st.paint(st.Playhead, string(st.Symbols.PlayheadOff)))
			case on:
				row.WriteString(st.paint(voiceStyle, string(st.Symbols.StepActive)))
			default:
				row.WriteString(st.paint(st.Muted, string(st.Symbols.StepEmpty)))
			}
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}
