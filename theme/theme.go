package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	StepEmpty   rune // · muted step
	StepActive  rune // ● trigger
	PlayheadHit rune // ▶ playhead on a trigger
	PlayheadOff rune // ▷ playhead on a muted step
	BarLine     rune // │ beat separator
}

func DefaultSymbols() Symbols {
	return Symbols{
		StepEmpty:   '·',
		StepActive:  '●',
		PlayheadHit: '▶',
		PlayheadOff: '▷',
		BarLine:     '│',
	}
}

// ASCIISymbols match the x/. pattern notation
func ASCIISymbols() Symbols {
	return Symbols{
		StepEmpty:   '.',
		StepActive:  'x',
		PlayheadHit: 'X',
		PlayheadOff: '-',
		BarLine:     ' ',
	}
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: DefaultSymbols(),
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// VoiceColor spreads voices across the warm half of the palette
func (t *Theme) VoiceColor(i, n int) lipgloss.Color {
	if n <= 1 {
		return t.Active()
	}
	return t.Color(RoleAccent + (RoleSuccess-RoleAccent)*float64(i)/float64(n-1))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
