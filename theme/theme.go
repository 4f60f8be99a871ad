package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-midimsg/midi"
)

// Theme renders messages, hex dumps and errors for the terminal. A plain
// theme renders text unstyled.
type Theme struct {
	Palette *Palette
	Plain   bool
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{Palette: palette}
}

// NewPlain returns a theme that never emits escape codes
func NewPlain() *Theme {
	return &Theme{Palette: DefaultPalette(), Plain: true}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) style(role float64) lipgloss.Style {
	if t.Plain {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(t.Color(role))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// Message renders the text form of m with the type name and field names
// highlighted. Stripped of styling it equals midi.Format(m, includeTime).
func (t *Theme) Message(m *midi.Message, includeTime bool) string {
	words := strings.Fields(midi.Format(m, includeTime))
	typeIdx := 0
	if includeTime {
		words[0] = t.style(RoleMuted).Render(words[0])
		typeIdx = 1
	}
	words[typeIdx] = t.style(RoleAccent).Bold(!t.Plain).Render(words[typeIdx])

	for i := typeIdx + 1; i < len(words); i++ {
		name, value, _ := strings.Cut(words[i], "=")
		words[i] = t.style(RoleMuted).Render(name+"=") + t.style(RoleFG).Render(value)
	}
	return strings.Join(words, " ")
}

// Hex renders the encoded bytes of m
func (t *Theme) Hex(m *midi.Message, sep string) string {
	return t.style(RoleSuccess).Render(m.Hex(sep))
}

// Error renders a parse or validation failure
func (t *Theme) Error(err error) string {
	return t.style(RoleWarning).Render(err.Error())
}

// Dim renders secondary text such as help lines
func (t *Theme) Dim(s string) string {
	return t.style(RoleMuted).Render(s)
}

// Header renders a title
func (t *Theme) Header(s string) string {
	return t.style(RoleAccent).Bold(!t.Plain).Render(s)
}
