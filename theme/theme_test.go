package theme

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-midimsg/midi"
)

func TestReadGPL(t *testing.T) {
	src := `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
bogus line
`
	p, err := ReadGPL(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)

	_, err = ReadGPL(strings.NewReader("GIMP Palette\n"))
	assert.Error(t, err)
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))

	single := &Palette{Colors: []RGB{{1, 2, 3}}}
	assert.Equal(t, RGB{1, 2, 3}, single.Lookup(0.5))
}

func TestLookupEmptyPaletteUsesDefault(t *testing.T) {
	empty := &Palette{}
	def := DefaultPalette()
	assert.Equal(t, def.Lookup(0), empty.Lookup(0))
	assert.Equal(t, def.Lookup(0.5), empty.Lookup(0.5))
	assert.Equal(t, def.Lookup(1), empty.Lookup(1))

	th := New(empty)
	assert.NotPanics(t, func() { th.Color(RoleAccent) })
}

func TestPlainMessageMatchesFormat(t *testing.T) {
	m, err := midi.New("sysex", map[string]any{"data": []int{1, 2, 3}, "time": 7})
	require.NoError(t, err)

	th := NewPlain()
	assert.Equal(t, midi.Format(m, false), th.Message(m, false))
	assert.Equal(t, midi.Format(m, true), th.Message(m, true))
	assert.Equal(t, "F0 01 02 03 F7", th.Hex(m, " "))
	assert.Equal(t, "boom", th.Error(errors.New("boom")))
}

func TestColorHex(t *testing.T) {
	th := New(&Palette{Colors: []RGB{{0x12, 0x34, 0x56}}})
	assert.Equal(t, "#123456", string(th.Color(0.3)))
}
