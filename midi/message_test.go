package midi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	m, err := New("note_on", nil)
	require.NoError(t, err)
	assert.Equal(t, "note_on", m.Type())
	assert.Equal(t, 0, m.Channel())
	assert.Equal(t, int64(0), m.Time())

	sx, err := New("sysex", nil)
	require.NoError(t, err)
	assert.Empty(t, sx.Data())
}

func TestNewChannelFromStatusByte(t *testing.T) {
	m, err := New(0x93, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Channel())
	assert.Equal(t, byte(0x93), m.StatusByte())

	// an explicit channel wins
	m, err = New(0x93, map[string]any{"channel": 9})
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), m.StatusByte())

	// names never carry a channel
	m, err = New("note_on", nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x90), m.StatusByte())
}

func TestNewFailsAtomically(t *testing.T) {
	m, err := New("note_on", map[string]any{"note": 60, "velocity": 300})
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrRange))

	m, err = New("note_on", map[string]any{"pitch": 0})
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrInvalidField))

	m, err = New("bogus", nil)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestGenericByteRange(t *testing.T) {
	m, err := New("control_change", nil)
	require.NoError(t, err)

	for _, v := range []int{-1000, -1, 128, 255, math.MaxInt} {
		assert.True(t, errors.Is(m.Set("value", v), ErrRange), "value %d", v)
	}
	for _, v := range []any{1.0, "1", true, nil, []int{1}} {
		assert.True(t, errors.Is(m.Set("value", v), ErrType), "value %v", v)
	}
	for v := 0; v <= 127; v++ {
		require.NoError(t, m.Set("control", v))
	}
	require.NoError(t, m.Set("value", uint8(127)))
	got, err := m.Get("value")
	require.NoError(t, err)
	assert.Equal(t, 127, got)
}

func TestFieldRanges(t *testing.T) {
	cases := []struct {
		typ, field string
		lo, hi     int
	}{
		{"note_on", "channel", 0, 15},
		{"pitchwheel", "pitch", -8192, 8191},
		{"songpos", "pos", 0, 16383},
		{"song", "song", 0, 127},
		{"program_change", "program", 0, 127},
	}
	for _, c := range cases {
		t.Run(c.typ+"/"+c.field, func(t *testing.T) {
			m, err := New(c.typ, nil)
			require.NoError(t, err)
			require.NoError(t, m.Set(c.field, c.lo))
			require.NoError(t, m.Set(c.field, c.hi))

			assert.True(t, errors.Is(m.Set(c.field, c.lo-1), ErrRange))
			assert.True(t, errors.Is(m.Set(c.field, c.hi+1), ErrRange))
			assert.True(t, errors.Is(m.Set(c.field, float64(c.lo)), ErrType))

			// failed writes keep the previous value
			got, _ := m.Get(c.field)
			assert.Equal(t, c.hi, got)
		})
	}
}

func TestSetData(t *testing.T) {
	m, err := New("sysex", nil)
	require.NoError(t, err)

	src := []int{1, 2, 3}
	require.NoError(t, m.Set("data", src))
	src[0] = 99
	assert.Equal(t, []byte{1, 2, 3}, m.Data())

	out := m.Data()
	out[1] = 99
	assert.Equal(t, []byte{1, 2, 3}, m.Data())

	require.NoError(t, m.Set("data", []byte{0x7E, 0x7F}))
	require.NoError(t, m.Set("data", []any{1, uint16(2)}))
	require.NoError(t, m.Set("data", [2]int64{5, 6}))
	assert.Equal(t, []byte{5, 6}, m.Data())

	assert.True(t, errors.Is(m.Set("data", []int{1, 128}), ErrRange))
	assert.True(t, errors.Is(m.Set("data", []byte{0x80}), ErrRange))
	assert.True(t, errors.Is(m.Set("data", []any{1, "2"}), ErrType))
	assert.True(t, errors.Is(m.Set("data", 5), ErrType))
	assert.True(t, errors.Is(m.Set("data", "abc"), ErrType))
	assert.True(t, errors.Is(m.Set("data", nil), ErrType))
	assert.Equal(t, []byte{5, 6}, m.Data())
}

func TestWideIntegersAreRangeChecked(t *testing.T) {
	m, err := New("note_on", map[string]any{"note": 60})
	require.NoError(t, err)

	for _, v := range []any{
		int64(1<<32 + 60),
		int64(-1<<32 + 60),
		int64(math.MinInt64),
		uint64(1<<32 + 60),
		uint64(math.MaxUint64),
		uint32(1<<31 + 60),
	} {
		assert.True(t, errors.Is(m.Set("note", v), ErrRange), "value %v", v)
	}
	note, _ := m.Get("note")
	assert.Equal(t, 60, note)

	require.NoError(t, m.Set("time", int64(1<<40)))
	assert.Equal(t, int64(1<<40), m.Time())
	require.NoError(t, m.Set("time", uint64(math.MaxUint64)))
	assert.Equal(t, float64(math.MaxUint64), m.Time())
}

func TestSetTime(t *testing.T) {
	m, err := New("clock", nil)
	require.NoError(t, err)

	require.NoError(t, m.Set("time", 12))
	assert.Equal(t, int64(12), m.Time())
	require.NoError(t, m.Set("time", -0.25))
	assert.Equal(t, -0.25, m.Time())
	require.NoError(t, m.Set("time", float32(2)))
	assert.Equal(t, 2.0, m.Time())

	assert.True(t, errors.Is(m.Set("time", "1"), ErrType))
	assert.Equal(t, 2.0, m.Time())
}

func TestReadOnly(t *testing.T) {
	m, err := New("note_on", map[string]any{"note": 60})
	require.NoError(t, err)

	assert.True(t, errors.Is(m.Set("type", "note_off"), ErrReadOnly))
	assert.True(t, errors.Is(m.Delete("note"), ErrReadOnly))
	assert.True(t, errors.Is(m.Delete("time"), ErrReadOnly))
	assert.True(t, errors.Is(m.Set("foo", 1), ErrInvalidField))

	_, err = m.Get("foo")
	assert.True(t, errors.Is(err, ErrInvalidField))
	typ, err := m.Get("type")
	require.NoError(t, err)
	assert.Equal(t, "note_on", typ)
	note, _ := m.Get("note")
	assert.Equal(t, 60, note)
}

func TestCopy(t *testing.T) {
	a, err := New("note_on", map[string]any{"channel": 2, "note": 60, "velocity": 64, "time": 1.5})
	require.NoError(t, err)

	b, err := a.Copy(map[string]any{"velocity": 32})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x92, 60, 32}, b.Bytes())
	assert.Equal(t, 1.5, b.Time())

	// the original is untouched
	assert.Equal(t, []byte{0x92, 60, 64}, a.Bytes())

	require.NoError(t, b.Set("note", 10))
	assert.Equal(t, []byte{0x92, 60, 64}, a.Bytes())

	c, err := a.Copy(nil)
	require.NoError(t, err)
	assert.True(t, a.Equal(c))

	_, err = a.Copy(map[string]any{"type": "note_off"})
	assert.True(t, errors.Is(err, ErrReadOnly))
	_, err = a.Copy(map[string]any{"velocity": 128})
	assert.True(t, errors.Is(err, ErrRange))
	_, err = a.Copy(map[string]any{"data": []int{}})
	assert.True(t, errors.Is(err, ErrInvalidField))
}

func TestEqualIgnoresTime(t *testing.T) {
	a, _ := New("note_on", map[string]any{"note": 60, "time": 1})
	b, _ := New("note_on", map[string]any{"note": 60, "time": 2.5})
	c, _ := New("note_on", map[string]any{"note": 61})
	d, _ := New("note_off", map[string]any{"note": 60})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))

	x, _ := New("sysex", map[string]any{"data": []int{1, 2}})
	y, _ := New("sysex", map[string]any{"data": []byte{1, 2}})
	z, _ := New("sysex", map[string]any{"data": []int{1}})
	assert.True(t, x.Equal(y))
	assert.False(t, x.Equal(z))
}

func TestGoString(t *testing.T) {
	m, _ := New("sysex", map[string]any{"data": []int{1, 2}, "time": 3})
	assert.Equal(t, "midi.Message(sysex, data=(1,2), time=3)", m.GoString())
}
