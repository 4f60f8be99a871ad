package midi

import (
	"fmt"
	"strings"
)

// Encode returns the wire bytes of m: the status byte, then each field in
// spec order. Channel adds no bytes, 14 bit fields add two (LSB first) and
// sysex data is followed by SysExEnd.
func Encode(m *Message) []byte {
	size := m.spec.Size
	if size == SizeUnbounded {
		size = len(m.data) + 2
	}
	out := make([]byte, 0, size)
	out = append(out, m.StatusByte())

	for i, kind := range m.spec.kinds {
		switch kind {
		case KindChannel:
		case KindData:
			out = append(out, m.data...)
			out = append(out, SysExEnd)
		case KindPitch:
			out = append14(out, m.values[i]-MinPitchwheel)
		case KindSongPos:
			out = append14(out, m.values[i])
		default:
			out = append(out, byte(m.values[i]))
		}
	}
	return out
}

func append14(b []byte, v int) []byte {
	return append(b, byte(v&0x7F), byte(v>>7))
}

// Bytes is Encode(m)
func (m *Message) Bytes() []byte {
	return Encode(m)
}

// Hex returns the encoded bytes as upper case hex pairs joined by sep
func (m *Message) Hex(sep string) string {
	raw := Encode(m)
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, sep)
}
