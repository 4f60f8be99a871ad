package midi

import (
	"fmt"
	"strings"
	"sync"
)

// FieldKind selects the validation rule and wire encoding of a field
type FieldKind int

const (
	KindGenericByte FieldKind = iota // single data byte 0-127
	KindChannel                      // folded into the status byte
	KindPitch                        // 14 bit signed, offset by 8192
	KindSongPos                      // 14 bit unsigned
	KindData                         // sysex payload, terminated by 0xF7
	KindTime                         // metadata, never encoded
)

func (k FieldKind) String() string {
	switch k {
	case KindGenericByte:
		return "byte"
	case KindChannel:
		return "channel"
	case KindPitch:
		return "pitch"
	case KindSongPos:
		return "songpos"
	case KindData:
		return "data"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field value limits
const (
	MinChannel    = 0
	MaxChannel    = 15
	MinDataByte   = 0
	MaxDataByte   = 127
	MinPitchwheel = -8192
	MaxPitchwheel = 8191
	MinSongPos    = 0
	MaxSongPos    = 16383
)

const (
	SysExStart byte = 0xF0
	SysExEnd   byte = 0xF7

	// SizeUnbounded is the Size of sysex, which ends at SysExEnd instead
	SizeUnbounded = -1
)

// kindOf maps a field name to its kind. Every name not listed here is a
// generic data byte.
func kindOf(name string) FieldKind {
	switch name {
	case "channel":
		return KindChannel
	case "pitch":
		return KindPitch
	case "pos":
		return KindSongPos
	case "data":
		return KindData
	case "time":
		return KindTime
	}
	return KindGenericByte
}

// Spec describes one message type.
//
// StatusByte is the first byte of the message. For channel messages the
// channel (lower 4 bits) is clear. Fields lists the type specific fields in
// wire and text order; time is implicit and never part of Fields.
type Spec struct {
	StatusByte byte
	Type       string
	Fields     []string
	Size       int

	kinds []FieldKind
}

func newSpec(status byte, typ string, size int, fields ...string) *Spec {
	s := &Spec{
		StatusByte: status,
		Type:       typ,
		Fields:     fields,
		Size:       size,
		kinds:      make([]FieldKind, len(fields)),
	}
	for i, name := range fields {
		s.kinds[i] = kindOf(name)
	}
	return s
}

// IsChannel reports whether the low nibble of the status byte is a channel
func (s *Spec) IsChannel() bool {
	return s.StatusByte < SysExStart
}

// index returns the position of name in Fields, or -1
func (s *Spec) index(name string) int {
	for i, f := range s.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// HasField reports whether name is one of the type specific fields
func (s *Spec) HasField(name string) bool {
	return s.index(name) >= 0
}

// ValidFields returns Fields plus time
func (s *Spec) ValidFields() []string {
	out := make([]string, 0, len(s.Fields)+1)
	out = append(out, s.Fields...)
	return append(out, "time")
}

// Kind returns the field kind for name. ok is false if name is not valid
// for this type.
func (s *Spec) Kind(name string) (kind FieldKind, ok bool) {
	if name == "time" {
		return KindTime, true
	}
	i := s.index(name)
	if i < 0 {
		return 0, false
	}
	return s.kinds[i], true
}

// Signature renders the arguments New accepts for this type with their
// defaults, e.g. ('note_on', channel=0, note=0, velocity=0, time=0)
func (s *Spec) Signature() string {
	parts := []string{"'" + s.Type + "'"}
	for _, name := range s.Fields {
		if name == "data" {
			parts = append(parts, "data=()")
		} else {
			parts = append(parts, name+"=0")
		}
	}
	parts = append(parts, "time=0")
	return "(" + strings.Join(parts, ", ") + ")"
}

func standardSpecs() []*Spec {
	return []*Spec{
		// Channel messages
		newSpec(0x80, "note_off", 3, "channel", "note", "velocity"),
		newSpec(0x90, "note_on", 3, "channel", "note", "velocity"),
		newSpec(0xA0, "polytouch", 3, "channel", "note", "value"),
		newSpec(0xB0, "control_change", 3, "channel", "control", "value"),
		newSpec(0xC0, "program_change", 2, "channel", "program"),
		newSpec(0xD0, "aftertouch", 2, "channel", "value"),
		newSpec(0xE0, "pitchwheel", 3, "channel", "pitch"),

		// System common messages
		newSpec(0xF0, "sysex", SizeUnbounded, "data"),
		newSpec(0xF1, "undefined_f1", 1),
		newSpec(0xF2, "songpos", 3, "pos"),
		newSpec(0xF3, "song", 2, "song"),
		newSpec(0xF4, "undefined_f4", 1),
		newSpec(0xF5, "undefined_f5", 1),
		newSpec(0xF6, "tune_request", 1),
		newSpec(0xF7, "sysex_end", 1),

		// System realtime messages
		newSpec(0xF8, "clock", 1),
		newSpec(0xF9, "undefined_f9", 1),
		newSpec(0xFA, "start", 1),
		newSpec(0xFB, "continue", 1),
		newSpec(0xFC, "stop", 1),
		newSpec(0xFD, "undefined_fd", 1),
		newSpec(0xFE, "active_sensing", 1),
		newSpec(0xFF, "reset", 1),
	}
}

// Registry resolves status bytes and type names to specs. It is never
// modified after NewRegistry returns, so concurrent reads need no locking.
type Registry struct {
	specs    []*Spec
	byStatus [128]*Spec // indexed by status byte - 0x80
	byName   map[string]*Spec
}

// NewRegistry builds a registry of the standard MIDI 1.0 message types
func NewRegistry() *Registry {
	r := &Registry{
		specs:  standardSpecs(),
		byName: make(map[string]*Spec),
	}
	for _, s := range r.specs {
		if s.IsChannel() {
			for ch := byte(0); ch <= MaxChannel; ch++ {
				r.byStatus[(s.StatusByte|ch)-0x80] = s
			}
		} else {
			r.byStatus[s.StatusByte-0x80] = s
		}
		r.byName[s.Type] = s
	}
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// DefaultRegistry returns the shared standard registry, built on first use
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Specs returns all specs in declaration order
func (r *Registry) Specs() []*Spec {
	out := make([]*Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// ByStatus looks up a spec by status byte, channel bits included
func (r *Registry) ByStatus(b byte) (*Spec, error) {
	if b < 0x80 {
		return nil, fmt.Errorf("%w: 0x%02X is not a status byte", ErrUnknownType, b)
	}
	return r.byStatus[b-0x80], nil
}

// ByName looks up a spec by type name
func (r *Registry) ByName(name string) (*Spec, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return s, nil
}

// Resolve accepts a status byte (any integer type) or a type name
func (r *Registry) Resolve(key any) (*Spec, error) {
	if name, ok := key.(string); ok {
		return r.ByName(name)
	}
	n, ok := asInt(key)
	if !ok || n < 0x80 || n > 0xFF {
		return nil, fmt.Errorf("%w: %v is not a type name or status byte", ErrUnknownType, key)
	}
	return r.ByStatus(byte(n))
}
