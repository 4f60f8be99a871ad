package midi

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Message is a MIDI message bound to one Spec. Fields are written through
// Set, which validates before storing, so a Message never holds an invalid
// value. A Message is not safe for concurrent writers.
type Message struct {
	spec   *Spec
	values []int // parallel to spec.Fields, unused for data
	data   []byte
	time   any // int64 or float64
}

// New creates a message from a type name or status byte using the default
// registry. See Registry.New.
func New(key any, fields map[string]any) (*Message, error) {
	return DefaultRegistry().New(key, fields)
}

// New creates a message of the type key resolves to.
//
// If key is a status byte of a channel message, the channel defaults to its
// lower 4 bits unless fields sets channel. Every other field defaults to 0
// (data to empty). fields are then applied in name order; the first invalid
// one fails the whole construction.
func (r *Registry) New(key any, fields map[string]any) (*Message, error) {
	spec, err := r.Resolve(key)
	if err != nil {
		return nil, err
	}

	m := &Message{
		spec:   spec,
		values: make([]int, len(spec.Fields)),
		data:   []byte{},
		time:   int64(0),
	}
	if i := spec.index("channel"); i >= 0 {
		if status, ok := asInt(key); ok {
			m.values[i] = status & 0x0F
		}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := m.Set(name, fields[name]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Spec returns the message type description
func (m *Message) Spec() *Spec {
	return m.spec
}

// Type returns the type name, e.g. "note_on"
func (m *Message) Type() string {
	return m.spec.Type
}

// Channel returns the channel, or 0 for system messages
func (m *Message) Channel() int {
	if i := m.spec.index("channel"); i >= 0 {
		return m.values[i]
	}
	return 0
}

// Data returns a copy of the sysex payload
func (m *Message) Data() []byte {
	return append([]byte{}, m.data...)
}

// Time returns the timestamp as int64 or float64
func (m *Message) Time() any {
	return m.time
}

// Get returns the value of a field: int for numeric fields, []byte for data
// and int64 or float64 for time.
func (m *Message) Get(name string) (any, error) {
	if name == "type" {
		return m.spec.Type, nil
	}
	kind, ok := m.spec.Kind(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s message has no field %s", ErrInvalidField, m.spec.Type, name)
	}
	switch kind {
	case KindTime:
		return m.time, nil
	case KindData:
		return m.Data(), nil
	}
	return m.values[m.spec.index(name)], nil
}

// Set validates value and stores it in the named field. On error the field
// keeps its previous value.
func (m *Message) Set(name string, value any) error {
	if name == "type" {
		return fmt.Errorf("%w: type can not be changed", ErrReadOnly)
	}
	kind, ok := m.spec.Kind(name)
	if !ok {
		return fmt.Errorf("%w: %s message has no field %s", ErrInvalidField, m.spec.Type, name)
	}

	switch kind {
	case KindTime:
		t, err := checkTime(value)
		if err != nil {
			return err
		}
		m.time = t
	case KindData:
		d, err := checkData(value)
		if err != nil {
			return err
		}
		m.data = d
	default:
		n, err := checkValue(kind, name, value)
		if err != nil {
			return err
		}
		m.values[m.spec.index(name)] = n
	}
	return nil
}

// Delete always fails: fields can not be removed from a message
func (m *Message) Delete(name string) error {
	return fmt.Errorf("%w: %s can not be deleted", ErrReadOnly, name)
}

// Copy returns a new message of the same type. Fields in overrides replace
// the current values and are validated as in New.
func (m *Message) Copy(overrides map[string]any) (*Message, error) {
	if _, ok := overrides["type"]; ok {
		return nil, fmt.Errorf("%w: type can not be overridden in copy", ErrReadOnly)
	}

	c := &Message{
		spec:   m.spec,
		values: append([]int{}, m.values...),
		data:   m.data, // never mutated in place
		time:   m.time,
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := c.Set(name, overrides[name]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// StatusByte returns the first byte of the encoded message, with the
// channel in the lower 4 bits for channel messages.
func (m *Message) StatusByte() byte {
	b := m.spec.StatusByte
	if m.spec.IsChannel() {
		b |= byte(m.Channel())
	}
	return b
}

// Equal compares type and all type specific fields. Time is ignored.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.spec.Type == other.spec.Type &&
		slices.Equal(m.values, other.values) &&
		bytes.Equal(m.data, other.data)
}

// GoString renders every field including time, e.g.
// midi.Message(note_on, channel=0, note=60, velocity=64, time=0)
func (m *Message) GoString() string {
	parts := []string{m.spec.Type}
	for _, name := range m.spec.Fields {
		parts = append(parts, name+"="+m.formatField(name))
	}
	parts = append(parts, "time="+formatTime(m.time))
	return "midi.Message(" + strings.Join(parts, ", ") + ")"
}
