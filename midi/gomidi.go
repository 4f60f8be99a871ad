package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// ToGoMIDI returns the encoded message as a gomidi message, ready to pass
// to a gomidi sender.
func ToGoMIDI(m *Message) gomidi.Message {
	return gomidi.Message(Encode(m))
}

// Describe returns gomidi's description of the encoded message
func Describe(m *Message) string {
	return ToGoMIDI(m).String()
}
