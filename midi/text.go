package midi

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"go-midimsg/debug"
)

// Format returns the one line text form of m, e.g.
//
//	note_on channel=0 note=60 velocity=64
//
// With includeTime the timestamp is written first.
func Format(m *Message, includeTime bool) string {
	words := make([]string, 0, len(m.spec.Fields)+2)
	if includeTime {
		words = append(words, formatTime(m.time))
	}
	words = append(words, m.spec.Type)
	for _, name := range m.spec.Fields {
		words = append(words, name+"="+m.formatField(name))
	}
	return strings.Join(words, " ")
}

// String is Format(m, false)
func (m *Message) String() string {
	return Format(m, false)
}

func (m *Message) formatField(name string) string {
	if name == "data" {
		parts := make([]string, len(m.data))
		for i, b := range m.data {
			parts[i] = strconv.Itoa(int(b))
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return strconv.Itoa(m.values[m.spec.index(name)])
}

func formatTime(t any) string {
	switch v := t.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return fmt.Sprint(t)
}

// parseNumber tries an integer, then a float
func parseNumber(s string) (any, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

func isZero(t any) bool {
	switch v := t.(type) {
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

// Parse reads a message from its text form:
//
//	[time] type [name=value ...]
//
// Unlike New, the type must be given by name. A leading time of zero is
// indistinguishable from no time and leaves the default in place.
func Parse(line string) (*Message, error) {
	return DefaultRegistry().Parse(line)
}

// Parse is the package level Parse against r
func (r *Registry) Parse(line string) (*Message, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, ErrEmpty
	}

	t, hasTime := parseNumber(words[0])
	if hasTime {
		words = words[1:]
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: no message found after number", ErrEmpty)
		}
	}

	spec, err := r.ByName(words[0])
	if err != nil {
		return nil, err
	}
	m, err := r.New(spec.Type, nil)
	if err != nil {
		return nil, err
	}
	if hasTime && !isZero(t) {
		if err := m.Set("time", t); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	for _, arg := range words[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.Contains(value, "=") {
			return nil, fmt.Errorf("%w: %q: missing or extraneous equals sign", ErrMalformedArgument, arg)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s passed more than once", ErrDuplicateArgument, name)
		}
		seen[name] = true

		if name == "data" {
			data, err := parseData(value)
			if err != nil {
				return nil, err
			}
			if err := m.Set("data", data); err != nil {
				return nil, err
			}
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%s: value is not an integer", ErrMalformedArgument, name, value)
		}
		if err := m.Set(name, n); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// parseData reads "(b0,b1,...)". "()" is an empty payload.
func parseData(value string) ([]int, error) {
	if !strings.HasPrefix(value, "(") || !strings.HasSuffix(value, ")") || len(value) < 2 {
		return nil, fmt.Errorf("%w: missing parentheses in %q", ErrMalformedData, value)
	}
	inner := value[1 : len(value)-1]
	if inner == "" {
		return []int{}, nil
	}
	pieces := strings.Split(inner, ",")
	out := make([]int, len(pieces))
	for i, p := range pieces {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to parse data byte %q", ErrMalformedData, p)
		}
		out[i] = n
	}
	return out, nil
}

// ParseStream parses one message per line. Text from '#' to the end of a
// line is a comment and blank lines are skipped. Each parsed line yields
// either a message or a *LineError; a bad line does not stop the stream.
func ParseStream(lines iter.Seq[string]) iter.Seq2[*Message, error] {
	return DefaultRegistry().ParseStream(lines)
}

// ParseStream is the package level ParseStream against r
func (r *Registry) ParseStream(lines iter.Seq[string]) iter.Seq2[*Message, error] {
	return func(yield func(*Message, error) bool) {
		n := 0
		for line := range lines {
			n++
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			m, err := r.Parse(line)
			if err != nil {
				debug.Log("text", "line %d: %v", n, err)
				if !yield(nil, &LineError{Line: n, Err: err}) {
					return
				}
				continue
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}
