package midi

import (
	"fmt"
	"math"
	"reflect"
)

// asInt converts any Go integer type to int. Values that do not fit in int
// are clamped to its bounds so range checks still reject them. Floats, bools
// and everything else are rejected.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return clampInt(n), true
	case uint:
		return clampUint(uint64(n)), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return clampUint(uint64(n)), true
	case uint64:
		return clampUint(n), true
	}
	return 0, false
}

func clampInt(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

func clampUint(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func checkInt(name string, v any, lo, hi int) (int, error) {
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrType, name, v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s must be in range %d .. %d, got %d", ErrRange, name, lo, hi, n)
	}
	return n, nil
}

// checkValue validates v for a non-data, non-time field and returns the
// value to store.
func checkValue(kind FieldKind, name string, v any) (int, error) {
	switch kind {
	case KindChannel:
		return checkInt(name, v, MinChannel, MaxChannel)
	case KindPitch:
		return checkInt(name, v, MinPitchwheel, MaxPitchwheel)
	case KindSongPos:
		return checkInt(name, v, MinSongPos, MaxSongPos)
	case KindGenericByte:
		return checkInt(name, v, MinDataByte, MaxDataByte)
	}
	return 0, fmt.Errorf("%w: %s is a %s field", ErrType, name, kind)
}

// checkData validates a sysex payload and returns a private copy
func checkData(v any) ([]byte, error) {
	switch d := v.(type) {
	case []byte:
		for _, b := range d {
			if b > MaxDataByte {
				return nil, fmt.Errorf("%w: data byte must be in range 0 .. 127, got %d", ErrRange, b)
			}
		}
		return append([]byte{}, d...), nil
	case []int:
		out := make([]byte, len(d))
		for i, n := range d {
			b, err := checkInt("data byte", n, MinDataByte, MaxDataByte)
			if err != nil {
				return nil, err
			}
			out[i] = byte(b)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: data must be a sequence, got nil", ErrType)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: data must be a sequence, got %T", ErrType, v)
	}
	out := make([]byte, rv.Len())
	for i := range out {
		b, err := checkInt("data byte", rv.Index(i).Interface(), MinDataByte, MaxDataByte)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

// checkTime accepts any integer or floating point value. Integers are
// stored as int64 and floats as float64.
func checkTime(v any) (any, error) {
	switch f := v.(type) {
	case int64:
		return f, nil
	case uint32:
		return int64(f), nil
	case uint64:
		if f > math.MaxInt64 {
			return float64(f), nil
		}
		return int64(f), nil
	case uint:
		if uint64(f) > math.MaxInt64 {
			return float64(f), nil
		}
		return int64(f), nil
	}
	if n, ok := asInt(v); ok {
		return int64(n), nil
	}
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	}
	return nil, fmt.Errorf("%w: time must be an integer or float, got %T", ErrType, v)
}
