package mapping

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Number is the set of numeric types a Mapping can be instantiated with.
type Number interface {
	constraints.Integer | constraints.Float
}

// scalar converts real values of type T to and from float64 and text.
type scalar[T any] interface {
	kind() Kind
	toFloat(v T) float64
	fromFloat(f float64) T
	format(v T) string
	parse(s string) (T, error)
}

type boolScalar struct{}

func (boolScalar) kind() Kind { return KindBool }

func (boolScalar) toFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func (boolScalar) fromFloat(f float64) bool { return f >= 0.5 }

func (boolScalar) format(v bool) string { return strconv.FormatBool(v) }

func (boolScalar) parse(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a bool", ErrInvalidValue, s)
	}
	return v, nil
}

// numberScalar handles every integer and float type. The reflect kind of T
// is resolved once when the mapping is built.
type numberScalar[T Number] struct {
	integer  bool
	unsigned bool
	bits     int
}

func newNumberScalar[T Number]() numberScalar[T] {
	t := reflect.TypeFor[T]()
	s := numberScalar[T]{bits: t.Bits()}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.integer = true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.integer = true
		s.unsigned = true
	}
	return s
}

func (s numberScalar[T]) kind() Kind {
	if s.integer {
		return KindInt
	}
	return KindFloat
}

func (s numberScalar[T]) toFloat(v T) float64 { return float64(v) }

func (s numberScalar[T]) fromFloat(f float64) T {
	if s.integer {
		return T(math.Round(f))
	}
	return T(f)
}

func (s numberScalar[T]) format(v T) string {
	switch {
	case s.unsigned:
		return strconv.FormatUint(uint64(v), 10)
	case s.integer:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(float64(v), 'g', -1, s.bits)
	}
}

func (s numberScalar[T]) parse(str string) (T, error) {
	str = strings.TrimSpace(str)
	switch {
	case s.unsigned:
		u, err := strconv.ParseUint(str, 10, s.bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidValue, str)
		}
		return T(u), nil
	case s.integer:
		i, err := strconv.ParseInt(str, 10, s.bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, str)
		}
		return T(i), nil
	default:
		f, err := strconv.ParseFloat(str, s.bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, str)
		}
		return T(f), nil
	}
}
