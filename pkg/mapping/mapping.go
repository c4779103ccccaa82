package mapping

import (
	"errors"
	"fmt"
	"math"
)

// Mapping errors.
var (
	ErrDegenerateRange         = errors.New("degenerate range: min equals max")
	ErrInvalidExponentialRange = errors.New("exponential range must not include or cross zero")
	ErrNonFiniteBound          = errors.New("range bound is not finite")
	ErrUnsupportedLaw          = errors.New("unsupported interpolation law")
	ErrUnsupportedKind         = errors.New("unsupported scalar kind")
	ErrInvalidValue            = errors.New("invalid value")
)

// Mapping converts between real values in [min, max] and normalised values
// in [0, 1]. A Mapping is immutable once built.
type Mapping[T any] struct {
	law    Law
	min    T
	max    T
	lo, hi float64
	conv   scalar[T]
}

// New creates a numeric mapping. The kind is KindInt for integer types and
// KindFloat for floating point types.
func New[T Number](law Law, min, max T) (*Mapping[T], error) {
	return build(law, min, max, scalar[T](newNumberScalar[T]()))
}

// NewBool creates a two-state boolean mapping. The law is always LawNone.
func NewBool(min, max bool) (*Mapping[bool], error) {
	return build(LawNone, min, max, scalar[bool](boolScalar{}))
}

func build[T any](law Law, min, max T, conv scalar[T]) (*Mapping[T], error) {
	m := &Mapping[T]{
		law:  law,
		min:  min,
		max:  max,
		lo:   conv.toFloat(min),
		hi:   conv.toFloat(max),
		conv: conv,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping[T]) validate() error {
	if !m.law.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedLaw, m.law)
	}
	if isNonFinite(m.lo) || isNonFinite(m.hi) {
		return fmt.Errorf("%w: [%v, %v]", ErrNonFiniteBound, m.min, m.max)
	}
	if m.lo == m.hi {
		return fmt.Errorf("%w: [%v, %v]", ErrDegenerateRange, m.min, m.max)
	}
	if m.law == LawExponential {
		if m.lo == 0 || m.hi == 0 || (m.lo < 0) != (m.hi < 0) {
			return fmt.Errorf("%w: [%v, %v]", ErrInvalidExponentialRange, m.min, m.max)
		}
	}
	return nil
}

// Law returns the interpolation law.
func (m *Mapping[T]) Law() Law { return m.law }

// Kind returns the scalar kind of the real domain.
func (m *Mapping[T]) Kind() Kind { return m.conv.kind() }

// Min returns the real value mapped from normalised 0.
func (m *Mapping[T]) Min() T { return m.min }

// Max returns the real value mapped from normalised 1.
func (m *Mapping[T]) Max() T { return m.max }

// Map converts a normalised value to the real domain.
// Values outside [0, 1] are extrapolated, not clamped.
func (m *Mapping[T]) Map(normalised float64) T {
	return m.conv.fromFloat(m.mapFloat(normalised))
}

func (m *Mapping[T]) mapFloat(n float64) float64 {
	switch m.law {
	case LawLinear:
		if n == 1 {
			return m.hi
		}
		return m.lo + n*(m.hi-m.lo)
	case LawExponential:
		switch n {
		case 0:
			return m.lo
		case 1:
			return m.hi
		}
		return m.lo * math.Pow(m.hi/m.lo, n)
	default:
		if n >= 0.5 {
			return m.hi
		}
		return m.lo
	}
}

// MapInverse converts a real value to the normalised domain.
//
// For LawExponential a value of zero, or of the opposite sign to the
// bounds, has no normalised form and the result is not finite.
//
// For LawNone the result is 1 when value equals max and 0 otherwise,
// including for values that equal neither bound.
func (m *Mapping[T]) MapInverse(value T) float64 {
	v := m.conv.toFloat(value)
	switch m.law {
	case LawLinear:
		return (v - m.lo) / (m.hi - m.lo)
	case LawExponential:
		return math.Log(v/m.lo) / math.Log(m.hi/m.lo)
	default:
		if v == m.hi {
			return 1
		}
		return 0
	}
}

// Format renders a real value as text.
func (m *Mapping[T]) Format(value T) string {
	return m.conv.format(value)
}

// Parse reads a real value from text. It does not check the range.
func (m *Mapping[T]) Parse(s string) (T, error) {
	return m.conv.parse(s)
}

// String describes the mapping, e.g. "exponential int [20, 20000]".
func (m *Mapping[T]) String() string {
	return fmt.Sprintf("%s %s [%s, %s]", m.law, m.Kind(), m.Format(m.min), m.Format(m.max))
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
