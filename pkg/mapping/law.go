package mapping

import (
	"fmt"
	"strings"
)

// Law is the interpolation law between the normalised and real domains.
type Law uint8

const (
	// LawNone switches between min and max at the normalised midpoint.
	LawNone Law = iota

	// LawLinear interpolates linearly between min and max.
	LawLinear

	// LawExponential interpolates geometrically between min and max.
	LawExponential
)

// String returns the law name.
func (l Law) String() string {
	switch l {
	case LawNone:
		return "none"
	case LawLinear:
		return "linear"
	case LawExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the defined laws.
func (l Law) Valid() bool {
	return l <= LawExponential
}

// ParseLaw parses a law name. Matching is case-insensitive and accepts the
// short forms "lin" and "exp".
func ParseLaw(s string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return LawNone, nil
	case "linear", "lin":
		return LawLinear, nil
	case "exponential", "exp":
		return LawExponential, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLaw, s)
	}
}

// Kind is the scalar kind a mapping produces in the real domain.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return KindBool, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "":
		return KindFloat, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}
