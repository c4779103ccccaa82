package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestMappingBounds(t *testing.T) {
	tests := []struct {
		name     string
		law      Law
		min, max float64
	}{
		{"linear", LawLinear, 0, 2 * math.Pi},
		{"linear inverted", LawLinear, 10, -10},
		{"linear awkward", LawLinear, 0.1, 0.3},
		{"exponential", LawExponential, 20, 20000},
		{"exponential negative", LawExponential, -1, -100},
		{"exponential awkward", LawExponential, 3, 7},
		{"none", LawNone, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.law, tt.min, tt.max)
			require.NoError(t, err)

			assert.Equal(t, tt.min, m.Map(0))
			assert.Equal(t, tt.max, m.Map(1))
			assert.Equal(t, 0.0, m.MapInverse(tt.min))
			assert.InDelta(t, 1.0, m.MapInverse(tt.max), tolerance)
		})
	}
}

func TestMappingRoundTrip(t *testing.T) {
	mappings := map[string]*Mapping[float64]{}
	for name, def := range map[string]struct {
		law      Law
		min, max float64
	}{
		"linear":               {LawLinear, 0, 2 * math.Pi},
		"linear negative":      {LawLinear, -48, 12},
		"exponential":          {LawExponential, 20, 20000},
		"exponential short":    {LawExponential, 0.001, 0.01},
		"exponential negative": {LawExponential, -0.5, -500},
	} {
		m, err := New(def.law, def.min, def.max)
		require.NoError(t, err)
		mappings[name] = m
	}

	for name, m := range mappings {
		t.Run(name, func(t *testing.T) {
			for i := 0; i <= 1000; i++ {
				n := float64(i) / 1000
				got := m.MapInverse(m.Map(n))
				if math.Abs(got-n) > tolerance {
					t.Fatalf("MapInverse(Map(%v)) = %v", n, got)
				}
			}
		})
	}
}

func TestMappingLinear(t *testing.T) {
	m, err := New(LawLinear, 0, 2*math.Pi)
	require.NoError(t, err)

	assert.Equal(t, KindFloat, m.Kind())
	assert.Equal(t, LawLinear, m.Law())
	assert.InDelta(t, 0.5, m.MapInverse(math.Pi), tolerance)
	assert.InDelta(t, math.Pi, m.Map(0.5), tolerance)
}

func TestMappingLinearZeroInside(t *testing.T) {
	m, err := New(LawLinear, -60.0, 6.0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Map(m.MapInverse(0)))
	assert.Equal(t, -60.0, m.Map(0))
	assert.Equal(t, 6.0, m.Map(1))
}

func TestMappingExponentialOutsideDomain(t *testing.T) {
	m, err := New(LawExponential, 20.0, 20000.0)
	require.NoError(t, err)

	assert.True(t, math.IsInf(m.MapInverse(0), -1))
	assert.True(t, math.IsNaN(m.MapInverse(-5)))
}

func TestMappingExponentialInt(t *testing.T) {
	m, err := New(LawExponential, 20, 20000)
	require.NoError(t, err)

	assert.Equal(t, KindInt, m.Kind())
	assert.Equal(t, 20, m.Map(0))
	assert.Equal(t, 20000, m.Map(1))

	// Geometric midpoint of 20..20000 is 20*sqrt(1000) = 632.45...
	assert.Equal(t, 632, m.Map(0.5))
	assert.InDelta(t, 0.5, m.MapInverse(632), 1e-3)
}

func TestMappingIntRounding(t *testing.T) {
	m, err := New[int8](LawLinear, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, int8(5), m.Map(0.5))
	assert.Equal(t, int8(1), m.Map(0.05), "0.5 rounds away from zero")
	assert.Equal(t, int8(0), m.Map(0.04))
	assert.Equal(t, int8(3), m.Map(0.26))

	u, err := New[uint16](LawLinear, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, uint16(150), u.Map(0.5))
	assert.Equal(t, "150", u.Format(u.Map(0.5)))
}

func TestMappingExtrapolates(t *testing.T) {
	m, err := New(LawLinear, 0.0, 10.0)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, m.Map(1.5), tolerance)
	assert.InDelta(t, -5.0, m.Map(-0.5), tolerance)
	assert.InDelta(t, 2.0, m.MapInverse(20), tolerance)

	e, err := New(LawExponential, 1.0, 100.0)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, e.Map(1.5), 1e-6)
}

func TestMappingNoneNumeric(t *testing.T) {
	m, err := New(LawNone, 0, 7)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Map(0.49))
	assert.Equal(t, 7, m.Map(0.5))
	assert.Equal(t, 1.0, m.MapInverse(7))
	assert.Equal(t, 0.0, m.MapInverse(0))
	assert.Equal(t, 0.0, m.MapInverse(3), "values other than max map to 0")
}

func TestMappingBool(t *testing.T) {
	m, err := NewBool(false, true)
	require.NoError(t, err)

	assert.Equal(t, KindBool, m.Kind())
	assert.Equal(t, LawNone, m.Law())

	t.Run("Threshold", func(t *testing.T) {
		assert.False(t, m.Map(0))
		assert.False(t, m.Map(0.4999))
		assert.True(t, m.Map(0.5))
		assert.True(t, m.Map(1))
	})

	t.Run("Inverse", func(t *testing.T) {
		assert.Equal(t, 1.0, m.MapInverse(true))
		assert.Equal(t, 0.0, m.MapInverse(false))
	})

	t.Run("Inverted", func(t *testing.T) {
		inv, err := NewBool(true, false)
		require.NoError(t, err)
		assert.True(t, inv.Map(0))
		assert.False(t, inv.Map(1))
		assert.Equal(t, 1.0, inv.MapInverse(false))
		assert.Equal(t, 0.0, inv.MapInverse(true))
	})
}

func TestMappingValidation(t *testing.T) {
	t.Run("DegenerateLinear", func(t *testing.T) {
		_, err := New(LawLinear, 1.0, 1.0)
		assert.ErrorIs(t, err, ErrDegenerateRange)
	})

	t.Run("DegenerateNone", func(t *testing.T) {
		_, err := New(LawNone, 3, 3)
		assert.ErrorIs(t, err, ErrDegenerateRange)
	})

	t.Run("DegenerateBool", func(t *testing.T) {
		_, err := NewBool(true, true)
		assert.ErrorIs(t, err, ErrDegenerateRange)
	})

	t.Run("ExponentialZeroMin", func(t *testing.T) {
		_, err := New(LawExponential, 0.0, 1.0)
		assert.ErrorIs(t, err, ErrInvalidExponentialRange)
	})

	t.Run("ExponentialZeroMax", func(t *testing.T) {
		_, err := New(LawExponential, -1.0, 0.0)
		assert.ErrorIs(t, err, ErrInvalidExponentialRange)
	})

	t.Run("ExponentialOppositeSigns", func(t *testing.T) {
		_, err := New(LawExponential, -10, 10)
		assert.ErrorIs(t, err, ErrInvalidExponentialRange)
	})

	t.Run("NonFinite", func(t *testing.T) {
		_, err := New(LawLinear, 0, math.Inf(1))
		assert.ErrorIs(t, err, ErrNonFiniteBound)
		_, err = New(LawLinear, math.NaN(), 1)
		assert.ErrorIs(t, err, ErrNonFiniteBound)
	})

	t.Run("UnknownLaw", func(t *testing.T) {
		_, err := New(Law(9), 0, 1)
		assert.ErrorIs(t, err, ErrUnsupportedLaw)
	})
}

func TestMappingText(t *testing.T) {
	f, err := New(LawLinear, 0.0, 1.0)
	require.NoError(t, err)
	v, err := f.Parse(" 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
	assert.Equal(t, "0.25", f.Format(0.25))
	_, err = f.Parse("loud")
	assert.ErrorIs(t, err, ErrInvalidValue)

	i, err := New(LawExponential, 20, 20000)
	require.NoError(t, err)
	n, err := i.Parse("440")
	require.NoError(t, err)
	assert.Equal(t, 440, n)
	_, err = i.Parse("440.5")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "exponential int [20, 20000]", i.String())

	b, err := NewBool(false, true)
	require.NoError(t, err)
	for in, want := range map[string]bool{"true": true, "on": true, "0": false, "OFF": false} {
		got, err := b.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err = b.Parse("maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseLawAndKind(t *testing.T) {
	laws := map[string]Law{"none": LawNone, "Linear": LawLinear, "lin": LawLinear, "EXP": LawExponential, "exponential": LawExponential}
	for in, want := range laws {
		got, err := ParseLaw(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, want, mustParseLaw(t, got.String()))
	}
	_, err := ParseLaw("cubic")
	assert.ErrorIs(t, err, ErrUnsupportedLaw)

	kinds := map[string]Kind{"bool": KindBool, "Integer": KindInt, "float": KindFloat}
	for in, want := range kinds {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err = ParseKind("complex")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Equal(t, "unknown", Kind(7).String())
	assert.Equal(t, "unknown", Law(7).String())
}

func mustParseLaw(t *testing.T, s string) Law {
	t.Helper()
	l, err := ParseLaw(s)
	require.NoError(t, err)
	return l
}
