package parameter

import (
	"fmt"

	"github.com/mikedotalmond/parameters/pkg/mapping"
	"github.com/mikedotalmond/parameters/pkg/signal"
)

// Control is the type-erased view of a Parameter. Banks, definition files
// and the shell work with Controls when the scalar type is only known at
// run time.
type Control interface {
	Name() string
	Unit() string
	Description() string
	Kind() mapping.Kind
	Law() mapping.Law

	// Range describes the mapping, e.g. "linear float [0, 1]".
	Range() string

	NormalisedValue() float64
	NormalisedDefaultValue() float64
	SetNormalisedValue(normalised float64) bool
	ForceNormalisedValue(normalised float64)
	SetNormalisedDefault(normalised float64)
	SetToDefault() bool

	// String returns the current real value as text.
	String() string

	// DefaultString returns the real default value as text.
	DefaultString() string

	// SetString parses a real value and sets it.
	SetString(value string) (bool, error)

	// SetDefaultString parses a real value and sets it as the default.
	SetDefaultString(value string) error

	// Watch calls fn after each accepted change. The returned function
	// removes the watch.
	Watch(fn func(Control), flags ObserveFlag) (stop func())
}

var (
	_ Control = (*Parameter[bool])(nil)
	_ Control = (*Parameter[int])(nil)
	_ Control = (*Parameter[float64])(nil)
)

// Range describes the parameter's mapping.
func (p *Parameter[T]) Range() string {
	return p.mapping.String()
}

// String returns the current real value as text.
func (p *Parameter[T]) String() string {
	return p.mapping.Format(p.Value())
}

// DefaultString returns the real default value as text.
func (p *Parameter[T]) DefaultString() string {
	return p.mapping.Format(p.DefaultValue())
}

// SetString parses value in the parameter's kind and sets it.
func (p *Parameter[T]) SetString(value string) (bool, error) {
	v, err := p.mapping.Parse(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", p.name, err)
	}
	n, err := p.normalise(value, v)
	if err != nil {
		return false, err
	}
	return p.apply(n, false), nil
}

// SetDefaultString parses value in the parameter's kind and sets it as the
// default.
func (p *Parameter[T]) SetDefaultString(value string) error {
	v, err := p.mapping.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	n, err := p.normalise(value, v)
	if err != nil {
		return err
	}
	p.storeDefault(v, n)
	return nil
}

// normalise maps v into the normalised domain, rejecting values the
// mapping cannot represent, such as zero on an exponential range.
func (p *Parameter[T]) normalise(text string, v T) (float64, error) {
	n := p.mapping.MapInverse(v)
	if !finite(n) {
		return 0, fmt.Errorf("%s: %w: %q is outside %s", p.name, mapping.ErrInvalidValue, text, p.mapping)
	}
	return n, nil
}

// Watch registers fn as an observer with the given flags.
func (p *Parameter[T]) Watch(fn func(Control), flags ObserveFlag) func() {
	o := signal.Func(func(changed *Parameter[T]) { fn(changed) })
	p.AddObserver(o, flags)
	return func() { p.RemoveObserver(o) }
}
