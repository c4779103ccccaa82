package parameter

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/mikedotalmond/parameters/pkg/mapping"
	"github.com/mikedotalmond/parameters/pkg/signal"
)

// ObserveFlag modifies how an observer is registered.
type ObserveFlag uint8

const (
	// ObserveTrigger emits to all observers as soon as the observer is added.
	ObserveTrigger ObserveFlag = 1 << iota

	// ObserveOnce removes the observer after its first notification.
	ObserveOnce
)

// Trigger returns true if the trigger flag is set.
func (f ObserveFlag) Trigger() bool { return f&ObserveTrigger != 0 }

// Once returns true if the once flag is set.
func (f ObserveFlag) Once() bool { return f&ObserveOnce != 0 }

// String returns the flags as a string.
func (f ObserveFlag) String() string {
	var s string
	if f.Trigger() {
		s += "T"
	}
	if f.Once() {
		s += "O"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Observer is notified with the parameter itself after each accepted change.
type Observer[T any] = signal.Observer[*Parameter[T]]

// Parameter is a named value with a fixed range and interpolation law.
type Parameter[T any] struct {
	mu sync.RWMutex

	name        string
	unit        string
	description string
	mapping     *mapping.Mapping[T]

	// normalisedValue is the only stored state; Value derives from it.
	normalisedValue float64

	defaultValue           T
	normalisedDefaultValue float64

	changed *signal.Signal[*Parameter[T]]
	logger  *slog.Logger
}

// New creates a numeric parameter. The range is validated by mapping.New.
func New[T mapping.Number](name string, law mapping.Law, min, max T, opts ...Option) (*Parameter[T], error) {
	m, err := mapping.New(law, min, max)
	if err != nil {
		return nil, err
	}
	return FromMapping(name, m, opts...), nil
}

// NewBool creates a two-state parameter.
func NewBool(name string, min, max bool, opts ...Option) (*Parameter[bool], error) {
	m, err := mapping.NewBool(min, max)
	if err != nil {
		return nil, err
	}
	return FromMapping(name, m, opts...), nil
}

// FromMapping creates a parameter that owns m. The default and current
// value start at the mapping's minimum.
func FromMapping[T any](name string, m *mapping.Mapping[T], opts ...Option) *Parameter[T] {
	o := applyOptions(opts)
	p := &Parameter[T]{
		name:                   name,
		unit:                   o.unit,
		description:            o.description,
		mapping:                m,
		defaultValue:           m.Min(),
		normalisedDefaultValue: 0,
		changed:                signal.New[*Parameter[T]](),
		logger:                 o.logger.With(slog.String("param", name)),
	}
	p.apply(p.normalisedDefaultValue, false)
	return p
}

// Name returns the parameter name. Names are labels and need not be unique.
func (p *Parameter[T]) Name() string { return p.name }

// Unit returns the unit of the real value, e.g. "Hz".
func (p *Parameter[T]) Unit() string { return p.unit }

// Description returns the human-readable description.
func (p *Parameter[T]) Description() string { return p.description }

// Mapping returns the parameter's mapping.
func (p *Parameter[T]) Mapping() *mapping.Mapping[T] { return p.mapping }

// Kind returns the scalar kind of the real value.
func (p *Parameter[T]) Kind() mapping.Kind { return p.mapping.Kind() }

// Law returns the interpolation law.
func (p *Parameter[T]) Law() mapping.Law { return p.mapping.Law() }

// Value returns the current real value.
func (p *Parameter[T]) Value() T {
	return p.mapping.Map(p.NormalisedValue())
}

// NormalisedValue returns the current normalised value.
func (p *Parameter[T]) NormalisedValue() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.normalisedValue
}

// SetValue sets the real value. Observers are notified and true is
// returned only if the normalised value changes.
func (p *Parameter[T]) SetValue(value T) bool {
	return p.apply(p.mapping.MapInverse(value), false)
}

// SetNormalisedValue sets the normalised value. Observers are notified and
// true is returned only if the value changes.
func (p *Parameter[T]) SetNormalisedValue(normalised float64) bool {
	return p.apply(normalised, false)
}

// ForceValue sets the real value and notifies observers even if the value
// is unchanged.
func (p *Parameter[T]) ForceValue(value T) {
	p.apply(p.mapping.MapInverse(value), true)
}

// ForceNormalisedValue sets the normalised value and notifies observers
// even if the value is unchanged.
func (p *Parameter[T]) ForceNormalisedValue(normalised float64) {
	p.apply(normalised, true)
}

// DefaultValue returns the real default value.
func (p *Parameter[T]) DefaultValue() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.defaultValue
}

// NormalisedDefaultValue returns the normalised default value.
func (p *Parameter[T]) NormalisedDefaultValue() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.normalisedDefaultValue
}

// SetDefault stores a new real default and applies it as the current value.
func (p *Parameter[T]) SetDefault(value T) {
	p.storeDefault(value, p.mapping.MapInverse(value))
}

// SetNormalisedDefault stores a new normalised default and applies it as the
// current value.
func (p *Parameter[T]) SetNormalisedDefault(normalised float64) {
	p.storeDefault(p.mapping.Map(normalised), normalised)
}

func (p *Parameter[T]) storeDefault(value T, normalised float64) {
	if !finite(normalised) {
		return
	}
	p.mu.Lock()
	p.defaultValue = value
	p.normalisedDefaultValue = normalised
	p.mu.Unlock()

	p.apply(normalised, false)
}

// SetToDefault restores the default value. It does not force: when the
// value already equals the default no notification is sent.
func (p *Parameter[T]) SetToDefault() bool {
	return p.apply(p.NormalisedDefaultValue(), false)
}

// apply is the single gate for value mutation. Non-finite candidates are
// dropped without a store or a notification.
func (p *Parameter[T]) apply(normalised float64, forced bool) bool {
	if !finite(normalised) {
		p.logger.Debug("non-finite value rejected", slog.Float64("normalised", normalised))
		return false
	}
	p.mu.Lock()
	if !forced && normalised == p.normalisedValue {
		p.mu.Unlock()
		return false
	}
	p.normalisedValue = normalised
	p.mu.Unlock()

	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		p.logger.Debug("parameter changed",
			slog.Float64("normalised", normalised),
			slog.String("value", p.mapping.Format(p.mapping.Map(normalised))),
			slog.Bool("forced", forced),
		)
	}

	p.changed.Emit(p)
	return true
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// AddObserver registers an observer. Adding an observer that is already
// registered does not register it twice. With ObserveTrigger all observers
// are notified immediately, whether or not the value changed.
func (p *Parameter[T]) AddObserver(o signal.Observer[*Parameter[T]], flags ObserveFlag) {
	lifetime := signal.Forever
	if flags.Once() {
		lifetime = signal.Once
	}
	p.changed.Connect(o, lifetime)

	if flags.Trigger() {
		p.changed.Emit(p)
	}
}

// AddObservers registers each observer with the same flags.
func (p *Parameter[T]) AddObservers(observers []signal.Observer[*Parameter[T]], flags ObserveFlag) {
	for _, o := range observers {
		p.AddObserver(o, flags)
	}
}

// RemoveObserver unregisters an observer. Unknown observers are ignored.
func (p *Parameter[T]) RemoveObserver(o signal.Observer[*Parameter[T]]) {
	p.changed.Disconnect(o)
}

// RemoveAllObservers unregisters every observer.
func (p *Parameter[T]) RemoveAllObservers() {
	p.changed.DisconnectAll()
}

// HasObserver reports whether o is registered.
func (p *Parameter[T]) HasObserver(o signal.Observer[*Parameter[T]]) bool {
	return p.changed.IsConnected(o)
}

// ObserverCount returns the number of registered observers.
func (p *Parameter[T]) ObserverCount() int {
	return p.changed.Len()
}
