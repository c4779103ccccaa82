// Package bank groups parameters into a named, ordered collection, such as
// the controls of one synthesizer voice or effect.
//
// A Bank watches every parameter added to it and forwards each accepted
// change to its subscribers. It also tracks which parameters changed since
// the last ClearDirty, and can snapshot and restore normalised values.
package bank

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/mikedotalmond/parameters/pkg/parameter"
)

// Bank errors.
var (
	ErrParameterNotFound = errors.New("parameter not found")
	ErrDuplicateName     = errors.New("duplicate parameter name")
	ErrEmptyName         = errors.New("parameter name is empty")
)

// Subscriber is notified when any parameter in the bank changes.
type Subscriber interface {
	// OnParameterChanged is called after the parameter's own observers
	// registered before it was added to the bank.
	OnParameterChanged(c parameter.Control)
}

// Bank is an ordered set of uniquely named parameters.
type Bank struct {
	mu sync.RWMutex

	name string

	// controls indexed by name; order keeps insertion order.
	controls map[string]parameter.Control
	order    []string

	// stops removes the bank's watch from each control.
	stops map[string]func()

	// dirty holds names changed since the last ClearDirty.
	dirty map[string]bool

	subscribers []Subscriber
}

// New creates an empty bank.
func New(name string) *Bank {
	return &Bank{
		name:     name,
		controls: make(map[string]parameter.Control),
		stops:    make(map[string]func()),
		dirty:    make(map[string]bool),
	}
}

// Name returns the bank name.
func (b *Bank) Name() string {
	return b.name
}

// Add adds a parameter. Bank names must be unique and non-empty, even
// though parameter names alone need not be.
func (b *Bank) Add(c parameter.Control) error {
	name := c.Name()
	if name == "" {
		return ErrEmptyName
	}

	b.mu.Lock()
	if _, exists := b.controls[name]; exists {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	b.controls[name] = c
	b.order = append(b.order, name)
	b.mu.Unlock()

	stop := c.Watch(b.onChanged, 0)

	b.mu.Lock()
	b.stops[name] = stop
	b.mu.Unlock()
	return nil
}

// Remove removes a parameter and stops watching it.
func (b *Bank) Remove(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.controls[name]; !exists {
		return fmt.Errorf("%w: %s", ErrParameterNotFound, name)
	}
	if stop := b.stops[name]; stop != nil {
		stop()
	}
	delete(b.controls, name)
	delete(b.stops, name)
	delete(b.dirty, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a parameter by name.
func (b *Bank) Get(name string) (parameter.Control, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, exists := b.controls[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrParameterNotFound, name)
	}
	return c, nil
}

// Names returns the parameter names in insertion order.
func (b *Bank) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, len(b.order))
	copy(names, b.order)
	return names
}

// Controls returns the parameters in insertion order.
func (b *Bank) Controls() []parameter.Control {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]parameter.Control, 0, len(b.order))
	for _, name := range b.order {
		result = append(result, b.controls[name])
	}
	return result
}

// Len returns the number of parameters.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// ResetAll restores every parameter to its default and returns how many
// of them changed.
func (b *Bank) ResetAll() int {
	changed := 0
	for _, c := range b.Controls() {
		if c.SetToDefault() {
			changed++
		}
	}
	return changed
}

// Snapshot returns the normalised value of every parameter.
func (b *Bank) Snapshot() map[string]float64 {
	result := make(map[string]float64)
	for _, c := range b.Controls() {
		result[c.Name()] = c.NormalisedValue()
	}
	return result
}

// Restore sets normalised values from a snapshot in insertion order, so
// notifications arrive in the same order on every restore. Names missing
// from the bank are reported, sorted, after all known names have been
// applied.
func (b *Bank) Restore(snapshot map[string]float64) error {
	for _, c := range b.Controls() {
		if n, ok := snapshot[c.Name()]; ok {
			c.SetNormalisedValue(n)
		}
	}

	var missing []error
	for _, name := range slices.Sorted(maps.Keys(snapshot)) {
		if _, err := b.Get(name); err != nil {
			missing = append(missing, err)
		}
	}
	return errors.Join(missing...)
}

// DirtyNames returns the names of parameters changed since the last
// ClearDirty, in insertion order.
func (b *Bank) DirtyNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var names []string
	for _, name := range b.order {
		if b.dirty[name] {
			names = append(names, name)
		}
	}
	return names
}

// ClearDirty clears the changed set.
func (b *Bank) ClearDirty() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = make(map[string]bool)
}

// Subscribe adds a subscriber for change notifications.
func (b *Bank) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subscribers {
		if s == sub {
			return
		}
	}
	b.subscribers = append(b.subscribers, sub)
}

// Unsubscribe removes a subscriber.
func (b *Bank) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Close stops watching every parameter and drops all subscribers.
// The parameters themselves are left untouched.
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, stop := range b.stops {
		stop()
	}
	b.stops = make(map[string]func())
	b.subscribers = nil
}

// onChanged marks the parameter dirty and notifies all subscribers.
func (b *Bank) onChanged(c parameter.Control) {
	b.mu.Lock()
	b.dirty[c.Name()] = true
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.OnParameterChanged(c)
	}
}
