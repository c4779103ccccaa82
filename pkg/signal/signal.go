// Package signal provides a small synchronous publish/subscribe primitive.
//
// A Signal fans a payload out to every connected Observer on the calling
// goroutine. Observers connect either for the lifetime of the signal
// (Forever) or for a single emission (Once). Emission works on a snapshot
// of the registrations, so observers may connect, disconnect or emit again
// from inside their callback without affecting the round in flight.
package signal

import "sync"

// Lifetime controls how long an observer stays connected.
type Lifetime uint8

const (
	// Forever keeps the observer connected until it is disconnected.
	Forever Lifetime = iota

	// Once disconnects the observer after its first notification.
	Once
)

// String returns the lifetime name.
func (l Lifetime) String() string {
	switch l {
	case Forever:
		return "forever"
	case Once:
		return "once"
	default:
		return "unknown"
	}
}

// Observer receives payloads emitted by a Signal.
//
// Observers are identified by interface equality, so implementations must
// be comparable. Pointer types are the usual choice; use Func to wrap a
// plain function.
type Observer[P any] interface {
	OnChanged(payload P)
}

// FuncObserver adapts a function to the Observer interface. Its pointer is
// the identity used for Connect and Disconnect.
type FuncObserver[P any] struct {
	fn func(P)
}

// Func wraps fn in a new FuncObserver. Each call returns a distinct
// observer, even for the same function.
func Func[P any](fn func(P)) *FuncObserver[P] {
	return &FuncObserver[P]{fn: fn}
}

// OnChanged calls the wrapped function.
func (f *FuncObserver[P]) OnChanged(payload P) {
	f.fn(payload)
}

type connection[P any] struct {
	observer Observer[P]
	lifetime Lifetime
}

// Signal is a per-owner registry of observers.
// The zero value is ready to use.
type Signal[P any] struct {
	mu    sync.Mutex
	conns []connection[P]
}

// New creates an empty signal.
func New[P any]() *Signal[P] {
	return &Signal[P]{}
}

// Connect registers an observer. Connecting an observer that is already
// connected is a no-op; its original lifetime is kept.
func (s *Signal[P]) Connect(o Observer[P], lifetime Lifetime) {
	if o == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(o) >= 0 {
		return
	}
	s.conns = append(s.conns, connection[P]{observer: o, lifetime: lifetime})
}

// Disconnect removes an observer. Unknown observers are ignored.
func (s *Signal[P]) Disconnect(o Observer[P]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(o); i >= 0 {
		s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
	}
}

// IsConnected reports whether the observer is registered.
func (s *Signal[P]) IsConnected(o Observer[P]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(o) >= 0
}

// DisconnectAll removes every observer.
func (s *Signal[P]) DisconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns = nil
}

// Len returns the number of connected observers.
func (s *Signal[P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Emit notifies every connected observer in connection order.
// Once observers are disconnected before they are called.
func (s *Signal[P]) Emit(payload P) {
	s.mu.Lock()
	snapshot := make([]Observer[P], 0, len(s.conns))
	kept := make([]connection[P], 0, len(s.conns))
	for _, c := range s.conns {
		snapshot = append(snapshot, c.observer)
		if c.lifetime != Once {
			kept = append(kept, c)
		}
	}
	s.conns = kept
	s.mu.Unlock()

	for _, o := range snapshot {
		o.OnChanged(payload)
	}
}

func (s *Signal[P]) indexLocked(o Observer[P]) int {
	for i, c := range s.conns {
		if c.observer == o {
			return i
		}
	}
	return -1
}
