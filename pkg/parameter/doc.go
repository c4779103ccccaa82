// Package parameter implements named, bounded, observable control
// parameters such as the knobs of a synthesizer.
//
// A Parameter holds one value of a fixed scalar kind. Its state is stored
// as a normalised float in [0, 1]; the real value is always derived through
// the parameter's Mapping:
//
//	freq, _ := parameter.New[int]("freq", mapping.LawExponential, 20, 20000)
//	freq.SetNormalisedValue(0.5)
//	freq.Value() // 632
//
// # Change notification
//
// Every mutation goes through a single gate. Observers are notified when
// the new normalised value differs from the stored one, or when the caller
// forces the notification (ForceValue, ForceNormalisedValue). The
// comparison is exact and happens on the normalised value, not on the
// rounded real value.
//
// Observers are registered with AddObserver. ObserveOnce makes the
// registration one-shot and ObserveTrigger emits to all observers right
// away. Registering the same observer twice has no effect.
//
// Notification is synchronous: observers run on the caller's goroutine
// before the mutating call returns, and may themselves mutate the
// parameter.
//
// # Concurrency
//
// A Parameter's fields are guarded, but the ordering of notifications
// across goroutines is not. Callers that share a Parameter between
// goroutines must serialise their mutations.
package parameter
