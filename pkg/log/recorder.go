package log

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikedotalmond/parameters/pkg/bank"
	"github.com/mikedotalmond/parameters/pkg/parameter"
)

// Recorder turns bank notifications into journal events.
type Recorder struct {
	mu        sync.Mutex
	logger    Logger
	sessionID string
	seq       uint64
	taps      map[*bank.Bank]*bankTap
	now       func() time.Time
}

// bankTap subscribes to one bank on behalf of a recorder.
type bankTap struct {
	rec  *Recorder
	bank string
}

func (t *bankTap) OnParameterChanged(c parameter.Control) {
	t.rec.log(t.bank, CategoryChange, func(e *Event) {
		e.Change = &ChangeEvent{
			Parameter:  c.Name(),
			Kind:       c.Kind(),
			Law:        c.Law(),
			Normalised: c.NormalisedValue(),
			Value:      c.String(),
			Unit:       c.Unit(),
		}
	})
}

// NewRecorder creates a recorder with a fresh session ID.
// A nil logger discards events.
func NewRecorder(logger Logger) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Recorder{
		logger:    logger,
		sessionID: uuid.NewString(),
		taps:      make(map[*bank.Bank]*bankTap),
		now:       time.Now,
	}
}

// SessionID returns the ID shared by all events of this recorder.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Attach starts recording changes from b. Attaching twice is a no-op.
func (r *Recorder) Attach(b *bank.Bank) {
	r.mu.Lock()
	if _, exists := r.taps[b]; exists {
		r.mu.Unlock()
		return
	}
	tap := &bankTap{rec: r, bank: b.Name()}
	r.taps[b] = tap
	r.mu.Unlock()

	r.logSession(b, SessionStart)
	b.Subscribe(tap)
}

// Detach stops recording changes from b.
func (r *Recorder) Detach(b *bank.Bank) {
	r.mu.Lock()
	tap, exists := r.taps[b]
	delete(r.taps, b)
	r.mu.Unlock()

	if !exists {
		return
	}
	b.Unsubscribe(tap)
	r.logSession(b, SessionStop)
}

// Close detaches from every bank.
func (r *Recorder) Close() {
	r.mu.Lock()
	banks := make([]*bank.Bank, 0, len(r.taps))
	for b := range r.taps {
		banks = append(banks, b)
	}
	r.mu.Unlock()

	for _, b := range banks {
		r.Detach(b)
	}
}

func (r *Recorder) logSession(b *bank.Bank, action SessionAction) {
	r.log(b.Name(), CategorySession, func(e *Event) {
		e.Session = &SessionEvent{Action: action, Parameters: b.Len()}
	})
}

func (r *Recorder) log(bankName string, category Category, fill func(*Event)) {
	r.mu.Lock()
	r.seq++
	event := Event{
		Timestamp: r.now(),
		SessionID: r.sessionID,
		Sequence:  r.seq,
		Category:  category,
		Bank:      bankName,
	}
	r.mu.Unlock()

	fill(&event)
	r.logger.Log(event)
}
