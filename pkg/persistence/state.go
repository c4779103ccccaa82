package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mikedotalmond/parameters/pkg/bank"
)

// PresetVersion is the current version of the preset file format.
const PresetVersion = 1

// ErrUnsupportedVersion is returned when a preset file was written by a
// newer format version.
var ErrUnsupportedVersion = errors.New("unsupported preset version")

// Preset is the stored state of one bank.
type Preset struct {
	// Version is the preset file format version.
	Version int `json:"version"`

	// SavedAt is when the preset was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Bank is the name of the bank the preset was captured from.
	Bank string `json:"bank"`

	// Values maps parameter names to normalised values.
	Values map[string]float64 `json:"values"`

	// Display maps parameter names to real values as text.
	Display map[string]string `json:"display,omitempty"`
}

// Capture records the current state of b.
func Capture(b *bank.Bank) *Preset {
	p := &Preset{
		Bank:    b.Name(),
		Values:  make(map[string]float64, b.Len()),
		Display: make(map[string]string, b.Len()),
	}
	for _, c := range b.Controls() {
		p.Values[c.Name()] = c.NormalisedValue()
		p.Display[c.Name()] = c.String()
	}
	return p
}

// Apply restores the preset into b. Parameters missing from b are reported
// in the returned error after the rest have been applied.
func (p *Preset) Apply(b *bank.Bank) error {
	return b.Restore(p.Values)
}

// PresetStore manages persistence of a preset to a JSON file.
type PresetStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewPresetStore creates a new preset store.
func NewPresetStore(path string) *PresetStore {
	return &PresetStore{path: path, now: time.Now}
}

// Path returns the file the store reads and writes.
func (s *PresetStore) Path() string {
	return s.path
}

// Save persists the preset to disk. The file is replaced atomically.
func (s *PresetStore) Save(preset *Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	preset.Version = PresetVersion
	if preset.SavedAt.IsZero() {
		preset.SavedAt = s.now().UTC()
	}

	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Load reads the preset from disk.
// Returns nil, nil if the file doesn't exist.
func (s *PresetStore) Load() (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	preset := &Preset{}
	if err := json.Unmarshal(data, preset); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if preset.Version > PresetVersion {
		return nil, fmt.Errorf("%s: %w %d", s.path, ErrUnsupportedVersion, preset.Version)
	}
	return preset, nil
}

// Clear removes the preset file.
func (s *PresetStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
