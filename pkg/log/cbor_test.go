package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/mikedotalmond/parameters/pkg/mapping"
)

func testChangeEvent(seq uint64, name, value string) Event {
	return Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		SessionID: "session-1",
		Sequence:  seq,
		Category:  CategoryChange,
		Bank:      "voice",
		Change: &ChangeEvent{
			Parameter:  name,
			Kind:       mapping.KindInt,
			Law:        mapping.LawExponential,
			Normalised: 0.5,
			Value:      value,
			Unit:       "Hz",
		},
	}
}

func TestEncodeDecodeChangeEvent(t *testing.T) {
	event := testChangeEvent(7, "freq", "632")

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
	if decoded.Sequence != 7 || decoded.SessionID != "session-1" || decoded.Bank != "voice" {
		t.Errorf("header mismatch: %+v", decoded)
	}
	if decoded.Change == nil {
		t.Fatal("Change is nil")
	}
	if *decoded.Change != *event.Change {
		t.Errorf("Change: got %+v, want %+v", *decoded.Change, *event.Change)
	}
	if decoded.Session != nil {
		t.Error("Session should be nil")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	event := testChangeEvent(1, "gain", "0.5")

	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same event twice produced different bytes")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}

func TestStreamEncoding(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := uint64(1); i <= 3; i++ {
		if err := enc.Encode(testChangeEvent(i, "gain", "1")); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	for i := uint64(1); i <= 3; i++ {
		var event Event
		if err := dec.Decode(&event); err != nil {
			t.Fatalf("Decode %d failed: %v", i, err)
		}
		if event.Sequence != i {
			t.Errorf("Sequence: got %d, want %d", event.Sequence, i)
		}
	}
}

func TestCategoryAndActionStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{CategoryChange.String(), "CHANGE"},
		{CategorySession.String(), "SESSION"},
		{Category(9).String(), "UNKNOWN"},
		{SessionStart.String(), "START"},
		{SessionStop.String(), "STOP"},
		{SessionAction(9).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
