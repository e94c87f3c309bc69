package token

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a structured record of a ledger action. Every mutating operation
// produces one primary event plus zero or more mint/burn/transfer_nft
// sub-events, emitted synchronously after the operation commits.
type Event struct {
	ID        string            `json:"id"`
	Action    string            `json:"action"`
	Attrs     map[string]string `json:"attrs"`
	Timestamp time.Time         `json:"timestamp"`
}

func newEvent(action string, attrs map[string]string) Event {
	return Event{
		ID:        uuid.New().String(),
		Action:    action,
		Attrs:     attrs,
		Timestamp: time.Now().UTC(),
	}
}

// EventSink receives emitted events.
type EventSink interface {
	Emit(Event)
}

// MemorySink records events in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit appends the event to the sink.
func (s *MemorySink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of all recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByAction returns recorded events with the given action label.
func (s *MemorySink) ByAction(action string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all recorded events.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// JSONLSink writes one JSON object per event to an underlying writer.
type JSONLSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLSink creates a sink writing JSON lines to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

// Emit writes the event as a single JSON line. Encoding errors are dropped;
// event emission is a notification, never a reason to fail an operation.
func (s *JSONLSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(e)
}

// discardSink is used when no sink is configured.
type discardSink struct{}

func (discardSink) Emit(Event) {}
