package token

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONLSinkOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLSink(&buf)

	sink.Emit(newEvent("mint", map[string]string{"to": "alice", "amount": "100"}))
	sink.Emit(newEvent("burn", map[string]string{"sender": "alice", "token_id": "1"}))

	scanner := bufio.NewScanner(&buf)
	var lines []Event
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("bad line: %v", err)
		}
		lines = append(lines, ev)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Action != "mint" || lines[0].Attrs["to"] != "alice" {
		t.Errorf("unexpected first event: %+v", lines[0])
	}
	if lines[1].Action != "burn" || lines[1].Attrs["token_id"] != "1" {
		t.Errorf("unexpected second event: %+v", lines[1])
	}
	if lines[0].ID == lines[1].ID || lines[0].ID == "" {
		t.Errorf("expected distinct non-empty ids, got %q and %q", lines[0].ID, lines[1].ID)
	}
}

func TestMemorySinkByAction(t *testing.T) {
	sink := NewMemorySink()
	sink.Emit(newEvent("transfer", nil))
	sink.Emit(newEvent("mint", nil))
	sink.Emit(newEvent("mint", nil))

	if got := len(sink.ByAction("mint")); got != 2 {
		t.Errorf("expected 2 mint events, got %d", got)
	}
	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Errorf("expected empty after reset, got %d", got)
	}
}
