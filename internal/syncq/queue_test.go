package syncq

import (
	"testing"
)

func TestQueueRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	commands, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(commands) != 0 {
		t.Fatalf("fresh queue has %d commands", len(commands))
	}

	first := Command{
		Method: "POST",
		Path:   "/v1/trades",
		Body:   map[string]any{"to_team_id": "gbm"},
	}
	if err := Push(first); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := Push(Command{Method: "POST", Path: "/v1/strategy"}); err != nil {
		t.Fatalf("Push: %v", err)
	}

	commands, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("queue = %d commands, want 2", len(commands))
	}
	if commands[0].Path != "/v1/trades" || commands[0].Body["to_team_id"] != "gbm" {
		t.Fatalf("first command = %+v", commands[0])
	}

	// Replay keeps only what has not gone through yet.
	if err := Save(commands[1:]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	commands, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(commands) != 1 || commands[0].Path != "/v1/strategy" {
		t.Fatalf("queue after replay = %+v", commands)
	}
}

func TestSaveEmptyQueue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save([]Command{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	commands, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(commands) != 0 {
		t.Fatalf("queue = %d commands, want 0", len(commands))
	}
}
