package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPriorityNext(t *testing.T) {
	tests := []struct {
		in   Priority
		want Priority
	}{
		{PriorityHigh, PriorityMedium},
		{PriorityMedium, PriorityLow},
		{PriorityLow, PriorityHigh},
		{Priority("urgent"), PriorityHigh},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities {
		if !p.Valid() {
			t.Errorf("%q.Valid() = false", p)
		}
	}
	if Priority("").Valid() || Priority("HIGH").Valid() {
		t.Error("unexpected valid priority")
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 30, 0, 0, time.FixedZone("X", 3600))
	todo := New("Buy milk", now)

	if todo.ID == "" {
		t.Fatal("ID is empty")
	}
	if todo.CreatedAt != "2024-01-01T07:30:00.000Z" {
		t.Errorf("CreatedAt = %q", todo.CreatedAt)
	}
	if todo.Priority != PriorityMedium || todo.Completed {
		t.Errorf("unexpected defaults: %+v", todo)
	}
	if other := New("x", now); other.ID == todo.ID {
		t.Error("ids are not unique")
	}
}

func TestMarshalLeafChildren(t *testing.T) {
	b, err := json.Marshal(Todo{ID: "a", Title: "leaf", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"children":[]`) {
		t.Errorf("leaf children not an array: %s", b)
	}
}
