package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Priority tags a todo. Independent of completion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the valid values, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Next cycles high -> medium -> low -> high. Unknown values go to high.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Todo is a node of the todo forest. A node with children is completed
// exactly when all of its children are.
type Todo struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`
	Priority  Priority `json:"priority"`
	Children  []Todo   `json:"children"`
}

// MarshalJSON keeps "children" an array for leaves.
func (t Todo) MarshalJSON() ([]byte, error) {
	type plain Todo
	p := plain(t)
	if p.Children == nil {
		p.Children = []Todo{}
	}
	return json.Marshal(p)
}

// Forest is the ordered list of root todos.
type Forest = []Todo

// TimeLayout matches the ISO-8601 form browsers emit (millisecond precision, UTC).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// NewID returns a fresh globally unique id.
func NewID() string { return uuid.NewString() }

// Timestamp renders t in TimeLayout, in UTC.
func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

// New builds an incomplete, medium-priority leaf.
func New(title string, now time.Time) Todo {
	return Todo{
		ID:        NewID(),
		Title:     title,
		CreatedAt: Timestamp(now),
		Priority:  PriorityMedium,
		Children:  []Todo{},
	}
}
