package tree

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Makepad-fr/tada/internal/model"
)

// StatusFilter selects children by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case StatusAll:
		return StatusActive
	case StatusActive:
		return StatusCompleted
	default:
		return StatusAll
	}
}

// ParseStatusFilter accepts all, active or completed ("" means all).
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusActive, StatusCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid status filter %q, must be one of: all, active, completed", s)
}

// PriorityFilter is "all" or one of the priorities.
type PriorityFilter string

// PriorityAll disables priority filtering.
const PriorityAll PriorityFilter = "all"

// Next cycles all -> high -> medium -> low -> all.
func (f PriorityFilter) Next() PriorityFilter {
	switch model.Priority(f) {
	case model.PriorityHigh:
		return PriorityFilter(model.PriorityMedium)
	case model.PriorityMedium:
		return PriorityFilter(model.PriorityLow)
	case model.PriorityLow:
		return PriorityAll
	}
	return PriorityFilter(model.PriorityHigh)
}

// ParsePriorityFilter accepts all, high, medium or low ("" means all).
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	f := PriorityFilter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == PriorityAll {
		return PriorityAll, nil
	}
	if !model.Priority(f).Valid() {
		return "", fmt.Errorf("invalid priority filter %q, must be one of: all, high, medium, low", s)
	}
	return f, nil
}

// FilterChildren returns the children passing all three predicates:
// status, priority, and a case-insensitive substring search on the title.
// A blank search matches everything. Only the given level is filtered.
func FilterChildren(children []model.Todo, status StatusFilter, search string, priority PriorityFilter) []model.Todo {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	out := make([]model.Todo, 0, len(children))
	for _, c := range children {
		switch {
		case status == StatusActive && c.Completed,
			status == StatusCompleted && !c.Completed:
			continue
		case priority != "" && priority != PriorityAll && c.Priority != model.Priority(priority):
			continue
		case needle != "" && !strings.Contains(fold.String(c.Title), needle):
			continue
		}
		out = append(out, c)
	}
	return out
}

// Stats counts nodes at every depth.
type Stats struct {
	Total     int
	Completed int
}

// Pending is Total minus Completed.
func (s Stats) Pending() int { return s.Total - s.Completed }

// CollectStats counts every node in list, descendants included.
func CollectStats(list model.Forest) Stats {
	var s Stats
	for _, t := range list {
		child := CollectStats(t.Children)
		s.Total += 1 + child.Total
		s.Completed += child.Completed
		if t.Completed {
			s.Completed++
		}
	}
	return s
}
