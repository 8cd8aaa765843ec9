package tree

import (
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

const baseDate = "2024-01-01T00:00:00.000Z"

func node(id string, completed bool, children ...model.Todo) model.Todo {
	if children == nil {
		children = []model.Todo{}
	}
	return model.Todo{
		ID:        id,
		Title:     "todo-" + id,
		Completed: completed,
		CreatedAt: baseDate,
		Priority:  model.PriorityMedium,
		Children:  children,
	}
}

func ids(list []model.Todo) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustFind(t *testing.T, list model.Forest, id string) model.Todo {
	t.Helper()
	found, ok := Find(list, id)
	if !ok {
		t.Fatalf("node %q not found", id)
	}
	return found
}

// checkInvariant fails for any parent whose flag disagrees with its children.
func checkInvariant(t *testing.T, list []model.Todo) {
	t.Helper()
	for _, n := range list {
		if len(n.Children) > 0 && n.Completed != allCompleted(n.Children) {
			t.Errorf("node %q completed=%v, children disagree", n.ID, n.Completed)
		}
		checkInvariant(t, n.Children)
	}
}
