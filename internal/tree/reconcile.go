package tree

import "github.com/Makepad-fr/tada/internal/model"

// ReconcileCompletion fixes a single node: if it has children, Completed
// becomes "all children completed". Leaves are returned as is.
func ReconcileCompletion(t model.Todo) model.Todo {
	if len(t.Children) == 0 {
		return t
	}
	t.Completed = allCompleted(t.Children)
	return t
}

// ReconcileTree applies ReconcileCompletion to every node, children
// before parents. If every node already holds, the input is returned.
func ReconcileTree(list model.Forest) model.Forest {
	var out model.Forest
	for i, t := range list {
		children := ReconcileTree(t.Children)
		next := t
		next.Children = children
		next = ReconcileCompletion(next)

		if out == nil && (next.Completed != t.Completed || !sameList(children, t.Children)) {
			out = clone(list)
		}
		if out != nil {
			out[i] = next
		}
	}
	if out == nil {
		return list
	}
	return out
}

// SetCompletionDeep sets Completed on t and every descendant.
func SetCompletionDeep(t model.Todo, completed bool) model.Todo {
	t.Completed = completed
	if len(t.Children) > 0 {
		children := make([]model.Todo, len(t.Children))
		for i, c := range t.Children {
			children[i] = SetCompletionDeep(c, completed)
		}
		t.Children = children
	}
	return t
}

// ToggleCompletion flips t and forces the new value into its whole
// subtree. Meant as an updater for UpdateTodos.
func ToggleCompletion(t model.Todo) model.Todo {
	return SetCompletionDeep(t, !t.Completed)
}

func allCompleted(list []model.Todo) bool {
	for _, c := range list {
		if !c.Completed {
			return false
		}
	}
	return true
}

// sameList reports slice identity: same backing array and length.
func sameList(a, b []model.Todo) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func clone(list []model.Todo) []model.Todo {
	out := make([]model.Todo, len(list))
	copy(out, list)
	return out
}
