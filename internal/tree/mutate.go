package tree

import "github.com/Makepad-fr/tada/internal/model"

// Updater transforms a single node. It may replace the children wholesale.
type Updater func(model.Todo) model.Todo

// UpdateTodos applies updater to the first node whose id matches, then
// reconciles that node and every ancestor on the way back to the root.
// An unknown id returns list itself and false.
func UpdateTodos(list model.Forest, id string, updater Updater) (model.Forest, bool) {
	next, _, changed := edit(list, id, func(t model.Todo) (model.Todo, bool) {
		u := updater(t)
		if u.Children == nil {
			u.Children = []model.Todo{}
		}
		return ReconcileCompletion(u), true
	})
	return next, changed
}

// DeleteTodo removes the first node whose id matches, with its subtree.
// Ancestors are reconciled since losing a child can flip them.
func DeleteTodo(list model.Forest, id string) (model.Forest, bool) {
	for i, t := range list {
		if t.ID == id {
			out := make(model.Forest, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
		if children, changed := DeleteTodo(t.Children, id); changed {
			t.Children = children
			return replaceAt(list, i, ReconcileCompletion(t)), true
		}
	}
	return list, false
}

// AppendChild returns an updater adding child as the last child. The
// child inherits the parent's completion so the parent does not flip.
func AppendChild(child model.Todo) Updater {
	return func(t model.Todo) model.Todo {
		child.Completed = t.Completed
		children := make([]model.Todo, 0, len(t.Children)+1)
		t.Children = append(append(children, t.Children...), child)
		return t
	}
}

// Find returns the first node with the given id, depth-first.
func Find(list model.Forest, id string) (model.Todo, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
		if found, ok := Find(t.Children, id); ok {
			return found, true
		}
	}
	return model.Todo{}, false
}

// edit locates the first node with id (pre-order) and replaces it with
// fn's result. The flags are (found, changed); when fn reports no change
// the original list is returned untouched.
func edit(list model.Forest, id string, fn func(model.Todo) (model.Todo, bool)) (model.Forest, bool, bool) {
	for i, t := range list {
		if t.ID == id {
			next, changed := fn(t)
			if !changed {
				return list, true, false
			}
			return replaceAt(list, i, next), true, true
		}
		children, found, changed := edit(t.Children, id, fn)
		if !found {
			continue
		}
		if !changed {
			return list, true, false
		}
		t.Children = children
		return replaceAt(list, i, ReconcileCompletion(t)), true, true
	}
	return list, false, false
}

func replaceAt(list model.Forest, i int, t model.Todo) model.Forest {
	out := clone(list)
	out[i] = t
	return out
}
