package tree

import "github.com/Makepad-fr/tada/internal/model"

// ReorderWithinParent moves child sourceID of parentID into the slot
// targetID occupies. When the source sits before the target, removing it
// shifts the target down by one, so the insert index is targetIndex-1.
//
// Nothing changes if either id is not a direct child, if they are equal,
// or if the move would leave the order as it was (dropping a child on its
// next sibling).
func ReorderWithinParent(list model.Forest, parentID, sourceID, targetID string) (model.Forest, bool) {
	if sourceID == targetID {
		return list, false
	}
	next, _, changed := edit(list, parentID, func(t model.Todo) (model.Todo, bool) {
		from, to := indexOf(t.Children, sourceID), indexOf(t.Children, targetID)
		if from < 0 || to < 0 {
			return t, false
		}
		if from < to {
			to--
		}
		if from == to {
			return t, false
		}
		t.Children = move(t.Children, from, to)
		return ReconcileCompletion(t), true
	})
	return next, changed
}

func indexOf(list []model.Todo, id string) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// move returns a copy of list with the element at from relocated to index
// to, where to is an index into the list after removal.
func move(list []model.Todo, from, to int) []model.Todo {
	moved := list[from]
	rest := make([]model.Todo, 0, len(list))
	rest = append(rest, list[:from]...)
	rest = append(rest, list[from+1:]...)

	out := make([]model.Todo, 0, len(list))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	return append(out, rest[to:]...)
}
