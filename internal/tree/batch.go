package tree

import "github.com/Makepad-fr/tada/internal/model"

// IDSet selects children for the batch operators.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// The batch operators only touch the direct children of the parent; they
// never look for ids among grandchildren. An empty set, an unknown parent
// or a set matching none of the parent's children leaves the forest as is.

// CompleteChildrenBatch marks every selected child of parentID completed,
// together with each selected child's whole subtree.
func CompleteChildrenBatch(list model.Forest, parentID string, ids IDSet) (model.Forest, bool) {
	return mapChildren(list, parentID, ids, func(c model.Todo) model.Todo {
		return SetCompletionDeep(c, true)
	})
}

// UpdateChildrenPriorityBatch sets priority on every selected child of parentID.
func UpdateChildrenPriorityBatch(list model.Forest, parentID string, ids IDSet, priority model.Priority) (model.Forest, bool) {
	return mapChildren(list, parentID, ids, func(c model.Todo) model.Todo {
		c.Priority = priority
		return c
	})
}

// DeleteChildrenBatch removes every selected child of parentID with its subtree.
func DeleteChildrenBatch(list model.Forest, parentID string, ids IDSet) (model.Forest, bool) {
	if len(ids) == 0 {
		return list, false
	}
	next, _, changed := edit(list, parentID, func(t model.Todo) (model.Todo, bool) {
		kept := make([]model.Todo, 0, len(t.Children))
		for _, c := range t.Children {
			if !ids.Has(c.ID) {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(t.Children) {
			return t, false
		}
		t.Children = kept
		return ReconcileCompletion(t), true
	})
	return next, changed
}

func mapChildren(list model.Forest, parentID string, ids IDSet, fn func(model.Todo) model.Todo) (model.Forest, bool) {
	if len(ids) == 0 {
		return list, false
	}
	next, _, changed := edit(list, parentID, func(t model.Todo) (model.Todo, bool) {
		var children []model.Todo
		for i, c := range t.Children {
			if !ids.Has(c.ID) {
				continue
			}
			if children == nil {
				children = clone(t.Children)
			}
			children[i] = fn(c)
		}
		if children == nil {
			return t, false
		}
		t.Children = children
		return ReconcileCompletion(t), true
	})
	return next, changed
}
