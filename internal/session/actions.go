package session

import (
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tree"
)

// AddRoot appends a new root todo.
func (s *Session) AddRoot(title string) (model.Todo, error) {
	title, err := CleanTitle(title)
	if err != nil {
		return model.Todo{}, err
	}
	todo := model.New(title, s.now())
	s.Apply("add", func(f model.Forest) (model.Forest, bool) {
		next := make(model.Forest, 0, len(f)+1)
		return append(append(next, f...), todo), true
	})
	return todo, nil
}

// AddChild appends a child to parentID. The child starts with the
// parent's completion state.
func (s *Session) AddChild(parentID, title string) (model.Todo, error) {
	title, err := CleanTitle(title)
	if err != nil {
		return model.Todo{}, err
	}
	parent, ok := s.Find(parentID)
	if !ok {
		return model.Todo{}, ErrNotFound
	}
	child := model.New(title, s.now())
	child.Completed = parent.Completed
	s.Apply("add-child", func(f model.Forest) (model.Forest, bool) {
		return tree.UpdateTodos(f, parentID, tree.AppendChild(child))
	})
	return child, nil
}

// Toggle flips completion of id and its whole subtree.
func (s *Session) Toggle(id string) error {
	return s.update("toggle", id, tree.ToggleCompletion)
}

// Rename sets a new title.
func (s *Session) Rename(id, title string) error {
	title, err := CleanTitle(title)
	if err != nil {
		return err
	}
	return s.update("rename", id, func(t model.Todo) model.Todo {
		t.Title = title
		return t
	})
}

// SetPriority changes one todo's priority.
func (s *Session) SetPriority(id string, p model.Priority) error {
	if _, err := ParsePriority(string(p)); err != nil {
		return err
	}
	return s.update("priority", id, func(t model.Todo) model.Todo {
		t.Priority = p
		return t
	})
}

// Delete removes id and its subtree.
func (s *Session) Delete(id string) error {
	if !s.Apply("delete", func(f model.Forest) (model.Forest, bool) { return tree.DeleteTodo(f, id) }) {
		return ErrNotFound
	}
	return nil
}

// CompleteChildren completes the selected children of parentID, deeply.
func (s *Session) CompleteChildren(parentID string, ids []string) error {
	set := tree.NewIDSet(ids...)
	return s.batch("batch-complete", parentID, func(f model.Forest) (model.Forest, bool) {
		return tree.CompleteChildrenBatch(f, parentID, set)
	})
}

// DeleteChildren removes the selected children of parentID.
func (s *Session) DeleteChildren(parentID string, ids []string) error {
	set := tree.NewIDSet(ids...)
	return s.batch("batch-delete", parentID, func(f model.Forest) (model.Forest, bool) {
		return tree.DeleteChildrenBatch(f, parentID, set)
	})
}

// SetChildrenPriority sets p on the selected children of parentID.
func (s *Session) SetChildrenPriority(parentID string, ids []string, p model.Priority) error {
	if _, err := ParsePriority(string(p)); err != nil {
		return err
	}
	set := tree.NewIDSet(ids...)
	return s.batch("batch-priority", parentID, func(f model.Forest) (model.Forest, bool) {
		return tree.UpdateChildrenPriorityBatch(f, parentID, set, p)
	})
}

// Move puts child sourceID of parentID into targetID's slot.
func (s *Session) Move(parentID, sourceID, targetID string) error {
	return s.batch("reorder", parentID, func(f model.Forest) (model.Forest, bool) {
		return tree.ReorderWithinParent(f, parentID, sourceID, targetID)
	})
}

func (s *Session) update(name, id string, fn tree.Updater) error {
	if !s.Apply(name, func(f model.Forest) (model.Forest, bool) { return tree.UpdateTodos(f, id, fn) }) {
		return ErrNotFound
	}
	return nil
}

// batch distinguishes an unknown parent from a selection that matched nothing.
func (s *Session) batch(name, parentID string, op Op) error {
	if _, ok := s.Find(parentID); !ok {
		return ErrNotFound
	}
	if !s.Apply(name, op) {
		return ErrUnchanged
	}
	return nil
}
