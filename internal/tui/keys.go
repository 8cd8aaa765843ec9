package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle, Add, AddChild, Edit, Delete, Priority key.Binding
	Mark, BatchDone, BatchDelete                  key.Binding
	BatchHigh, BatchMedium, BatchLow              key.Binding
	MoveUp, MoveDown                              key.Binding
	StatusFilter, PriorityFilter, Search          key.Binding
	Undo, Export, Copy, Quit                      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddChild:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add child")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Priority:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		Mark:           key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark")),
		BatchDone:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "complete marked")),
		BatchDelete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete marked")),
		BatchHigh:      key.NewBinding(key.WithKeys("H"), key.WithHelp("H/M/L", "prioritize marked")),
		BatchMedium:    key.NewBinding(key.WithKeys("M")),
		BatchLow:       key.NewBinding(key.WithKeys("L")),
		MoveUp:         key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:       key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		StatusFilter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		PriorityFilter: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "priority filter")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Undo:           key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Export:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Copy:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy csv")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.AddChild, k.Edit, k.Delete, k.Undo}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{
		k.Toggle, k.Add, k.AddChild, k.Edit, k.Delete, k.Priority,
		k.Mark, k.BatchDone, k.BatchDelete, k.BatchHigh,
		k.MoveUp, k.MoveDown,
		k.StatusFilter, k.PriorityFilter, k.Search,
		k.Undo, k.Export, k.Copy,
	}
}
