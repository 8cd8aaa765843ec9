package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tree"
)

// ShortIDLen is how many id characters listings show.
const ShortIDLen = 8

// Filter narrows which children are listed. Roots are always listed;
// each deeper level goes through tree.FilterChildren, and a hidden child
// hides its subtree.
type Filter struct {
	Status   tree.StatusFilter
	Priority tree.PriorityFilter
	Search   string
}

// Active reports whether anything is filtered out.
func (f Filter) Active() bool {
	return (f.Status != "" && f.Status != tree.StatusAll) ||
		(f.Priority != "" && f.Priority != tree.PriorityAll) ||
		f.Search != ""
}

// Row is a visible todo with its position in the tree.
type Row struct {
	Todo     model.Todo
	ParentID string // empty for roots
	Depth    int
}

// Rows lists the visible todos depth-first.
func Rows(forest model.Forest, f Filter) []Row {
	return appendRows(nil, forest, "", 0, f)
}

func appendRows(rows []Row, list []model.Todo, parentID string, depth int, f Filter) []Row {
	if depth > 0 {
		list = tree.FilterChildren(list, f.Status, f.Search, f.Priority)
	}
	for _, t := range list {
		rows = append(rows, Row{Todo: t, ParentID: parentID, Depth: depth})
		rows = appendRows(rows, t.Children, t.ID, depth+1, f)
	}
	return rows
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// TreeLines renders rows as indented checklist lines.
func TreeLines(rows []Row) []string {
	t := Current()
	if len(rows) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		indent := ""
		for i := 0; i < r.Depth; i++ {
			indent += t.Indent
		}
		title := r.Todo.Title
		if runes := []rune(title); len(runes) > 80 {
			title = string(runes[:77]) + "..."
		}
		box, color := t.BoxUnchecked, t.Muted
		if r.Todo.Completed {
			box, color, title = t.BoxChecked, t.Success, C(t.Done, title)
		}
		badge := C(t.PriorityColor[r.Todo.Priority], t.PriorityBadge[r.Todo.Priority])
		out = append(out, fmt.Sprintf("%s %s%s %s %s",
			C(dim, ShortID(r.Todo.ID)), indent, C(color, box), badge, title))
	}
	return out
}

// StatsHeader is the one-line summary above a listing.
func StatsHeader(s tree.Stats) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Todos"),
		C(t.Success, t.SymDone), s.Completed,
		C(t.Pending, t.SymUnchecked), s.Pending(),
		C(t.Accent, "Total"), s.Total,
	)
}
