// Package tui is the interactive tree view: a Bubble Tea program over a
// session.Session.
package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/tree"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options configure the interactive view.
type Options struct {
	ExportDir string
	Now       func() time.Time
	Logger    *log.Logger
}

// Run starts the Bubble Tea program and saves the session on quit if it
// changed. It reports whether anything was saved.
func Run(s *session.Session, opt Options) (bool, error) {
	p := tea.NewProgram(newModel(s, opt), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return false, err
	}
	if !s.Dirty() {
		return false, nil
	}
	if err := s.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// rowItem adapts a ui.Row to bubbles/list.Item.
type rowItem struct {
	ui.Row
	marked bool
}

func (i rowItem) Title() string       { return i.Todo.Title }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.Todo.Title }

// Custom delegate to render one indented tree line per item.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.Todo.Title
	if it.Todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	badge := priorityStyles[it.Todo.Priority].Render(priorityBadges[it.Todo.Priority])
	mark := " "
	if it.marked {
		mark = markStyle.Render("*")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	indent := strings.Repeat("  ", it.Depth)
	fmt.Fprintf(w, "%s%s%s%s %s %s", prefix, mark, indent, box, badge, text)
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeAddChild
	modeEdit
	modeSearch
)

type modelTUI struct {
	sess *session.Session
	opt  Options
	keys keyMap
	list list.Model

	filter ui.Filter

	// Inline input for add, add-child, edit and search.
	mode     mode
	ti       textinput.Model
	targetID string // todo being edited or receiving a child
	inputErr string

	// Marked siblings for batch actions; they always share markParent.
	marked     map[string]bool
	markParent string

	status    string
	statusErr bool

	width, height int
}

func newModel(s *session.Session, opt Options) modelTUI {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Logger == nil {
		opt.Logger = log.Default()
	}
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("todo", "todos")
	// Several of our keys collide with the list's paging defaults.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page"))
	l.KeyMap.Quit = keys.Quit
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = session.MaxTitleLength

	m := modelTUI{
		sess:   s,
		opt:    opt,
		keys:   keys,
		list:   l,
		filter: ui.Filter{Status: tree.StatusAll, Priority: tree.PriorityAll},
		ti:     ti,
		marked: map[string]bool{},
		width:  80,
		height: 24,
	}
	m.resize()
	m.refresh()
	return m
}

// refresh rebuilds the list from the session, keeping the cursor on the
// same todo when it is still visible.
func (m *modelTUI) refresh() {
	selectedID := ""
	if it, ok := m.selected(); ok {
		selectedID = it.Todo.ID
	}
	prevIndex := m.list.Index()

	rows := ui.Rows(m.sess.Forest(), m.filter)
	items := make([]list.Item, 0, len(rows))
	stillMarked := map[string]bool{}
	cursor := -1
	for i, r := range rows {
		marked := m.marked[r.Todo.ID] && r.ParentID == m.markParent
		if marked {
			stillMarked[r.Todo.ID] = true
		}
		if r.Todo.ID == selectedID {
			cursor = i
		}
		items = append(items, rowItem{Row: r, marked: marked})
	}
	m.marked = stillMarked
	m.list.SetItems(items)
	m.list.Title = m.header()

	switch {
	case cursor >= 0:
		m.list.Select(cursor)
	case prevIndex >= len(items) && len(items) > 0:
		m.list.Select(len(items) - 1)
	case prevIndex >= 0 && prevIndex < len(items):
		m.list.Select(prevIndex)
	}
}

func (m modelTUI) header() string {
	st := m.sess.Stats()
	h := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), st.Completed,
		pendingStyle.Render("•"), st.Pending(),
		accentStyle.Render("Total"), st.Total,
	)
	if m.filter.Active() {
		h += mutedStyle.Render(fmt.Sprintf("   [%s · %s", m.filter.Status, m.filter.Priority))
		if m.filter.Search != "" {
			h += mutedStyle.Render(fmt.Sprintf(" · %q", m.filter.Search))
		}
		h += mutedStyle.Render("]")
	}
	return h
}

func (m modelTUI) selected() (rowItem, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	return it, ok
}

func (m *modelTUI) flash(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *modelTUI) flashErr(err error) {
	m.status, m.statusErr = err.Error(), true
	m.opt.Logger.Debug("tui action failed", "err", err)
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	m.status = ""

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Add):
		return m.startInput(modeAdd, "", "", "New todo title...")
	case key.Matches(km, m.keys.AddChild):
		if it, ok := m.selected(); ok {
			return m.startInput(modeAddChild, it.Todo.ID, "", "New child of "+it.Todo.Title+"...")
		}
		return m, nil
	case key.Matches(km, m.keys.Edit):
		if it, ok := m.selected(); ok {
			return m.startInput(modeEdit, it.Todo.ID, it.Todo.Title, "Edit title...")
		}
		return m, nil
	case key.Matches(km, m.keys.Search):
		return m.startInput(modeSearch, "", m.filter.Search, "Search titles...")
	case key.Matches(km, m.keys.StatusFilter):
		m.filter.Status = m.filter.Status.Next()
		m.refresh()
		return m, nil
	case key.Matches(km, m.keys.PriorityFilter):
		m.filter.Priority = m.filter.Priority.Next()
		m.refresh()
		return m, nil
	case key.Matches(km, m.keys.Undo):
		if m.sess.Undo() {
			m.flash("undone")
		} else {
			m.flash("nothing to undo")
		}
		m.refresh()
		return m, nil
	case key.Matches(km, m.keys.Export):
		m.export()
		return m, nil
	case key.Matches(km, m.keys.Copy):
		m.copyCSV()
		return m, nil
	}

	if it, ok := m.selected(); ok {
		if handled := m.onSelected(km, it); handled {
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// onSelected handles keys that act on the row under the cursor.
func (m *modelTUI) onSelected(km tea.KeyMsg, it rowItem) bool {
	id := it.Todo.ID
	var err error
	switch {
	case key.Matches(km, m.keys.Toggle):
		err = m.sess.Toggle(id)
	case key.Matches(km, m.keys.Delete):
		if err = m.sess.Delete(id); err == nil {
			m.flash("deleted " + it.Todo.Title + " (u to undo)")
		}
	case key.Matches(km, m.keys.Priority):
		err = m.sess.SetPriority(id, it.Todo.Priority.Next())
	case key.Matches(km, m.keys.Mark):
		m.toggleMark(it)
	case key.Matches(km, m.keys.BatchDone):
		err = m.batch(func(parent string, ids []string) error { return m.sess.CompleteChildren(parent, ids) })
	case key.Matches(km, m.keys.BatchDelete):
		err = m.batch(func(parent string, ids []string) error { return m.sess.DeleteChildren(parent, ids) })
	case key.Matches(km, m.keys.BatchHigh), key.Matches(km, m.keys.BatchMedium), key.Matches(km, m.keys.BatchLow):
		p := priorityForKey(km.String())
		err = m.batch(func(parent string, ids []string) error { return m.sess.SetChildrenPriority(parent, ids, p) })
	case key.Matches(km, m.keys.MoveUp):
		err = m.move(it, -1)
	case key.Matches(km, m.keys.MoveDown):
		err = m.move(it, +1)
	default:
		return false
	}
	if err != nil {
		m.flashErr(err)
	}
	return true
}

func (m *modelTUI) toggleMark(it rowItem) {
	if it.ParentID == "" {
		m.flash("only child todos can be marked")
		return
	}
	if it.ParentID != m.markParent {
		m.marked = map[string]bool{}
		m.markParent = it.ParentID
	}
	if m.marked[it.Todo.ID] {
		delete(m.marked, it.Todo.ID)
	} else {
		m.marked[it.Todo.ID] = true
	}
	m.flash(fmt.Sprintf("%d marked", len(m.marked)))
}

// batch runs fn over the marked siblings and clears the marks.
func (m *modelTUI) batch(fn func(parentID string, ids []string) error) error {
	if len(m.marked) == 0 {
		m.flash("mark children with m first")
		return nil
	}
	ids := make([]string, 0, len(m.marked))
	for id := range m.marked {
		ids = append(ids, id)
	}
	if err := fn(m.markParent, ids); err != nil {
		return err
	}
	m.flash(fmt.Sprintf("updated %d todo(s)", len(ids)))
	m.marked = map[string]bool{}
	return nil
}

// move swaps the selected todo with its previous (dir < 0) or next
// sibling. Moving down drops the next sibling into the selected slot.
func (m *modelTUI) move(it rowItem, dir int) error {
	if it.ParentID == "" {
		m.flash("top-level todos keep their order")
		return nil
	}
	parent, ok := m.sess.Find(it.ParentID)
	if !ok {
		return session.ErrNotFound
	}
	i := -1
	for j, c := range parent.Children {
		if c.ID == it.Todo.ID {
			i = j
			break
		}
	}
	j := i + dir
	if i < 0 || j < 0 || j >= len(parent.Children) {
		return nil
	}
	other := parent.Children[j].ID
	if dir < 0 {
		return m.sess.Move(parent.ID, it.Todo.ID, other)
	}
	return m.sess.Move(parent.ID, other, it.Todo.ID)
}

func priorityForKey(k string) model.Priority {
	switch k {
	case "H":
		return model.PriorityHigh
	case "L":
		return model.PriorityLow
	}
	return model.PriorityMedium
}

func (m *modelTUI) export() {
	path := filepath.Join(m.opt.ExportDir, tree.ExportFileName(m.opt.Now()))
	if err := m.sess.ExportTo(path); err != nil {
		m.flashErr(err)
		return
	}
	m.flash("exported " + path)
}

func (m *modelTUI) copyCSV() {
	if err := clipboard.WriteAll(m.sess.CSV()); err != nil {
		m.flashErr(fmt.Errorf("clipboard: %w", err))
		return
	}
	m.flash("copied CSV to clipboard")
}

func (m modelTUI) startInput(md mode, targetID, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.targetID = targetID
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	cmd := m.ti.Focus()
	m.resize()
	return m, cmd
}

func (m *modelTUI) stopInput() {
	m.mode = modeBrowse
	m.targetID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.mode == modeSearch {
				m.filter.Search = ""
				m.refresh()
			}
			m.stopInput()
			return m, nil
		case "enter":
			if err := m.submit(m.ti.Value()); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.stopInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) submit(value string) error {
	switch m.mode {
	case modeAdd:
		t, err := m.sess.AddRoot(value)
		if err != nil {
			return err
		}
		m.selectAfterRefresh(t.ID)
	case modeAddChild:
		t, err := m.sess.AddChild(m.targetID, value)
		if err != nil {
			return err
		}
		m.selectAfterRefresh(t.ID)
	case modeEdit:
		return m.sess.Rename(m.targetID, value)
	case modeSearch:
		m.filter.Search = strings.TrimSpace(value)
	}
	return nil
}

// selectAfterRefresh moves the cursor to id once the list is rebuilt.
func (m *modelTUI) selectAfterRefresh(id string) {
	m.refresh()
	for i, it := range m.list.Items() {
		if r, ok := it.(rowItem); ok && r.Todo.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.mode != modeBrowse {
		h -= 3
	}
	if m.status != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) View() string {
	content := m.list.View()
	if m.status != "" {
		st := mutedStyle.Render(m.status)
		if m.statusErr {
			st = errorStyle.Render(m.status)
		}
		content += "\n" + st
	}
	if m.mode != modeBrowse {
		title := map[mode]string{
			modeAdd:      "Add todo",
			modeAddChild: "Add child",
			modeEdit:     "Edit todo",
			modeSearch:   "Search (enter to apply, esc to clear)",
		}[m.mode]
		if m.inputErr != "" {
			title += ": " + errorStyle.Render(m.inputErr)
		}
		bar := panelStyle.Render(title + "\n" + m.ti.View())
		content += "\n" + bar
	}
	return panelStyle.Render(content)
}
