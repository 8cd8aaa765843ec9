package cli

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/tree"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// ---------------------------------------------------
// Read-only subcommands
// ---------------------------------------------------

func doList(opt Options, args []string) int {
	fs := newFlagSet("ls")
	status := fs.String("status", "all", "all, active or completed")
	priority := fs.String("priority", "all", "all, high, medium or low")
	search := fs.String("search", "", "case-insensitive title substring")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	var f ui.Filter
	var err error
	if f.Status, err = tree.ParseStatusFilter(*status); err != nil {
		return usage("ls: " + err.Error())
	}
	if f.Priority, err = tree.ParsePriorityFilter(*priority); err != nil {
		return usage("ls: " + err.Error())
	}
	f.Search = *search

	s, err := openSession(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	fmt.Fprintln(ui.Out, ui.StatsHeader(s.Stats()))
	for _, ln := range ui.TreeLines(ui.Rows(s.Forest(), f)) {
		fmt.Fprintln(ui.Out, ln)
	}
	return 0
}

func doStats(s *session.Session) int {
	st := s.Stats()
	ui.Panel([]string{
		ui.StatsHeader(st),
		ui.ProgressBar(st.Completed, st.Total, 24),
	})
	return 0
}

func doCheck(opt Options) int {
	store := jsonstore.New(opt.Config.DataFile, opt.Config.LegacyDataFile, opt.Logger)
	issues, err := store.Check()
	if err != nil {
		ui.Fail("check: " + err.Error())
		return 1
	}
	if len(issues) == 0 {
		ui.OK(store.Path() + " is valid")
		return 0
	}
	for _, is := range issues {
		fmt.Fprintln(ui.Out, is.String())
	}
	ui.Fail(fmt.Sprintf("%d problem(s) in %s; they are repaired on the next save", len(issues), store.Path()))
	return 1
}

func doExport(opt Options, args []string) int {
	fs := newFlagSet("export")
	out := fs.String("o", "", "output file, - for stdout (default <export_dir>/nested-todos-DATE.csv)")
	toClipboard := fs.Bool("clipboard", false, "copy the CSV to the clipboard instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	s, err := openSession(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	switch {
	case *toClipboard:
		if err := clipboard.WriteAll(s.CSV()); err != nil {
			return fail("export", err)
		}
		ui.OK("copied CSV to clipboard")
		return 0
	case *out == "-":
		fmt.Fprintln(ui.Out, s.CSV())
		return 0
	}

	path := *out
	if path == "" {
		path = filepath.Join(opt.Config.ExportDir, tree.ExportFileName(opt.Now()))
	}
	if err := s.ExportTo(path); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ui.OK("exported " + path)
	return 0
}

// ---------------------------------------------------
// Mutating subcommands (saved by withSession)
// ---------------------------------------------------

func doAdd(s *session.Session, title string) int {
	t, err := s.AddRoot(title)
	if err != nil {
		return fail("add", err)
	}
	ui.OK("added " + ui.ShortID(t.ID))
	return 0
}

func doAddChild(s *session.Session, parentArg, title string) int {
	parentID, err := resolveID(s.Forest(), parentArg)
	if err != nil {
		return fail("sub", err)
	}
	t, err := s.AddChild(parentID, title)
	if err != nil {
		return fail("sub", err)
	}
	ui.OK("added " + ui.ShortID(t.ID) + " under " + ui.ShortID(parentID))
	return 0
}

func doToggle(s *session.Session, arg string) int {
	id, err := resolveID(s.Forest(), arg)
	if err != nil {
		return fail("done", err)
	}
	if err := s.Toggle(id); err != nil {
		return fail("done", err)
	}
	t, _ := s.Find(id)
	if t.Completed {
		ui.OK("completed " + ui.ShortID(id))
	} else {
		ui.OK("reopened " + ui.ShortID(id))
	}
	return 0
}

func doEdit(s *session.Session, arg, title string) int {
	id, err := resolveID(s.Forest(), arg)
	if err != nil {
		return fail("edit", err)
	}
	if err := s.Rename(id, title); err != nil {
		return fail("edit", err)
	}
	ui.OK("renamed " + ui.ShortID(id))
	return 0
}

func doPriority(s *session.Session, arg, prio string) int {
	id, err := resolveID(s.Forest(), arg)
	if err != nil {
		return fail("prio", err)
	}
	p, err := session.ParsePriority(prio)
	if err != nil {
		return fail("prio", err)
	}
	if err := s.SetPriority(id, p); err != nil {
		return fail("prio", err)
	}
	ui.OK(fmt.Sprintf("%s is now %s", ui.ShortID(id), p))
	return 0
}

func doRemove(s *session.Session, arg string) int {
	id, err := resolveID(s.Forest(), arg)
	if err != nil {
		return fail("rm", err)
	}
	if err := s.Delete(id); err != nil {
		return fail("rm", err)
	}
	ui.OK("removed " + ui.ShortID(id))
	return 0
}

// doBatch runs batch-done, batch-rm or batch-prio. prio is only read by
// batch-prio.
func doBatch(s *session.Session, cmd, parentArg, prio string, childArgs []string) int {
	parentID, err := resolveID(s.Forest(), parentArg)
	if err != nil {
		return fail(cmd, err)
	}
	ids, err := resolveIDs(s.Forest(), childArgs)
	if err != nil {
		return fail(cmd, err)
	}
	before := s.Stats()

	switch cmd {
	case "batch-done":
		err = s.CompleteChildren(parentID, ids)
	case "batch-rm":
		err = s.DeleteChildren(parentID, ids)
	case "batch-prio":
		var p model.Priority
		if p, err = session.ParsePriority(prio); err == nil {
			err = s.SetChildrenPriority(parentID, ids, p)
		}
	}
	if err != nil {
		return fail(cmd, err)
	}

	after := s.Stats()
	switch cmd {
	case "batch-done":
		ui.OK(fmt.Sprintf("completed %d todo(s)", after.Completed-before.Completed))
	case "batch-rm":
		ui.OK(fmt.Sprintf("removed %d todo(s)", before.Total-after.Total))
	default:
		ui.OK("priority updated")
	}
	return 0
}

func doMove(s *session.Session, parentArg, sourceArg, targetArg string) int {
	ids, err := resolveIDs(s.Forest(), []string{parentArg, sourceArg, targetArg})
	if err != nil {
		return fail("mv", err)
	}
	if err := s.Move(ids[0], ids[1], ids[2]); err != nil {
		return fail("mv", err)
	}
	ui.OK("moved " + ui.ShortID(ids[1]))
	return 0
}

func doInteractive(opt Options, s *session.Session) int {
	saved, err := tui.Run(s, tui.Options{
		ExportDir: opt.Config.ExportDir,
		Now:       opt.Now,
		Logger:    opt.Logger,
	})
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	if saved {
		ui.OK("saved")
	}
	return 0
}
