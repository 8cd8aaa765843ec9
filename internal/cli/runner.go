package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carry what the root command resolved.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	Now    func() time.Time
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Logger == nil {
		opt.Logger = logging.Discard()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ls":
		return doList(opt, a)
	case "stats":
		return withSession(opt, doStats)
	case "add":
		if len(a) == 0 {
			return usage("tada add <title...>")
		}
		return withSession(opt, func(s *session.Session) int { return doAdd(s, strings.Join(a, " ")) })
	case "sub":
		if len(a) < 2 {
			return usage("tada sub <parent-id> <title...>")
		}
		return withSession(opt, func(s *session.Session) int { return doAddChild(s, a[0], strings.Join(a[1:], " ")) })
	case "done":
		if len(a) != 1 {
			return usage("tada done <id>")
		}
		return withSession(opt, func(s *session.Session) int { return doToggle(s, a[0]) })
	case "edit":
		if len(a) < 2 {
			return usage("tada edit <id> <title...>")
		}
		return withSession(opt, func(s *session.Session) int { return doEdit(s, a[0], strings.Join(a[1:], " ")) })
	case "prio":
		if len(a) != 2 {
			return usage("tada prio <id> <high|medium|low>")
		}
		return withSession(opt, func(s *session.Session) int { return doPriority(s, a[0], a[1]) })
	case "rm":
		if len(a) != 1 {
			return usage("tada rm <id>")
		}
		return withSession(opt, func(s *session.Session) int { return doRemove(s, a[0]) })
	case "batch-done", "batch-rm":
		if len(a) < 2 {
			return usage("tada " + cmd + " <parent-id> <child-id>...")
		}
		return withSession(opt, func(s *session.Session) int { return doBatch(s, cmd, a[0], "", a[1:]) })
	case "batch-prio":
		if len(a) < 3 {
			return usage("tada batch-prio <parent-id> <high|medium|low> <child-id>...")
		}
		return withSession(opt, func(s *session.Session) int { return doBatch(s, cmd, a[0], a[1], a[2:]) })
	case "mv":
		if len(a) != 3 {
			return usage("tada mv <parent-id> <source-id> <target-id>")
		}
		return withSession(opt, func(s *session.Session) int { return doMove(s, a[0], a[1], a[2]) })
	case "export":
		return doExport(opt, a)
	case "check":
		return doCheck(opt)
	case "ui":
		return withSession(opt, func(s *session.Session) int { return doInteractive(opt, s) })
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Out, `tada - a nested todo tracker

Usage:
  tada [-data file] [-theme classic|neon|mono] [-no-color] <subcommand> [args]

Subcommands:
  ls [-status s] [-priority p] [-search text]
                                   List the todo tree
  add <title...>                   Add a top-level todo
  sub <parent-id> <title...>       Add a child todo
  done <id>                        Toggle completion (applies to the whole subtree)
  edit <id> <title...>             Rename a todo
  prio <id> <high|medium|low>      Set priority
  rm <id>                          Remove a todo and its children
  batch-done <parent-id> <id>...   Complete several children at once
  batch-rm <parent-id> <id>...     Remove several children at once
  batch-prio <parent-id> <p> <id>...
                                   Set priority on several children
  mv <parent-id> <src-id> <dst-id> Move a child into another child's slot
  stats                            Show completion totals
  export [-o file|-] [-clipboard]  Export CSV
  check                            Validate the data file
  ui                               Interactive tree view

Ids can be shortened to any unique prefix (ls shows 8 characters).

Examples:
  tada add "Plan trip"
  tada sub 3f2a "Book flights"
  tada done 3f2a
  tada ls -status active -priority high
`)
}

func usage(msg string) int {
	ui.Fail("usage: " + msg)
	return 2
}

func openSession(opt Options) (*session.Session, error) {
	store := jsonstore.New(opt.Config.DataFile, opt.Config.LegacyDataFile, opt.Logger)
	return session.Open(store, session.Options{
		HistoryLimit: opt.Config.HistoryLimit,
		Now:          opt.Now,
		Logger:       opt.Logger,
	})
}

// withSession loads the data file, runs fn and saves when fn changed
// something and succeeded.
func withSession(opt Options, fn func(*session.Session) int) int {
	s, err := openSession(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	code := fn(s)
	if code != 0 {
		return code
	}
	if err := s.Save(); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	return 0
}

// fail reports err. Lookup and validation problems are the caller's
// mistake and exit 2; anything else exits 1.
func fail(action string, err error) int {
	ui.Fail(action + ": " + err.Error())
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, errNoMatch) {
		ui.Hint("run `tada ls` to see ids")
	}
	var verr validation.Error
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, errNoMatch),
		errors.Is(err, errAmbiguousID), errors.Is(err, session.ErrUnchanged),
		errors.As(err, &verr):
		return 2
	}
	return 1
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ui.Err)
	return fs
}
