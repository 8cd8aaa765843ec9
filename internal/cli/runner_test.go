package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

const seed = `[
  {"id": "root-1", "title": "Release", "completed": false, "createdAt": "2024-01-01T00:00:00.000Z", "priority": "high",
   "children": [
     {"id": "c1", "title": "Docs", "completed": false, "createdAt": "2024-01-01T00:00:00.000Z", "priority": "medium", "children": []},
     {"id": "c2", "title": "Tests", "completed": false, "createdAt": "2024-01-01T00:00:00.000Z", "priority": "medium", "children": []},
     {"id": "c3", "title": "Ship", "completed": false, "createdAt": "2024-01-01T00:00:00.000Z", "priority": "low", "children": []}
   ]}
]`

type env struct {
	opt      Options
	out, err *bytes.Buffer
}

func newEnv(t *testing.T, data string) *env {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataFile = filepath.Join(dir, "todos.json")
	cfg.LegacyDataFile = ""
	cfg.ExportDir = filepath.Join(dir, "exports")
	if data != "" {
		if err := os.WriteFile(cfg.DataFile, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e := &env{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	prevOut, prevErr := ui.Out, ui.Err
	ui.Out, ui.Err = e.out, e.err
	ui.SetTheme("mono")
	t.Cleanup(func() {
		ui.Out, ui.Err = prevOut, prevErr
		ui.SetTheme("classic")
	})

	e.opt = Options{
		Config: cfg,
		Logger: logging.Discard(),
		Now:    func() time.Time { return time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC) },
	}
	return e
}

func (e *env) run(args ...string) int {
	e.out.Reset()
	e.err.Reset()
	return Run(args, e.opt)
}

func (e *env) load(t *testing.T) model.Forest {
	t.Helper()
	b, err := os.ReadFile(e.opt.Config.DataFile)
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	var f model.Forest
	if err := json.Unmarshal(b, &f); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return f
}

func TestRunUsage(t *testing.T) {
	e := newEnv(t, "")
	tests := []struct {
		args []string
		code int
	}{
		{nil, 2},
		{[]string{"help"}, 0},
		{[]string{"nope"}, 2},
		{[]string{"add"}, 2},
		{[]string{"sub", "x"}, 2},
		{[]string{"mv", "a", "b"}, 2},
		{[]string{"batch-prio", "a", "high"}, 2},
		{[]string{"ls", "-status", "weird"}, 2},
	}
	for _, tt := range tests {
		if got := e.run(tt.args...); got != tt.code {
			t.Errorf("Run(%q) = %d, want %d (stderr %q)", tt.args, got, tt.code, e.err.String())
		}
	}
}

func TestAddSubDone(t *testing.T) {
	e := newEnv(t, "")

	if code := e.run("add", "Plan", "trip"); code != 0 {
		t.Fatalf("add = %d: %s", code, e.err.String())
	}
	f := e.load(t)
	if len(f) != 1 || f[0].Title != "Plan trip" || f[0].Priority != model.PriorityMedium {
		t.Fatalf("forest = %+v", f)
	}
	rootID := f[0].ID

	if code := e.run("sub", rootID[:6], "Book", "flights"); code != 0 {
		t.Fatalf("sub = %d: %s", code, e.err.String())
	}
	f = e.load(t)
	if len(f[0].Children) != 1 || f[0].Children[0].Title != "Book flights" {
		t.Fatalf("children = %+v", f[0].Children)
	}
	childID := f[0].Children[0].ID

	if code := e.run("done", childID); code != 0 {
		t.Fatalf("done = %d: %s", code, e.err.String())
	}
	f = e.load(t)
	if !f[0].Completed {
		t.Error("parent should complete with its only child")
	}
	if !strings.Contains(e.out.String(), "completed") {
		t.Errorf("out = %q", e.out.String())
	}

	e.run("ls")
	if !strings.Contains(e.out.String(), "[x] = Book flights") {
		t.Errorf("ls = %q", e.out.String())
	}
}

func TestEditPriorityRemove(t *testing.T) {
	e := newEnv(t, seed)

	if code := e.run("edit", "c1", "Write", "docs"); code != 0 {
		t.Fatalf("edit = %d: %s", code, e.err.String())
	}
	if code := e.run("prio", "c2", "HIGH"); code != 0 {
		t.Fatalf("prio = %d: %s", code, e.err.String())
	}
	if code := e.run("rm", "c3"); code != 0 {
		t.Fatalf("rm = %d: %s", code, e.err.String())
	}
	kids := e.load(t)[0].Children
	if len(kids) != 2 || kids[0].Title != "Write docs" || kids[1].Priority != model.PriorityHigh {
		t.Errorf("children = %+v", kids)
	}
}

func TestErrorsExitCodes(t *testing.T) {
	e := newEnv(t, seed)
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"unknown id", []string{"done", "zzz"}, 2, "no todo matches"},
		{"ambiguous prefix", []string{"done", "c"}, 2, "ambiguous"},
		{"blank title", []string{"edit", "c1", "   "}, 2, "cannot be empty"},
		{"bad priority", []string{"prio", "c1", "urgent"}, 2, "must be one of"},
		{"batch selects nothing", []string{"batch-done", "c1", "c2"}, 2, "nothing changed"},
		{"move to next sibling", []string{"mv", "root-1", "c1", "c2"}, 2, "nothing changed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.run(tt.args...); got != tt.code {
				t.Errorf("code = %d, want %d", got, tt.code)
			}
			if !strings.Contains(e.err.String(), tt.msg) {
				t.Errorf("stderr = %q, want %q", e.err.String(), tt.msg)
			}
		})
	}

	before, _ := os.ReadFile(e.opt.Config.DataFile)
	if string(before) != seed {
		t.Error("failed commands must not rewrite the data file")
	}
}

func TestInvalidJSONIsNotOverwritten(t *testing.T) {
	e := newEnv(t, "{broken")
	if code := e.run("add", "x"); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	b, _ := os.ReadFile(e.opt.Config.DataFile)
	if string(b) != "{broken" {
		t.Errorf("data file = %q", b)
	}
}

func TestBatchCommands(t *testing.T) {
	e := newEnv(t, seed)

	if code := e.run("batch-done", "root-1", "c1", "c2"); code != 0 {
		t.Fatalf("batch-done = %d: %s", code, e.err.String())
	}
	if !strings.Contains(e.out.String(), "completed 2 todo(s)") {
		t.Errorf("out = %q", e.out.String())
	}
	kids := e.load(t)[0].Children
	if !kids[0].Completed || !kids[1].Completed || kids[2].Completed {
		t.Errorf("children = %+v", kids)
	}

	if code := e.run("batch-prio", "root-1", "low", "c1", "c2"); code != 0 {
		t.Fatalf("batch-prio = %d: %s", code, e.err.String())
	}
	kids = e.load(t)[0].Children
	if kids[0].Priority != model.PriorityLow || kids[1].Priority != model.PriorityLow {
		t.Errorf("children = %+v", kids)
	}

	if code := e.run("batch-rm", "root-1", "c3"); code != 0 {
		t.Fatalf("batch-rm = %d: %s", code, e.err.String())
	}
	f := e.load(t)
	if len(f[0].Children) != 2 || !f[0].Completed {
		t.Errorf("root = %+v", f[0])
	}
}

func TestMove(t *testing.T) {
	e := newEnv(t, seed)
	if code := e.run("mv", "root-1", "c3", "c1"); code != 0 {
		t.Fatalf("mv = %d: %s", code, e.err.String())
	}
	kids := e.load(t)[0].Children
	got := kids[0].ID + "," + kids[1].ID + "," + kids[2].ID
	if got != "c3,c1,c2" {
		t.Errorf("order = %s", got)
	}
}

func TestListFilters(t *testing.T) {
	e := newEnv(t, seed)
	e.run("done", "c1")

	e.run("ls", "-status", "active")
	out := e.out.String()
	if strings.Contains(out, "Docs") || !strings.Contains(out, "Tests") {
		t.Errorf("active ls = %q", out)
	}

	e.run("ls", "-priority", "low", "-search", "SHI")
	out = e.out.String()
	if !strings.Contains(out, "Ship") || strings.Contains(out, "Tests") {
		t.Errorf("filtered ls = %q", out)
	}
	if !strings.Contains(out, "Release") {
		t.Error("roots are always listed")
	}
}

func TestStats(t *testing.T) {
	e := newEnv(t, seed)
	e.run("done", "c1")
	if code := e.run("stats"); code != 0 {
		t.Fatalf("stats = %d", code)
	}
	if out := e.out.String(); !strings.Contains(out, "Total 4") || !strings.Contains(out, "25%") {
		t.Errorf("stats = %q", out)
	}
}

func TestExport(t *testing.T) {
	e := newEnv(t, seed)

	if code := e.run("export"); code != 0 {
		t.Fatalf("export = %d: %s", code, e.err.String())
	}
	path := filepath.Join(e.opt.Config.ExportDir, "nested-todos-2024-06-30.csv")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(string(b), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d:\n%s", len(lines), b)
	}
	if lines[1] != `0,"Release","","","root-1","Release","high",false,"2024-01-01T00:00:00.000Z"` {
		t.Errorf("root line = %s", lines[1])
	}

	if code := e.run("export", "-o", "-"); code != 0 {
		t.Fatalf("export -o - = %d", code)
	}
	if e.out.String() != string(b)+"\n" {
		t.Errorf("stdout export differs from file:\n%s", e.out.String())
	}
}

func TestCheck(t *testing.T) {
	e := newEnv(t, seed)
	if code := e.run("check"); code != 0 {
		t.Errorf("valid file: code %d, %s", code, e.err.String())
	}

	e = newEnv(t, `[{"title": 5}]`)
	if code := e.run("check"); code != 1 {
		t.Errorf("invalid file: code %d", code)
	}
	if !strings.HasPrefix(e.out.String(), "[0]") {
		t.Errorf("issues = %q", e.out.String())
	}
}

func TestResolveID(t *testing.T) {
	e := newEnv(t, seed)
	s, err := openSession(e.opt)
	if err != nil {
		t.Fatal(err)
	}
	f := s.Forest()

	tests := []struct {
		arg, want string
		err       error
	}{
		{"c1", "c1", nil},
		{"root", "root-1", nil},
		{"c", "", errAmbiguousID},
		{"x", "", errNoMatch},
		{"", "", errNoMatch},
	}
	for _, tt := range tests {
		got, err := resolveID(f, tt.arg)
		if got != tt.want || (tt.err == nil) != (err == nil) {
			t.Errorf("resolveID(%q) = %q, %v", tt.arg, got, err)
		}
	}
}
