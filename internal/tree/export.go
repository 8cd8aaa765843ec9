package tree

import (
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// PathSeparator joins ancestor titles in Row.Path.
const PathSeparator = " > "

// CSVHeader is the fixed first line of ToCSV.
const CSVHeader = "level,path,parentId,parentTitle,id,title,priority,completed,createdAt"

// ExportFileName is the suggested file name for a CSV export made on day.
func ExportFileName(day time.Time) string {
	return "nested-todos-" + day.Format("2006-01-02") + ".csv"
}

// Row is one node flattened for export. ParentID and ParentTitle are nil
// for roots.
type Row struct {
	ID          string
	Title       string
	ParentID    *string
	ParentTitle *string
	Completed   bool
	Priority    model.Priority
	CreatedAt   string
	Depth       int
	Path        string
}

// FlattenForExport lists every node depth-first, parents before children.
func FlattenForExport(list model.Forest) []Row {
	rows := make([]Row, 0, CollectStats(list).Total)
	return flatten(rows, list, nil, nil)
}

func flatten(rows []Row, list []model.Todo, parent *model.Todo, titles []string) []Row {
	for _, t := range list {
		path := append(titles[:len(titles):len(titles)], t.Title)
		row := Row{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  t.Priority,
			CreatedAt: t.CreatedAt,
			Depth:     len(titles),
			Path:      strings.Join(path, PathSeparator),
		}
		if parent != nil {
			id, title := parent.ID, parent.Title
			row.ParentID, row.ParentTitle = &id, &title
		}
		rows = append(rows, row)
		rows = flatten(rows, t.Children, &t, path)
	}
	return rows
}

// ToCSV renders the forest as CSV: the header, then one line per node.
// Every text field is quoted; level and completed are bare. Lines are
// separated by "\n" with no trailing newline.
func ToCSV(list model.Forest) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, r := range FlattenForExport(list) {
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(r.Depth))
		for _, field := range []string{r.Path, deref(r.ParentID), deref(r.ParentTitle), r.ID, r.Title, string(r.Priority)} {
			b.WriteByte(',')
			b.WriteString(quote(field))
		}
		b.WriteByte(',')
		b.WriteString(strconv.FormatBool(r.Completed))
		b.WriteByte(',')
		b.WriteString(quote(r.CreatedAt))
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
