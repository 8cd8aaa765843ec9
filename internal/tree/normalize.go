package tree

import (
	"math"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// UntitledTitle replaces missing or non-string titles.
const UntitledTitle = "Untitled todo"

// Normalizer repairs decoded JSON into a well-formed forest.
// NewID and Now default to model.NewID and time.Now.
type Normalizer struct {
	NewID func() string
	Now   func() time.Time
}

// Normalize converts raw decoded JSON (as produced by json.Unmarshal into
// an any) into a forest using fresh uuids and the current time for
// missing fields.
func Normalize(raw any) model.Forest {
	return Normalizer{}.Normalize(raw)
}

// Normalize never fails: wrong shapes are replaced by defaults and
// non-array input yields an empty forest.
func (n Normalizer) Normalize(raw any) model.Forest {
	items, ok := raw.([]any)
	if !ok {
		return model.Forest{}
	}
	out := make(model.Forest, 0, len(items))
	for _, item := range items {
		out = append(out, n.todo(item))
	}
	return out
}

func (n Normalizer) todo(raw any) model.Todo {
	fields, _ := raw.(map[string]any)

	t := model.Todo{
		Title:     UntitledTitle,
		Completed: truthy(fields["completed"]),
		Priority:  model.PriorityMedium,
		Children:  n.Normalize(fields["children"]),
	}
	if id, ok := fields["id"].(string); ok {
		t.ID = id
	} else {
		t.ID = n.newID()
	}
	if title, ok := fields["title"].(string); ok {
		t.Title = title
	}
	if created, ok := fields["createdAt"].(string); ok {
		t.CreatedAt = created
	} else {
		t.CreatedAt = model.Timestamp(n.now())
	}
	if p, ok := fields["priority"].(string); ok && model.Priority(p).Valid() {
		t.Priority = model.Priority(p)
	}
	return t
}

func (n Normalizer) newID() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return model.NewID()
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// truthy mirrors loose boolean coercion of decoded JSON values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}
