package session

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Makepad-fr/tada/internal/model"
)

// MaxTitleLength matches the inline editor's character limit.
const MaxTitleLength = 200

// CleanTitle trims title and checks it is non-empty and not too long.
func CleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	err := validation.Validate(title,
		validation.Required.Error("title cannot be empty"),
		validation.RuneLength(1, MaxTitleLength),
	)
	return title, err
}

// ParsePriority accepts high, medium or low in any case.
func ParsePriority(s string) (model.Priority, error) {
	p := strings.ToLower(strings.TrimSpace(s))
	err := validation.Validate(p,
		validation.Required.Error("priority cannot be empty"),
		validation.In("high", "medium", "low").Error("must be one of: high, medium, low"),
	)
	return model.Priority(p), err
}
