package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tree"
	"github.com/Makepad-fr/tada/internal/ui"
)

var (
	errNoMatch     = errors.New("no todo matches id")
	errAmbiguousID = errors.New("id prefix is ambiguous")
)

// resolveID expands an id or unique id prefix to a full id.
func resolveID(forest model.Forest, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w %q", errNoMatch, arg)
	}
	if _, ok := tree.Find(forest, arg); ok {
		return arg, nil
	}
	var matches []string
	for _, r := range tree.FlattenForExport(forest) {
		if strings.HasPrefix(r.ID, arg) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w %q", errNoMatch, arg)
	case 1:
		return matches[0], nil
	}
	short := make([]string, len(matches))
	for i, id := range matches {
		short[i] = ui.ShortID(id)
	}
	return "", fmt.Errorf("%w %q: matches %s", errAmbiguousID, arg, strings.Join(short, ", "))
}

func resolveIDs(forest model.Forest, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		id, err := resolveID(forest, a)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
