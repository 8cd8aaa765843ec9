package ui

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	Done                                          string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymUnchecked                         string
	Indent                                        string
	PriorityColor                                 map[model.Priority]string
	PriorityBadge                                 map[model.Priority]string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	disableColor = false
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			Done: dim + strike,
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
			Indent: "  ",
			PriorityColor: map[model.Priority]string{
				model.PriorityHigh: "\033[91m", model.PriorityMedium: "\033[96m", model.PriorityLow: fgGray,
			},
			PriorityBadge: map[model.Priority]string{
				model.PriorityHigh: "▲", model.PriorityMedium: "■", model.PriorityLow: "▼",
			},
		}
	case "mono":
		disableColor = true
		current = Theme{
			Title: "", Muted: "", Accent: "", Success: "", Error: "", Pending: "", Done: "",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
			Indent: "  ",
			PriorityColor: map[model.Priority]string{},
			PriorityBadge: map[model.Priority]string{
				model.PriorityHigh: "!", model.PriorityMedium: "=", model.PriorityLow: ".",
			},
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			Done: dim,
			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
			Indent: "  ",
			PriorityColor: map[model.Priority]string{
				model.PriorityHigh: fgRed, model.PriorityMedium: fgCyan, model.PriorityLow: fgGray,
			},
			PriorityBadge: map[model.Priority]string{
				model.PriorityHigh: "H", model.PriorityMedium: "M", model.PriorityLow: "L",
			},
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
