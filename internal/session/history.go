package session

import "github.com/Makepad-fr/tada/internal/model"

// History is a bounded stack of forest snapshots. Snapshots share
// structure with later forests, which is safe since forests are never
// modified in place.
type History struct {
	limit int
	snaps []model.Forest
}

// NewHistory keeps at most limit snapshots (minimum 1).
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Push records f, dropping the oldest snapshot when full.
func (h *History) Push(f model.Forest) {
	if len(h.snaps) == h.limit {
		h.snaps = append(h.snaps[:0:0], h.snaps[1:]...)
	}
	h.snaps = append(h.snaps, f)
}

// Pop removes and returns the latest snapshot.
func (h *History) Pop() (model.Forest, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	last := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	return last, true
}

// Len is the number of undo steps available.
func (h *History) Len() int { return len(h.snaps) }
