package main

import "slices"

// HistoryEntry records one applied move with how it was chosen.
type HistoryEntry struct {
	Move      Move
	ElapsedMs float64
	IsAi      bool
	Reason    string
	Depth     int
}

// MoveHistory is the ordered log of a session's moves, oldest first.
type MoveHistory []HistoryEntry

func (h *MoveHistory) Clear() {
	*h = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	*h = append(*h, entry)
}

func (h MoveHistory) Size() int {
	return len(h)
}

// All returns a copy the caller may keep.
func (h MoveHistory) All() []HistoryEntry {
	return slices.Clone(h)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h) == 0 {
		return HistoryEntry{}, false
	}
	return h[len(h)-1], true
}

// Count reports how many moves side has played.
func (h MoveHistory) Count(side Side) int {
	n := 0
	for _, entry := range h {
		if entry.Move.Side == side {
			n++
		}
	}
	return n
}
