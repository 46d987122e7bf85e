package buffer

// Snapshot is an independent copy of a buffer's lines. It carries no cursor.
type Snapshot struct {
	lines []string
}

func (s Snapshot) Lines() []string {
	return append([]string(nil), s.lines...)
}

func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{lines: append([]string(nil), b.Lines...)}
}

// Restore installs s as the buffer content and resets the cursor to the
// origin, since snapshots do not record cursor positions.
func (b *Buffer) Restore(s Snapshot) {
	b.Lines = s.Lines()
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	b.Cursor = Cursor{}
	b.RecomputeDirty()
}

type HistoryState int

const (
	// Clean means the redo stack is empty.
	Clean HistoryState = iota
	// Divergent means an undo happened and can still be redone.
	Divergent
)

// History is an undo/redo pair of snapshot stacks.
type History struct {
	undos []Snapshot
	redos []Snapshot
	limit int
}

// NewHistory returns a history that keeps at most limit undo entries.
// A limit <= 0 keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Capture records the state from just before a mutation and drops any redo
// lineage.
func (h *History) Capture(s Snapshot) {
	h.undos = append(h.undos, Snapshot{lines: s.Lines()})
	if h.limit > 0 && len(h.undos) > h.limit {
		h.undos = append([]Snapshot(nil), h.undos[len(h.undos)-h.limit:]...)
	}
	h.redos = nil
}

func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undos) == 0 {
		return Snapshot{}, false
	}
	top := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	h.redos = append(h.redos, current)
	return top, true
}

func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redos) == 0 {
		return Snapshot{}, false
	}
	top := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	h.undos = append(h.undos, current)
	return top, true
}

func (h *History) CanUndo() bool { return len(h.undos) > 0 }
func (h *History) CanRedo() bool { return len(h.redos) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undos), len(h.redos)
}

func (h *History) State() HistoryState {
	if len(h.redos) > 0 {
		return Divergent
	}
	return Clean
}
