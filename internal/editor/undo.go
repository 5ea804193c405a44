package editor

import "voxelpatch.dev/internal/edit/volume"

// UndoStack keeps the bounded history of committed operation deltas.
// Each entry is the consolidated diff of one confirmed swap, so one
// Undo reverts one whole find and replace regardless of how many
// matches it touched.
type UndoStack struct {
	capacity int
	done     []volume.CellDelta
	undone   []volume.CellDelta
}

func NewUndoStack(capacity int) *UndoStack {
	if capacity <= 0 {
		capacity = 64
	}
	return &UndoStack{capacity: capacity}
}

// Record implements edit.UndoSink. Recording a fresh operation
// invalidates the redo branch, and the oldest entry falls off once
// capacity is reached.
func (u *UndoStack) Record(d volume.CellDelta) error {
	u.undone = u.undone[:0]
	u.done = append(u.done, d)
	if len(u.done) > u.capacity {
		copy(u.done, u.done[1:])
		u.done = u.done[:len(u.done)-1]
	}
	return nil
}

// Undo reverts the most recent committed operation on v. It reports
// false when the history is empty.
func (u *UndoStack) Undo(v *volume.Volume) bool {
	if len(u.done) == 0 {
		return false
	}
	d := u.done[len(u.done)-1]
	u.done = u.done[:len(u.done)-1]
	v.ApplyDelta(d.Inverted())
	u.undone = append(u.undone, d)
	return true
}

// Redo reapplies the most recently undone operation on v.
func (u *UndoStack) Redo(v *volume.Volume) bool {
	if len(u.undone) == 0 {
		return false
	}
	d := u.undone[len(u.undone)-1]
	u.undone = u.undone[:len(u.undone)-1]
	v.ApplyDelta(d)
	u.done = append(u.done, d)
	return true
}

// Reset drops both histories, for when the volume is replaced
// wholesale and old deltas no longer apply.
func (u *UndoStack) Reset() {
	u.done = u.done[:0]
	u.undone = u.undone[:0]
}

// Depth returns how many operations can currently be undone and
// redone.
func (u *UndoStack) Depth() (undo, redo int) {
	return len(u.done), len(u.undone)
}
