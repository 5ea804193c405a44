package edit

import "voxelpatch.dev/internal/edit/volume"

// adjustment is the transient state between a swap's execution and its
// commit or cancellation. It owns the pre-swap snapshot so rollback is
// exact, and the live coordinates of the inserted cells so nudges move
// exactly those.
type adjustment struct {
	preSwap     *volume.Volume
	addedCoords []volume.Vec3i
	removed     map[volume.Vec3i]volume.TypeID
	offset      volume.Vec3i
}

// Adjusting reports whether a swap is awaiting commit or cancel.
func (e *Engine) Adjusting() bool { return e.adjust != nil }

// AdjustOffset returns the current cumulative nudge offset.
func (e *Engine) AdjustOffset() (volume.Vec3i, bool) {
	if e.adjust == nil {
		return volume.Vec3i{}, false
	}
	return e.adjust.offset, true
}

// ApplyOffsetAdjustment translates the whole batch of inserted cells
// so their cumulative displacement from the swap position equals
// newOffset. Repeated identical calls are no-ops, and successive
// nudges compose: the volume only ever reflects the latest offset.
func (e *Engine) ApplyOffsetAdjustment(newOffset volume.Vec3i) error {
	a := e.adjust
	if a == nil {
		return ErrNotAdjusting
	}
	delta := newOffset.Sub(a.offset)
	if delta.IsZero() {
		return nil
	}

	type moved struct {
		t      volume.TypeID
		orient uint8
		shape  string
	}
	cells := make([]moved, len(a.addedCoords))
	for i, p := range a.addedCoords {
		t, _ := e.vol.Get(p)
		cells[i] = moved{t: t, orient: e.vol.Orientation(p), shape: e.vol.Shape(p)}
	}
	// Delete the whole batch before re-inserting: old and new footprints
	// may overlap.
	for _, p := range a.addedCoords {
		e.vol.Delete(p)
	}
	for i, p := range a.addedCoords {
		q := p.Add(delta)
		e.vol.SetTagged(q, cells[i].t, cells[i].orient, cells[i].shape)
		a.addedCoords[i] = q
	}
	a.offset = newOffset
	e.sink.AdjustOffset(newOffset)
	return nil
}

// ConfirmAdjustment diffs the current volume against the pre-swap
// snapshot, writes one consolidated undo record carrying exactly that
// diff (none when it is empty), and returns the engine to idle. On a
// sink failure the session is kept so the caller can retry or cancel.
func (e *Engine) ConfirmAdjustment() error {
	a := e.adjust
	if a == nil {
		return ErrNotAdjusting
	}
	if d := e.vol.Diff(a.preSwap); !d.Empty() {
		if err := e.undo.Record(d); err != nil {
			return err
		}
	}
	e.adjust = nil
	e.sink.AdjustActive(false)
	return nil
}

// CancelAdjustment restores the volume to its exact pre-swap state and
// returns the engine to idle without writing an undo record.
func (e *Engine) CancelAdjustment() error {
	a := e.adjust
	if a == nil {
		return ErrNotAdjusting
	}
	e.vol.Restore(a.preSwap)
	e.adjust = nil
	e.sink.AdjustActive(false)
	return nil
}
