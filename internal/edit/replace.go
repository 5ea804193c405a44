package edit

import (
	"sort"

	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
)

// ReplaceResult is the full additive/subtractive cell delta of one
// swap plus the coordinates where replacement cells now live.
type ReplaceResult struct {
	Delta       volume.CellDelta
	AddedCoords []volume.Vec3i
}

// ExecuteReplace deletes the find-pattern footprint of every match and
// inserts a replacement pattern centered on it, computing the whole
// edit against a single before-state snapshot and applying it
// atomically. When more than one replacement pattern is supplied, one
// is chosen uniformly at random per match; the replacement's rotation
// is the match's own detected rotation unless randomRotation asks for
// a uniformly random one. The swap is not yet written to the undo
// sink: the engine enters the adjustment state and defers that to
// confirmation.
func (e *Engine) ExecuteReplace(matches []Match, find pattern.Pattern, replacements []pattern.Pattern, randomRotation bool) (ReplaceResult, error) {
	if e.vol == nil {
		return ReplaceResult{}, ErrNoVolume
	}
	if len(matches) == 0 {
		return ReplaceResult{}, ErrNoMatches
	}
	if len(replacements) == 0 {
		return ReplaceResult{}, ErrNoReplacement
	}

	// A still-open adjustment is committed first, never discarded.
	if e.adjust != nil {
		if err := e.ConfirmAdjustment(); err != nil {
			return ReplaceResult{}, err
		}
	}

	preSwap := e.vol.Snapshot()
	findRot := pattern.Rotations(find, true)

	type insert struct {
		t      volume.TypeID
		orient uint8
		shape  string
	}
	delta := volume.NewCellDelta()
	inserts := map[volume.Vec3i]insert{}
	footprint := map[volume.Vec3i]volume.TypeID{}

	for _, m := range matches {
		// The find pattern's rotated form tells us exactly which cells
		// this match occupies.
		fr := findRot[m.Rotation&3]
		for c := range fr.Cells {
			p := m.Origin.Add(c)
			if old, ok := preSwap.Get(p); ok {
				delta.Removed[p] = old
				footprint[p] = old
			}
		}

		rep := replacements[0]
		if len(replacements) > 1 {
			rep = replacements[e.rng.Intn(len(replacements))]
		}
		rot := m.Rotation & 3
		if randomRotation {
			rot = e.rng.Intn(4)
		}
		rp := pattern.Rotate(rep, rot)

		// Align the replacement's bounding-box center with the find
		// footprint's center: floor((find-1)/2 - (rep-1)/2) per axis.
		off := volume.Vec3i{
			X: floorDiv(fr.Width-rp.Width, 2),
			Y: floorDiv(fr.Height-rp.Height, 2),
			Z: floorDiv(fr.Depth-rp.Depth, 2),
		}
		for c, t := range rp.Cells {
			p := m.Origin.Add(off).Add(c)
			inserts[p] = insert{t: t, orient: rp.Orientations[c], shape: rp.Shapes[c]}
		}
	}

	for p, in := range inserts {
		if old, ok := preSwap.Get(p); ok && old != in.t {
			// Bystander cell overwritten by an insertion that lands
			// outside the find footprint.
			delta.Removed[p] = old
		}
		delta.Added[p] = in.t
	}

	// Apply in one pass: footprint out, replacements in.
	for p := range delta.Removed {
		e.vol.Delete(p)
	}
	addedCoords := make([]volume.Vec3i, 0, len(inserts))
	for p, in := range inserts {
		e.vol.SetTagged(p, in.t, in.orient, in.shape)
		addedCoords = append(addedCoords, p)
	}
	sort.Slice(addedCoords, func(i, j int) bool { return addedCoords[i].Less(addedCoords[j]) })

	e.adjust = &adjustment{
		preSwap:     preSwap,
		addedCoords: addedCoords,
		removed:     footprint,
	}
	e.sink.AdjustActive(true)

	return ReplaceResult{Delta: delta, AddedCoords: addedCoords}, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
