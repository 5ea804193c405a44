package pattern

import (
	"sort"

	"voxelpatch.dev/internal/edit/volume"
)

// CellDelta is one flattened pattern cell: its offset from the pattern
// origin and the type expected there.
type CellDelta struct {
	Offset volume.Vec3i
	Type   volume.TypeID
}

// Optimized is a read-only pre-flattened view of a Pattern used in the
// matching hot path: an ordered delta list plus the designated anchor
// delta. Always derivable from a Pattern, never persisted.
type Optimized struct {
	Deltas []CellDelta
	Anchor CellDelta
}

// Optimize flattens p. Deltas are ordered by coordinate so candidate
// verification is deterministic. The anchor is the cell at the origin
// when present, otherwise the first delta in order.
func Optimize(p Pattern) Optimized {
	o := Optimized{Deltas: make([]CellDelta, 0, len(p.Cells))}
	for c, t := range p.Cells {
		o.Deltas = append(o.Deltas, CellDelta{Offset: c, Type: t})
	}
	sort.Slice(o.Deltas, func(i, j int) bool { return o.Deltas[i].Offset.Less(o.Deltas[j].Offset) })

	if len(o.Deltas) == 0 {
		return o
	}
	o.Anchor = o.Deltas[0]
	for _, d := range o.Deltas {
		if d.Offset.IsZero() {
			o.Anchor = d
			break
		}
	}
	return o
}
