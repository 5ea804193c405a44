package pattern

import "voxelpatch.dev/internal/edit/volume"

// Rotate applies a 90-degree clockwise (top-down) rotation the given
// number of times (0-3). Rotation is about the vertical axis only:
// each step maps a cell at (x,y,z) in a pattern of width w to
// (z, y, w-1-x), swapping width and depth and leaving height alone.
// Orientation and shape tags travel with their cell, keyed by the
// cell's new coordinate. The result is re-normalized. Rotate(p, 0)
// returns p unchanged.
func Rotate(p Pattern, times int) Pattern {
	times = ((times % 4) + 4) % 4
	if times == 0 {
		return p
	}

	for step := 0; step < times; step++ {
		w := p.Width
		cells := make(map[volume.Vec3i]volume.TypeID, len(p.Cells))
		orients := make(map[volume.Vec3i]uint8, len(p.Orientations))
		shapes := make(map[volume.Vec3i]string, len(p.Shapes))
		for c, t := range p.Cells {
			q := volume.Vec3i{X: c.Z, Y: c.Y, Z: w - 1 - c.X}
			cells[q] = t
			if o, ok := p.Orientations[c]; ok {
				orients[q] = o
			}
			if s, ok := p.Shapes[c]; ok {
				shapes[q] = s
			}
		}
		// Re-anchor: the step formula can leave the minimum off origin.
		rot, err := Normalize(cells, p.Name, orients, shapes)
		if err != nil {
			return p
		}
		p = rot
	}
	return p
}

// Rotations returns the requested set of rotation variants: just the
// identity when all is false, otherwise all four quarter-turns indexed
// by rotation count.
func Rotations(p Pattern, all bool) []Pattern {
	if !all {
		return []Pattern{p}
	}
	out := make([]Pattern, 4)
	out[0] = p
	for i := 1; i < 4; i++ {
		out[i] = Rotate(out[i-1], 1)
	}
	return out
}
