package mcworld

import (
	"fmt"
	"path"
	"sort"

	"voxelpatch.dev/internal/edit/volume"
)

// Rules maps glob patterns over block names (path.Match syntax, e.g.
// "minecraft:*_log") onto volume type ids. When several patterns match
// a name the lexicographically first pattern wins.
type Rules map[string]volume.TypeID

// Convert walks every loaded chunk, applies the conversion rules and
// the optional block-coordinate crop box, and emits the surviving
// cells into a fresh volume recentered around the crop box (or the
// loaded chunk bounds when no crop is given).
func (w *World) Convert(rules Rules, crop *volume.Box) (*volume.Volume, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no conversion rules")
	}

	// Resolve each palette name once, in deterministic rule order.
	patterns := make([]string, 0, len(rules))
	for p := range rules {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("rule %q: %w", p, err)
		}
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	byPalette := make([]int32, len(w.palette)) // -1 = drop
	for id, name := range w.palette {
		byPalette[id] = -1
		if name == airBlock {
			continue
		}
		for _, p := range patterns {
			if ok, _ := path.Match(p, name); ok {
				byPalette[id] = int32(rules[p])
				break
			}
		}
	}

	center := w.recenterOrigin(crop)
	out := volume.New()
	for pos, blocks := range w.chunks {
		baseX, baseZ := pos[0]*16, pos[1]*16
		for i, id := range blocks {
			t := byPalette[id]
			if t < 0 {
				continue
			}
			y, z, x := i/256, i/16%16, i%16
			at := volume.Vec3i{X: baseX + x, Y: worldMinY + y, Z: baseZ + z}
			if crop != nil && !crop.Contains(at) {
				continue
			}
			out.Set(at.Sub(center), volume.TypeID(t))
		}
	}
	return out, nil
}

// recenterOrigin picks the coordinate subtracted from every emitted
// cell: the horizontal center of the crop box at its floor, or of the
// loaded chunk extent with the floor left at y=0.
func (w *World) recenterOrigin(crop *volume.Box) volume.Vec3i {
	if crop != nil {
		c := crop.Center()
		return volume.Vec3i{X: c.X, Y: crop.Min.Y, Z: c.Z}
	}
	if len(w.chunks) == 0 {
		return volume.Vec3i{}
	}
	first := true
	var minC, maxC [2]int
	for pos := range w.chunks {
		if first {
			minC, maxC = pos, pos
			first = false
			continue
		}
		for a := 0; a < 2; a++ {
			if pos[a] < minC[a] {
				minC[a] = pos[a]
			}
			if pos[a] > maxC[a] {
				maxC[a] = pos[a]
			}
		}
	}
	return volume.Vec3i{
		X: (minC[0]*16 + maxC[0]*16 + 15) / 2,
		Z: (minC[1]*16 + maxC[1]*16 + 15) / 2,
	}
}
