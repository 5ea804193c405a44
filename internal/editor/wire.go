package editor

import (
	"sort"

	"voxelpatch.dev/internal/edit"
	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
	"voxelpatch.dev/internal/protocol"
)

func vecFromWire(a [3]int) volume.Vec3i {
	return volume.Vec3i{X: a[0], Y: a[1], Z: a[2]}
}

func boxFromWire(b protocol.WireBox) volume.Box {
	return volume.Box{Min: vecFromWire(b.Min), Max: vecFromWire(b.Max)}
}

func boxToWire(b volume.Box) protocol.WireBox {
	return protocol.WireBox{
		Min: [3]int{b.Min.X, b.Min.Y, b.Min.Z},
		Max: [3]int{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

func patternFromWire(wp protocol.WirePattern) (pattern.Pattern, error) {
	cells := make(map[volume.Vec3i]volume.TypeID, len(wp.Cells))
	orients := map[volume.Vec3i]uint8{}
	shapes := map[volume.Vec3i]string{}
	for _, c := range wp.Cells {
		p := vecFromWire(c.Pos)
		cells[p] = volume.TypeID(c.Type)
		if c.Orient != 0 {
			orients[p] = c.Orient
		}
		if c.Shape != "" {
			shapes[p] = c.Shape
		}
	}
	return pattern.Normalize(cells, wp.Name, orients, shapes)
}

func patternToWire(p pattern.Pattern) protocol.WirePattern {
	coords := make([]volume.Vec3i, 0, len(p.Cells))
	for c := range p.Cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })

	wp := protocol.WirePattern{Name: p.Name, Cells: make([]protocol.WireCell, 0, len(coords))}
	for _, c := range coords {
		wp.Cells = append(wp.Cells, protocol.WireCell{
			Pos:    [3]int{c.X, c.Y, c.Z},
			Type:   uint16(p.Cells[c]),
			Orient: p.Orientations[c],
			Shape:  p.Shapes[c],
		})
	}
	return wp
}

func matchesToWire(matches []edit.Match) []protocol.WireMatch {
	out := make([]protocol.WireMatch, len(matches))
	for i, m := range matches {
		out[i] = protocol.WireMatch{
			Origin:   [3]int{m.Origin.X, m.Origin.Y, m.Origin.Z},
			Rotation: m.Rotation,
		}
	}
	return out
}
