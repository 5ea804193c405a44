// Package pattern holds the normalized cell-assembly model used as
// find and replace templates by the edit engine.
package pattern

import (
	"errors"

	"voxelpatch.dev/internal/edit/volume"
)

// ErrEmpty is returned when a pattern is built from zero cells.
// Callers are expected to treat it as a benign no-op, not a failure.
var ErrEmpty = errors.New("pattern has no cells")

// Pattern is an origin-anchored assembly of typed cells. The minimum
// coordinate present in Cells is always (0,0,0). Orientations and
// Shapes are sparse overrides carrying only non-default values.
// Patterns are immutable once built; Rotate returns a new one.
type Pattern struct {
	Name         string
	Cells        map[volume.Vec3i]volume.TypeID
	Orientations map[volume.Vec3i]uint8
	Shapes       map[volume.Vec3i]string

	// Bounding extents, recomputed on every rotation.
	Width  int
	Height int
	Depth  int
}

// Normalize re-keys cells so the minimum coordinate per axis lands on
// zero, moving orientation and shape overrides in lockstep, and
// records the bounding extents. Pure function over its inputs.
func Normalize(cells map[volume.Vec3i]volume.TypeID, name string, orients map[volume.Vec3i]uint8, shapes map[volume.Vec3i]string) (Pattern, error) {
	if len(cells) == 0 {
		return Pattern{}, ErrEmpty
	}

	first := true
	var min, max volume.Vec3i
	for p := range cells {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}

	out := Pattern{
		Name:         name,
		Cells:        make(map[volume.Vec3i]volume.TypeID, len(cells)),
		Orientations: map[volume.Vec3i]uint8{},
		Shapes:       map[volume.Vec3i]string{},
		Width:        max.X - min.X + 1,
		Height:       max.Y - min.Y + 1,
		Depth:        max.Z - min.Z + 1,
	}
	for p, t := range cells {
		q := p.Sub(min)
		out.Cells[q] = t
		if o := orients[p]; o != 0 {
			out.Orientations[q] = o
		}
		if s := shapes[p]; s != "" {
			out.Shapes[q] = s
		}
	}
	return out, nil
}

// FromRegion normalizes a sampled volume sub-region into a Pattern.
func FromRegion(r volume.Region, name string) (Pattern, error) {
	return Normalize(r.Cells, name, r.Orientations, r.Shapes)
}

// Equal reports structural equality, extents and tags included.
func (p Pattern) Equal(o Pattern) bool {
	if p.Width != o.Width || p.Height != o.Height || p.Depth != o.Depth {
		return false
	}
	if len(p.Cells) != len(o.Cells) || len(p.Orientations) != len(o.Orientations) || len(p.Shapes) != len(o.Shapes) {
		return false
	}
	for c, t := range p.Cells {
		if ot, ok := o.Cells[c]; !ok || ot != t {
			return false
		}
	}
	for c, v := range p.Orientations {
		if ov, ok := o.Orientations[c]; !ok || ov != v {
			return false
		}
	}
	for c, v := range p.Shapes {
		if ov, ok := o.Shapes[c]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Extent returns the bounding extent along each axis as a Vec3i.
func (p Pattern) Extent() volume.Vec3i {
	return volume.Vec3i{X: p.Width, Y: p.Height, Z: p.Depth}
}
