package volume

// Region is a raw sampled sub-volume: absolute-keyed cell and tag
// maps, not yet re-anchored to an origin. The pattern package turns a
// Region into a normalized Pattern.
type Region struct {
	Cells        map[Vec3i]TypeID
	Orientations map[Vec3i]uint8
	Shapes       map[Vec3i]string
}

// SampleRegion copies every populated cell inside the inclusive box,
// tags included.
func (v *Volume) SampleRegion(b Box) Region {
	r := Region{
		Cells:        map[Vec3i]TypeID{},
		Orientations: map[Vec3i]uint8{},
		Shapes:       map[Vec3i]string{},
	}
	for p, t := range v.cells {
		if !b.Contains(p) {
			continue
		}
		r.Cells[p] = t
		if o := v.orients[p]; o != 0 {
			r.Orientations[p] = o
		}
		if s := v.shapes[p]; s != "" {
			r.Shapes[p] = s
		}
	}
	return r
}
