package volume

import "sort"

// TypeID is an opaque block-type palette id. 0 is a valid id; absence
// from the volume, not a zero value, means "empty".
type TypeID uint16

// Volume is a sparse voxel store: a hash map from coordinate to type
// id, with two parallel sparse maps for per-cell orientation (0-3) and
// shape tags. Cells with default orientation/shape have no entry in
// the side maps.
type Volume struct {
	cells   map[Vec3i]TypeID
	orients map[Vec3i]uint8
	shapes  map[Vec3i]string
}

func New() *Volume {
	return &Volume{
		cells:   map[Vec3i]TypeID{},
		orients: map[Vec3i]uint8{},
		shapes:  map[Vec3i]string{},
	}
}

func (v *Volume) Len() int { return len(v.cells) }

func (v *Volume) Get(p Vec3i) (TypeID, bool) {
	t, ok := v.cells[p]
	return t, ok
}

func (v *Volume) Set(p Vec3i, t TypeID) {
	v.cells[p] = t
}

// SetTagged sets a cell together with its sparse overrides. Zero
// orientation and empty shape clear any existing override.
func (v *Volume) SetTagged(p Vec3i, t TypeID, orient uint8, shape string) {
	v.cells[p] = t
	if orient != 0 {
		v.orients[p] = orient
	} else {
		delete(v.orients, p)
	}
	if shape != "" {
		v.shapes[p] = shape
	} else {
		delete(v.shapes, p)
	}
}

func (v *Volume) Delete(p Vec3i) {
	delete(v.cells, p)
	delete(v.orients, p)
	delete(v.shapes, p)
}

func (v *Volume) Orientation(p Vec3i) uint8 { return v.orients[p] }
func (v *Volume) Shape(p Vec3i) string      { return v.shapes[p] }

// Each calls fn for every populated cell until fn returns false.
// Iteration order is unspecified.
func (v *Volume) Each(fn func(Vec3i, TypeID) bool) {
	for p, t := range v.cells {
		if !fn(p, t) {
			return
		}
	}
}

// Coords returns every populated coordinate in deterministic order.
func (v *Volume) Coords() []Vec3i {
	out := make([]Vec3i, 0, len(v.cells))
	for p := range v.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Snapshot returns a deep copy of the volume, side maps included.
func (v *Volume) Snapshot() *Volume {
	s := &Volume{
		cells:   make(map[Vec3i]TypeID, len(v.cells)),
		orients: make(map[Vec3i]uint8, len(v.orients)),
		shapes:  make(map[Vec3i]string, len(v.shapes)),
	}
	for p, t := range v.cells {
		s.cells[p] = t
	}
	for p, o := range v.orients {
		s.orients[p] = o
	}
	for p, sh := range v.shapes {
		s.shapes[p] = sh
	}
	return s
}

// Restore replaces the volume's entire contents with those of snap.
func (v *Volume) Restore(snap *Volume) {
	clear(v.cells)
	clear(v.orients)
	clear(v.shapes)
	for p, t := range snap.cells {
		v.cells[p] = t
	}
	for p, o := range snap.orients {
		v.orients[p] = o
	}
	for p, sh := range snap.shapes {
		v.shapes[p] = sh
	}
}

// Equal reports whether two volumes hold identical cells and tags.
func (v *Volume) Equal(o *Volume) bool {
	if len(v.cells) != len(o.cells) || len(v.orients) != len(o.orients) || len(v.shapes) != len(o.shapes) {
		return false
	}
	for p, t := range v.cells {
		if ot, ok := o.cells[p]; !ok || ot != t {
			return false
		}
	}
	for p, or := range v.orients {
		if oo, ok := o.orients[p]; !ok || oo != or {
			return false
		}
	}
	for p, sh := range v.shapes {
		if os, ok := o.shapes[p]; !ok || os != sh {
			return false
		}
	}
	return true
}
