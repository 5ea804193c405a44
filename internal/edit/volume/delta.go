package volume

// CellDelta is the payload of one reversible volume edit: cells that
// gained a value and cells that lost one, each keyed by coordinate.
// A coordinate may appear in both maps when its type changed in place.
type CellDelta struct {
	Added   map[Vec3i]TypeID `json:"added"`
	Removed map[Vec3i]TypeID `json:"removed"`
}

func NewCellDelta() CellDelta {
	return CellDelta{Added: map[Vec3i]TypeID{}, Removed: map[Vec3i]TypeID{}}
}

func (d CellDelta) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Inverted swaps the add and remove sets, producing the delta that
// undoes this one.
func (d CellDelta) Inverted() CellDelta {
	return CellDelta{Added: d.Removed, Removed: d.Added}
}

// ApplyDelta applies removals first, then additions, so a coordinate
// present in both ends up holding its Added value.
func (v *Volume) ApplyDelta(d CellDelta) {
	for p := range d.Removed {
		v.Delete(p)
	}
	for p, t := range d.Added {
		v.Set(p, t)
	}
}

// Diff computes the minimal delta that turns base into v: a cell is
// added when its current value differs from base, removed when base
// held a value that no longer matches.
func (v *Volume) Diff(base *Volume) CellDelta {
	d := NewCellDelta()
	for p, t := range v.cells {
		if bt, ok := base.cells[p]; !ok || bt != t {
			d.Added[p] = t
		}
	}
	for p, bt := range base.cells {
		if t, ok := v.cells[p]; !ok || t != bt {
			d.Removed[p] = bt
		}
	}
	return d
}
