package edit

import "voxelpatch.dev/internal/edit/volume"

// typeIndex maps each block type to every volume coordinate holding
// it. It is rebuilt at the start of every search, never maintained
// incrementally: the volume may have changed arbitrarily in between.
// No ordering guarantee within a type's coordinate list.
type typeIndex map[volume.TypeID][]volume.Vec3i

func buildIndex(v *volume.Volume) typeIndex {
	idx := typeIndex{}
	v.Each(func(p volume.Vec3i, t volume.TypeID) bool {
		idx[t] = append(idx[t], p)
		return true
	})
	return idx
}
