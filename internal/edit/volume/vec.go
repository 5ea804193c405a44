package volume

// Vec3i is an integer cell coordinate. It is used as a map key, so it
// must stay a plain comparable value type.
type Vec3i struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3i) Sub(o Vec3i) Vec3i { return Vec3i{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3i) IsZero() bool { return v == Vec3i{} }

// Less orders coordinates by Y, then Z, then X. Used wherever a
// deterministic iteration order over a coordinate set is needed.
func (v Vec3i) Less(o Vec3i) bool {
	if v.Y != o.Y {
		return v.Y < o.Y
	}
	if v.Z != o.Z {
		return v.Z < o.Z
	}
	return v.X < o.X
}

// Box is an axis-aligned inclusive coordinate range.
type Box struct {
	Min Vec3i `json:"min"`
	Max Vec3i `json:"max"`
}

func (b Box) Contains(v Vec3i) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X &&
		v.Y >= b.Min.Y && v.Y <= b.Max.Y &&
		v.Z >= b.Min.Z && v.Z <= b.Max.Z
}

// Center returns the integer center of the box, rounding toward Min.
func (b Box) Center() Vec3i {
	return Vec3i{
		X: b.Min.X + (b.Max.X-b.Min.X)/2,
		Y: b.Min.Y + (b.Max.Y-b.Min.Y)/2,
		Z: b.Min.Z + (b.Max.Z-b.Min.Z)/2,
	}
}
