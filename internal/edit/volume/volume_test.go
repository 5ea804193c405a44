package volume

import "testing"

func TestVolume_SetGetDelete(t *testing.T) {
	v := New()
	p := Vec3i{X: 1, Y: 2, Z: 3}
	if _, ok := v.Get(p); ok {
		t.Fatalf("new volume should be empty at %v", p)
	}
	v.SetTagged(p, 9, 2, "stair")
	if got, ok := v.Get(p); !ok || got != 9 {
		t.Fatalf("Get after Set: got %d,%v", got, ok)
	}
	if v.Orientation(p) != 2 || v.Shape(p) != "stair" {
		t.Fatalf("tags not stored: orient=%d shape=%q", v.Orientation(p), v.Shape(p))
	}
	v.Delete(p)
	if _, ok := v.Get(p); ok {
		t.Fatalf("cell survived Delete")
	}
	if v.Orientation(p) != 0 || v.Shape(p) != "" {
		t.Fatalf("tags survived Delete")
	}
}

func TestVolume_SnapshotRestore(t *testing.T) {
	v := New()
	v.Set(Vec3i{0, 0, 0}, 1)
	v.SetTagged(Vec3i{1, 0, 0}, 2, 3, "panel")

	snap := v.Snapshot()
	v.Set(Vec3i{0, 0, 0}, 50)
	v.Delete(Vec3i{1, 0, 0})
	v.Set(Vec3i{9, 9, 9}, 4)

	v.Restore(snap)
	if !v.Equal(snap) {
		t.Fatalf("restore did not reproduce the snapshot")
	}
	if got, _ := v.Get(Vec3i{0, 0, 0}); got != 1 {
		t.Fatalf("restored cell: got %d want 1", got)
	}
	if v.Orientation(Vec3i{1, 0, 0}) != 3 {
		t.Fatalf("restored orientation: got %d want 3", v.Orientation(Vec3i{1, 0, 0}))
	}
}

func TestVolume_ApplyDeltaAndInvert(t *testing.T) {
	v := New()
	v.Set(Vec3i{0, 0, 0}, 1)
	v.Set(Vec3i{1, 0, 0}, 2)
	before := v.Snapshot()

	d := NewCellDelta()
	d.Removed[Vec3i{1, 0, 0}] = 2
	d.Added[Vec3i{2, 0, 0}] = 7
	d.Added[Vec3i{0, 0, 0}] = 5 // in-place type change

	v.ApplyDelta(d)
	if got, _ := v.Get(Vec3i{0, 0, 0}); got != 5 {
		t.Fatalf("in-place change: got %d want 5", got)
	}
	if _, ok := v.Get(Vec3i{1, 0, 0}); ok {
		t.Fatalf("removed cell still present")
	}

	// Reverting needs the old value of the in-place change too.
	d.Removed[Vec3i{0, 0, 0}] = 1
	v.ApplyDelta(d.Inverted())
	if !v.Equal(before) {
		t.Fatalf("inverted delta did not restore the volume")
	}
}

func TestVolume_Diff(t *testing.T) {
	base := New()
	base.Set(Vec3i{0, 0, 0}, 1)
	base.Set(Vec3i{1, 0, 0}, 2)

	v := base.Snapshot()
	v.Delete(Vec3i{1, 0, 0})
	v.Set(Vec3i{2, 0, 0}, 3)
	v.Set(Vec3i{0, 0, 0}, 1) // unchanged write, must not show in diff

	d := v.Diff(base)
	if len(d.Added) != 1 || d.Added[Vec3i{2, 0, 0}] != 3 {
		t.Fatalf("added set: %v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[Vec3i{1, 0, 0}] != 2 {
		t.Fatalf("removed set: %v", d.Removed)
	}

	if !v.Diff(v.Snapshot()).Empty() {
		t.Fatalf("self-diff should be empty")
	}
}

func TestSampleRegion(t *testing.T) {
	v := New()
	v.Set(Vec3i{0, 0, 0}, 1)
	v.SetTagged(Vec3i{1, 0, 0}, 2, 1, "")
	v.Set(Vec3i{5, 0, 0}, 3) // outside

	r := v.SampleRegion(Box{Min: Vec3i{0, 0, 0}, Max: Vec3i{2, 0, 2}})
	if len(r.Cells) != 2 {
		t.Fatalf("sampled %d cells, want 2", len(r.Cells))
	}
	if r.Orientations[Vec3i{1, 0, 0}] != 1 {
		t.Fatalf("sample dropped the orientation tag")
	}
}

func TestBox(t *testing.T) {
	b := Box{Min: Vec3i{-1, 0, -1}, Max: Vec3i{1, 2, 1}}
	if !b.Contains(Vec3i{0, 1, 0}) || !b.Contains(b.Min) || !b.Contains(b.Max) {
		t.Fatalf("inclusive containment broken")
	}
	if b.Contains(Vec3i{2, 0, 0}) {
		t.Fatalf("box should not contain (2,0,0)")
	}
	if c := b.Center(); c != (Vec3i{0, 1, 0}) {
		t.Fatalf("center: got %v", c)
	}
}
