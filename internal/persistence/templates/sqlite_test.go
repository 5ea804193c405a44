package templates

import (
	"errors"
	"path/filepath"
	"testing"

	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "templates.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)

	p, err := pattern.Normalize(map[volume.Vec3i]volume.TypeID{
		{X: 0, Y: 0, Z: 0}: 5,
		{X: 1, Y: 0, Z: 0}: 6,
		{X: 1, Y: 1, Z: 1}: 7,
	}, "corner", map[volume.Vec3i]uint8{{X: 1, Y: 0, Z: 0}: 2}, map[volume.Vec3i]string{{X: 1, Y: 1, Z: 1}: "slab"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("corner")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("round trip diverged:\n%+v\nvs\n%+v", got, p)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openStore(t)
	p1, _ := pattern.Normalize(map[volume.Vec3i]volume.TypeID{{}: 1}, "x", nil, nil)
	p2, _ := pattern.Normalize(map[volume.Vec3i]volume.TypeID{{}: 2}, "x", nil, nil)
	if err := s.Save(p1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(p2); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := s.Load("x")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Cells[volume.Vec3i{}] != 2 {
		t.Fatalf("overwrite did not stick: %+v", got.Cells)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openStore(t)
	for _, name := range []string{"b", "a"} {
		p, _ := pattern.Normalize(map[volume.Vec3i]volume.TypeID{{}: 1}, name, nil, nil)
		if err := s.Save(p); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names: %v", names)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestStore_SaveRequiresName(t *testing.T) {
	s := openStore(t)
	p, _ := pattern.Normalize(map[volume.Vec3i]volume.TypeID{{}: 1}, "", nil, nil)
	if err := s.Save(p); err == nil {
		t.Fatalf("nameless save should fail")
	}
}
