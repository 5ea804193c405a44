package pattern

import (
	"errors"
	"testing"

	"voxelpatch.dev/internal/edit/volume"
)

func v3(x, y, z int) volume.Vec3i { return volume.Vec3i{X: x, Y: y, Z: z} }

func TestNormalize_ReanchorsAndMeasures(t *testing.T) {
	cells := map[volume.Vec3i]volume.TypeID{
		v3(2, 5, -1): 7,
		v3(4, 5, -1): 7,
		v3(2, 6, 1):  9,
	}
	p, err := Normalize(cells, "t", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, ok := p.Cells[v3(0, 0, 0)]; !ok {
		t.Fatalf("expected a cell at the origin, cells: %v", p.Cells)
	}
	if p.Width != 3 || p.Height != 2 || p.Depth != 3 {
		t.Fatalf("extents: got %dx%dx%d want 3x2x3", p.Width, p.Height, p.Depth)
	}
	if got := p.Cells[v3(0, 1, 2)]; got != 9 {
		t.Fatalf("cell (0,1,2): got %d want 9", got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(nil, "", nil, nil)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	cells := map[volume.Vec3i]volume.TypeID{
		v3(-3, 2, 8): 1,
		v3(-1, 3, 9): 2,
	}
	p1, err := Normalize(cells, "", nil, nil)
	if err != nil {
		t.Fatalf("first Normalize: %v", err)
	}
	p2, err := Normalize(p1.Cells, "", p1.Orientations, p1.Shapes)
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if !p1.Equal(p2) {
		t.Fatalf("normalize not idempotent:\n%v\nvs\n%v", p1, p2)
	}
}

func TestNormalize_TagsFollowCells(t *testing.T) {
	cells := map[volume.Vec3i]volume.TypeID{
		v3(10, 0, 10): 1,
		v3(11, 0, 10): 2,
	}
	orients := map[volume.Vec3i]uint8{v3(11, 0, 10): 3}
	shapes := map[volume.Vec3i]string{v3(10, 0, 10): "stair"}

	p, err := Normalize(cells, "", orients, shapes)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := p.Orientations[v3(1, 0, 0)]; got != 3 {
		t.Fatalf("orientation at (1,0,0): got %d want 3", got)
	}
	if got := p.Shapes[v3(0, 0, 0)]; got != "stair" {
		t.Fatalf("shape at origin: got %q want stair", got)
	}
	if len(p.Orientations) != 1 || len(p.Shapes) != 1 {
		t.Fatalf("sparse maps grew: %d orientations, %d shapes", len(p.Orientations), len(p.Shapes))
	}
}

func TestRotate_Identity(t *testing.T) {
	p, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(0, 0, 0): 1,
		v3(1, 0, 0): 2,
		v3(0, 1, 0): 3,
	}, "", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := Rotate(p, 0); !got.Equal(p) {
		t.Fatalf("Rotate(p,0) changed the pattern")
	}
}

func TestRotate_SingleStep(t *testing.T) {
	// A 2x1x1 bar along X. One clockwise turn lays it along Z.
	p, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(0, 0, 0): 1,
		v3(1, 0, 0): 2,
	}, "", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	r := Rotate(p, 1)
	if r.Width != 1 || r.Depth != 2 {
		t.Fatalf("extents after one turn: got %dx%dx%d want 1x1x2", r.Width, r.Height, r.Depth)
	}
	// (x,y,z) -> (z,y,w-1-x) with w=2 sends (0,0,0) to (0,0,1) and (1,0,0) to the origin.
	if r.Cells[v3(0, 0, 1)] != 1 || r.Cells[v3(0, 0, 0)] != 2 {
		t.Fatalf("unexpected rotated cells: %v", r.Cells)
	}
}

func TestRotate_FourTurnsIsIdentity(t *testing.T) {
	p, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(0, 0, 0): 1,
		v3(1, 0, 0): 1,
		v3(1, 0, 1): 2,
		v3(1, 1, 1): 3,
	}, "L", map[volume.Vec3i]uint8{v3(1, 0, 1): 2}, map[volume.Vec3i]string{v3(1, 1, 1): "slab"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	r := p
	for i := 0; i < 4; i++ {
		r = Rotate(r, 1)
	}
	if !r.Equal(p) {
		t.Fatalf("four quarter-turns did not return to start:\n%v\nvs\n%v", r, p)
	}
}

func TestRotate_HeightInvariant(t *testing.T) {
	p, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(0, 0, 0): 1,
		v3(0, 4, 0): 1,
		v3(2, 0, 0): 1,
	}, "", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for times := 1; times <= 3; times++ {
		r := Rotate(p, times)
		if r.Height != p.Height {
			t.Fatalf("height changed after %d turns: got %d want %d", times, r.Height, p.Height)
		}
	}
	r := Rotate(p, 1)
	if r.Width != p.Depth || r.Depth != p.Width {
		t.Fatalf("width/depth did not swap: got %dx%d from %dx%d", r.Width, r.Depth, p.Width, p.Depth)
	}
}

func TestOptimize_AnchorSelection(t *testing.T) {
	p, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(0, 0, 0): 5,
		v3(1, 0, 0): 6,
	}, "", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	o := Optimize(p)
	if !o.Anchor.Offset.IsZero() || o.Anchor.Type != 5 {
		t.Fatalf("anchor should be the origin cell, got %+v", o.Anchor)
	}

	// A hollow corner with nothing at the origin: first delta wins.
	q, err := Normalize(map[volume.Vec3i]volume.TypeID{
		v3(1, 0, 0): 7,
		v3(0, 0, 1): 8,
	}, "", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	oq := Optimize(q)
	if oq.Anchor.Offset.IsZero() {
		t.Fatalf("no origin cell exists, anchor should be the first delta: %+v", oq.Anchor)
	}
	if oq.Anchor != oq.Deltas[0] {
		t.Fatalf("anchor %+v is not the first delta %+v", oq.Anchor, oq.Deltas[0])
	}
}
