package encoding

import (
	"testing"

	"voxelpatch.dev/internal/edit/volume"
)

func TestIDs_RoundTrip(t *testing.T) {
	in := make([]uint32, 0, 200)
	in = append(in, 1, 1, 1, 2, 2, 3)
	for i := 0; i < 50; i++ {
		in = append(in, 7)
	}
	in = append(in, 0, 10, 10, 10)

	enc := EncodeIDs(in)
	out, err := DecodeIDs(enc)
	if err != nil {
		t.Fatalf("DecodeIDs: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestRegion_RoundTrip(t *testing.T) {
	v := volume.New()
	v.Set(volume.Vec3i{X: 0, Y: 0, Z: 0}, 0) // type 0 is a real block
	v.Set(volume.Vec3i{X: 2, Y: 1, Z: 2}, 9)
	b := volume.Box{Min: volume.Vec3i{X: 0, Y: 0, Z: 0}, Max: volume.Vec3i{X: 2, Y: 1, Z: 2}}

	data := EncodeRegion(v, b)

	out := volume.New()
	out.Set(volume.Vec3i{X: 1, Y: 0, Z: 1}, 4) // must be cleared by decode
	if err := DecodeRegion(out, b, data); err != nil {
		t.Fatalf("DecodeRegion: %v", err)
	}
	if !out.Equal(v) {
		t.Fatalf("region round trip diverged")
	}
}

func TestRegion_BadLength(t *testing.T) {
	b := volume.Box{Min: volume.Vec3i{}, Max: volume.Vec3i{X: 1, Y: 0, Z: 0}}
	if err := DecodeRegion(volume.New(), b, EncodeIDs([]uint32{1, 1, 1})); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}
