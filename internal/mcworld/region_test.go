package mcworld

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/oriumgames/nbt"

	"voxelpatch.dev/internal/edit/volume"
)

type wChunk struct {
	XPos     int32      `nbt:"xPos"`
	ZPos     int32      `nbt:"zPos"`
	Sections []wSection `nbt:"sections"`
}

type wSection struct {
	Y           uint8        `nbt:"Y"`
	BlockStates wBlockStates `nbt:"block_states"`
}

type wBlockStates struct {
	Palette []wPalette `nbt:"palette"`
	Data    []int64    `nbt:"data,array"`
}

type wPalette struct {
	Name string `nbt:"Name"`
}

// buildRegion assembles a minimal region blob containing one chunk at
// local (0,0) with a single section at Y=0. Blocks other than air:
// stone at local (2,3,4) and an oak log at (0,0,0).
func buildRegion(t *testing.T) []byte {
	t.Helper()

	data := make([]int64, 256) // 4 bits per entry, 16 per long
	set := func(x, y, z, palette int) {
		i := (y*16+z)*16 + x
		data[i/16] |= int64(palette) << (uint(i%16) * 4)
	}
	set(2, 3, 4, 1)
	set(0, 0, 0, 2)

	c := wChunk{
		XPos: 0,
		ZPos: 0,
		Sections: []wSection{{
			Y: 0,
			BlockStates: wBlockStates{
				Palette: []wPalette{
					{Name: "minecraft:air"},
					{Name: "minecraft:stone"},
					{Name: "minecraft:oak_log"},
				},
				Data: data,
			},
		}},
	}

	var raw bytes.Buffer
	if err := nbt.NewEncoderWithEncoding(&raw, nbt.BigEndian).Encode(c); err != nil {
		t.Fatalf("encode chunk nbt: %v", err)
	}
	var comp bytes.Buffer
	zw := zlib.NewWriter(&comp)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		t.Fatalf("compress chunk: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zlib writer: %v", err)
	}

	sectors := (5 + comp.Len() + sectorSize - 1) / sectorSize
	blob := make([]byte, (2+sectors)*sectorSize)
	binary.BigEndian.PutUint32(blob[0:], uint32(2)<<8|uint32(sectors))
	start := 2 * sectorSize
	binary.BigEndian.PutUint32(blob[start:], uint32(comp.Len()+1))
	blob[start+4] = 2 // zlib
	copy(blob[start+5:], comp.Bytes())
	return blob
}

func TestReadRegion_SingleChunk(t *testing.T) {
	w := NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, buildRegion(t)); err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if w.LoadedChunks() != 1 {
		t.Fatalf("loaded %d chunks, want 1", w.LoadedChunks())
	}

	blocks := w.chunks[[2]int{0, 0}]
	names := w.Palette()
	at := func(x, y, z int) string {
		return names[blocks[((y-worldMinY)*16+z)*16+x]]
	}
	if got := at(2, 3, 4); got != "minecraft:stone" {
		t.Fatalf("block at (2,3,4) = %q, want stone", got)
	}
	if got := at(0, 0, 0); got != "minecraft:oak_log" {
		t.Fatalf("block at (0,0,0) = %q, want oak_log", got)
	}
	if got := at(5, 5, 5); got != "minecraft:air" {
		t.Fatalf("block at (5,5,5) = %q, want air", got)
	}
}

func TestReadRegion_ChunkRangeFilter(t *testing.T) {
	w := NewWorld()
	min := [2]int{1, 1}
	if err := w.ReadRegion([2]int{0, 0}, &min, nil, buildRegion(t)); err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if w.LoadedChunks() != 0 {
		t.Fatalf("loaded %d chunks, want 0 with min chunk (1,1)", w.LoadedChunks())
	}
}

func TestReadRegion_TruncatedBlob(t *testing.T) {
	w := NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, make([]byte, 100)); err == nil {
		t.Fatal("expected error for truncated region blob")
	}
}

func TestConvert_RulesAndRecenter(t *testing.T) {
	w := NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, buildRegion(t)); err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}

	vol, err := w.Convert(Rules{
		"minecraft:stone":  1,
		"minecraft:*_log":  2,
		"minecraft:gravel": 3,
	}, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if vol.Len() != 2 {
		t.Fatalf("converted %d cells, want 2", vol.Len())
	}

	// Without a crop box the single chunk recenters around (7,0,7).
	if got, ok := vol.Get(volume.Vec3i{X: -5, Y: 3, Z: -3}); !ok || got != 1 {
		t.Fatalf("stone cell = (%d,%v), want (1,true)", got, ok)
	}
	if got, ok := vol.Get(volume.Vec3i{X: -7, Y: 0, Z: -7}); !ok || got != 2 {
		t.Fatalf("log cell = (%d,%v), want (2,true)", got, ok)
	}
}

func TestConvert_CropBox(t *testing.T) {
	w := NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, buildRegion(t)); err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}

	crop := &volume.Box{
		Min: volume.Vec3i{X: 1, Y: 0, Z: 1},
		Max: volume.Vec3i{X: 5, Y: 15, Z: 7},
	}
	vol, err := w.Convert(Rules{"minecraft:*": 9}, crop)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// Only stone survives the crop. Crop center is (3,*,4), floor y=0.
	if vol.Len() != 1 {
		t.Fatalf("converted %d cells, want 1", vol.Len())
	}
	if got, ok := vol.Get(volume.Vec3i{X: -1, Y: 3, Z: 0}); !ok || got != 9 {
		t.Fatalf("cropped stone cell = (%d,%v), want (9,true)", got, ok)
	}
}

func TestConvert_FirstPatternWins(t *testing.T) {
	w := NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, buildRegion(t)); err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}

	// Both patterns match stone; "minecraft:*" sorts before
	// "minecraft:stone" so the wildcard id wins.
	vol, err := w.Convert(Rules{"minecraft:stone": 1, "minecraft:*": 5}, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got, _ := vol.Get(volume.Vec3i{X: -5, Y: 3, Z: -3}); got != 5 {
		t.Fatalf("stone id = %d, want wildcard rule id 5", got)
	}
}

func TestConvert_NoRules(t *testing.T) {
	w := NewWorld()
	if _, err := w.Convert(nil, nil); err == nil {
		t.Fatal("expected error for empty rule set")
	}
}

func TestUnpackSection_ShortData(t *testing.T) {
	if _, err := unpackSection(make([]int64, 10), 2); err == nil {
		t.Fatal("expected error for short packed data")
	}
}
