// Package mcworld imports Minecraft anvil region files into the
// editor's sparse volume: chunks are decompressed and NBT-decoded,
// block names are interned into a per-world palette, and glob
// conversion rules map names onto volume type ids.
package mcworld

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/oriumgames/nbt"
)

const (
	regionChunks = 32  // chunks per region axis
	sectorSize   = 4096

	// World height window of the modern anvil format.
	worldMinY   = -64
	worldHeight = 384
)

const airBlock = "minecraft:air"

// World accumulates loaded chunks and the interned block-name palette
// across any number of ReadRegion calls.
type World struct {
	paletteIndex map[string]uint16
	palette      []string
	chunks       map[[2]int][]uint16 // global chunk pos -> 16*worldHeight*16 ids
}

func NewWorld() *World {
	return &World{
		paletteIndex: map[string]uint16{},
		chunks:       map[[2]int][]uint16{},
	}
}

// LoadedChunks returns how many chunks have been read so far.
func (w *World) LoadedChunks() int { return len(w.chunks) }

// Palette returns the interned block names, indexed by palette id.
func (w *World) Palette() []string { return w.palette }

func (w *World) intern(name string) uint16 {
	if id, ok := w.paletteIndex[name]; ok {
		return id
	}
	id := uint16(len(w.palette))
	w.palette = append(w.palette, name)
	w.paletteIndex[name] = id
	return id
}

// ReadRegion parses one .mca region blob at region position regionPos,
// loading every present chunk whose global chunk coordinates fall
// inside the optional min/max chunk range (inclusive).
func (w *World) ReadRegion(regionPos [2]int, minChunk, maxChunk *[2]int, data []byte) error {
	if len(data) < 2*sectorSize {
		return fmt.Errorf("region blob too small: %d bytes", len(data))
	}

	for lz := 0; lz < regionChunks; lz++ {
		for lx := 0; lx < regionChunks; lx++ {
			gx := regionPos[0]*regionChunks + lx
			gz := regionPos[1]*regionChunks + lz
			if minChunk != nil && (gx < minChunk[0] || gz < minChunk[1]) {
				continue
			}
			if maxChunk != nil && (gx > maxChunk[0] || gz > maxChunk[1]) {
				continue
			}

			raw, err := chunkPayload(data, lx, lz)
			if err != nil {
				return fmt.Errorf("chunk (%d,%d): %w", gx, gz, err)
			}
			if raw == nil {
				continue // never generated
			}
			blocks, err := w.decodeChunk(raw)
			if err != nil {
				return fmt.Errorf("chunk (%d,%d): %w", gx, gz, err)
			}
			w.chunks[[2]int{gx, gz}] = blocks
		}
	}
	return nil
}

// chunkPayload extracts and decompresses one chunk's NBT blob, or
// returns nil when the chunk is absent from the region.
func chunkPayload(data []byte, lx, lz int) ([]byte, error) {
	loc := binary.BigEndian.Uint32(data[4*(lx+lz*regionChunks):])
	offset := int(loc >> 8)
	sectors := int(loc & 0xFF)
	if offset == 0 || sectors == 0 {
		return nil, nil
	}
	start := offset * sectorSize
	if start+5 > len(data) {
		return nil, fmt.Errorf("chunk offset %d beyond region end", start)
	}
	length := int(binary.BigEndian.Uint32(data[start:]))
	if length < 1 || start+4+length > len(data) {
		return nil, fmt.Errorf("bad chunk length %d", length)
	}
	scheme := data[start+4]
	body := data[start+5 : start+4+length]

	var r io.Reader
	switch scheme {
	case 1:
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case 2:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case 3:
		r = bytes.NewReader(body)
	default:
		return nil, fmt.Errorf("unknown compression scheme %d", scheme)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type chunkNBT struct {
	XPos     int32          `nbt:"xPos"`
	ZPos     int32          `nbt:"zPos"`
	Status   string         `nbt:"Status,omitempty"`
	Sections []sectionNBT   `nbt:"sections"`
	Extra    map[string]any `nbt:"*"`
}

type sectionNBT struct {
	// The nbt library only maps TAG_Byte to uint8; the value is the
	// signed section Y, reinterpreted via int8 where used.
	Y           uint8           `nbt:"Y"`
	// Value type rather than a pointer: the nbt decoder cannot
	// unmarshal TAG_Compound into pointer fields.
	BlockStates blockStatesNBT `nbt:"block_states,omitempty"`
	Extra       map[string]any  `nbt:"*"`
}

type blockStatesNBT struct {
	Palette []paletteEntryNBT `nbt:"palette"`
	Data    []int64           `nbt:"data,array,omitempty"`
	Extra   map[string]any    `nbt:"*"`
}

type paletteEntryNBT struct {
	Name       string         `nbt:"Name"`
	Properties map[string]any `nbt:"Properties,omitempty"`
}

// decodeChunk flattens a chunk's sections into a dense column of
// interned palette ids, indexed (y*16+z)*16+x with y relative to
// worldMinY.
func (w *World) decodeChunk(raw []byte) ([]uint16, error) {
	var c chunkNBT
	if err := nbt.NewDecoderWithEncoding(bytes.NewReader(raw), nbt.BigEndian).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode nbt: %w", err)
	}

	air := w.intern(airBlock)
	blocks := make([]uint16, 16*worldHeight*16)
	for i := range blocks {
		blocks[i] = air
	}

	for _, sec := range c.Sections {
		if len(sec.BlockStates.Palette) == 0 {
			continue
		}
		baseY := int(int8(sec.Y))*16 - worldMinY
		if baseY < 0 || baseY+16 > worldHeight {
			continue
		}

		local := make([]uint16, len(sec.BlockStates.Palette))
		for i, e := range sec.BlockStates.Palette {
			local[i] = w.intern(e.Name)
		}

		if len(sec.BlockStates.Data) == 0 {
			// Single-entry palette: the whole section is palette[0].
			for i := 0; i < 16*16*16; i++ {
				y, z, x := i/256, i/16%16, i%16
				blocks[((baseY+y)*16+z)*16+x] = local[0]
			}
			continue
		}

		indices, err := unpackSection(sec.BlockStates.Data, len(local))
		if err != nil {
			return nil, err
		}
		for i, pi := range indices {
			if int(pi) >= len(local) {
				return nil, fmt.Errorf("palette index %d out of range", pi)
			}
			y, z, x := i/256, i/16%16, i%16
			blocks[((baseY+y)*16+z)*16+x] = local[pi]
		}
	}
	return blocks, nil
}

// unpackSection expands the packed long array of one section into 4096
// palette indices. Entries never cross a long boundary.
func unpackSection(data []int64, paletteLen int) ([]uint16, error) {
	bits := bitsFor(paletteLen)
	perLong := 64 / bits
	need := (4096 + perLong - 1) / perLong
	if len(data) < need {
		return nil, fmt.Errorf("packed data too short: %d longs, want %d", len(data), need)
	}
	mask := uint64(1)<<bits - 1

	out := make([]uint16, 4096)
	for i := range out {
		l := uint64(data[i/perLong])
		shift := uint(i%perLong) * uint(bits)
		out[i] = uint16(l >> shift & mask)
	}
	return out, nil
}

func bitsFor(paletteLen int) int {
	bits := 4
	for 1<<bits < paletteLen {
		bits++
	}
	return bits
}
