// Package encoding carries the wire codec for dense sub-region block
// data: run-length encoded varint pairs, base64 wrapped.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"voxelpatch.dev/internal/edit/volume"
)

// Wire ids are shifted by one so that 0 can mean "empty"; a sparse
// volume has no zero sentinel of its own.
const emptyID = 0

// EncodeIDs encodes a sequence of wire ids into base64(varint pairs).
// The pairs are (id, run_len) repeated.
func EncodeIDs(ids []uint32) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(ids) {
		id := ids[i]
		run := 1
		for j := i + 1; j < len(ids) && ids[j] == id; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(id))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeIDs(b64 string) ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint32
	for i := 0; i < len(raw); {
		id, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if id > 0x10000 {
			return nil, fmt.Errorf("wire id too large: %d", id)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint32(id))
		}
	}
	return out, nil
}

// EncodeRegion flattens the box (x fastest, then z, then y) into wire
// ids, empty cells as 0 and populated cells as type+1, and RLE-encodes
// the result.
func EncodeRegion(v *volume.Volume, b volume.Box) string {
	dx := b.Max.X - b.Min.X + 1
	dz := b.Max.Z - b.Min.Z + 1
	dy := b.Max.Y - b.Min.Y + 1
	ids := make([]uint32, 0, dx*dy*dz)
	for y := 0; y < dy; y++ {
		for z := 0; z < dz; z++ {
			for x := 0; x < dx; x++ {
				p := volume.Vec3i{X: b.Min.X + x, Y: b.Min.Y + y, Z: b.Min.Z + z}
				if t, ok := v.Get(p); ok {
					ids = append(ids, uint32(t)+1)
				} else {
					ids = append(ids, emptyID)
				}
			}
		}
	}
	return EncodeIDs(ids)
}

// DecodeRegion writes a region payload back into a volume at the box's
// position. Empty wire ids clear the cell.
func DecodeRegion(v *volume.Volume, b volume.Box, data string) error {
	dx := b.Max.X - b.Min.X + 1
	dz := b.Max.Z - b.Min.Z + 1
	dy := b.Max.Y - b.Min.Y + 1
	ids, err := DecodeIDs(data)
	if err != nil {
		return err
	}
	if len(ids) != dx*dy*dz {
		return fmt.Errorf("region payload holds %d cells, box wants %d", len(ids), dx*dy*dz)
	}
	i := 0
	for y := 0; y < dy; y++ {
		for z := 0; z < dz; z++ {
			for x := 0; x < dx; x++ {
				p := volume.Vec3i{X: b.Min.X + x, Y: b.Min.Y + y, Z: b.Min.Z + z}
				if id := ids[i]; id == emptyID {
					v.Delete(p)
				} else {
					v.Set(p, volume.TypeID(id-1))
				}
				i++
			}
		}
	}
	return nil
}
