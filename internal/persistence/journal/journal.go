// Package journal durably records confirmed edit operations as
// compressed JSONL, one record per committed cell delta.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"voxelpatch.dev/internal/edit/volume"
)

// CellRecord is one cell of an operation record.
type CellRecord struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	Block uint16 `json:"block"`
}

// OpRecord is the undo-sink payload for one confirmed operation.
type OpRecord struct {
	OpID    string       `json:"op_id"`
	At      string       `json:"at"` // RFC3339 UTC
	Added   []CellRecord `json:"added"`
	Removed []CellRecord `json:"removed"`
}

// Writer appends zstd-compressed JSONL records, rotating hourly.
type Writer struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewWriter(baseDir, prefix string) *Writer {
	return &Writer{
		baseDir: baseDir,
		prefix:  prefix,
	}
}

// Record implements the engine's undo sink: it converts the delta to
// a persistent record and appends it.
func (w *Writer) Record(d volume.CellDelta) error {
	rec := OpRecord{
		OpID:    uuid.NewString(),
		At:      time.Now().UTC().Format(time.RFC3339),
		Added:   cellRecords(d.Added),
		Removed: cellRecords(d.Removed),
	}
	return w.write(rec)
}

func cellRecords(m map[volume.Vec3i]volume.TypeID) []CellRecord {
	out := make([]CellRecord, 0, len(m))
	for p, t := range m {
		out = append(out, CellRecord{X: p.X, Y: p.Y, Z: p.Z, Block: uint16(t)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	dir := filepath.Dir(w.pathForHour(hour))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
