// Package templates stores named patterns in a local SQLite database.
package templates

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
)

var ErrNotFound = errors.New("pattern template not found")

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	name       TEXT PRIMARY KEY,
	cells_json TEXT NOT NULL,
	digest     TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

type cellJSON struct {
	Pos    [3]int `json:"pos"`
	Block  uint16 `json:"block"`
	Orient uint8  `json:"orient,omitempty"`
	Shape  string `json:"shape,omitempty"`
}

// Save upserts a named pattern. The pattern must carry a name.
func (s *Store) Save(p pattern.Pattern) error {
	if p.Name == "" {
		return fmt.Errorf("pattern has no name")
	}
	cells := make([]cellJSON, 0, len(p.Cells))
	for c, t := range p.Cells {
		cells = append(cells, cellJSON{
			Pos:    [3]int{c.X, c.Y, c.Z},
			Block:  uint16(t),
			Orient: p.Orientations[c],
			Shape:  p.Shapes[c],
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i].Pos, cells[j].Pos
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		if a[2] != b[2] {
			return a[2] < b[2]
		}
		return a[0] < b[0]
	})
	blob, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(blob)

	_, err = s.db.Exec(`
INSERT INTO patterns(name, cells_json, digest, updated_at) VALUES(?,?,?,?)
ON CONFLICT(name) DO UPDATE SET cells_json=excluded.cells_json, digest=excluded.digest, updated_at=excluded.updated_at`,
		p.Name, string(blob), hex.EncodeToString(digest[:]), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Load returns the stored pattern, re-normalized on the way out.
func (s *Store) Load(name string) (pattern.Pattern, error) {
	var blob string
	err := s.db.QueryRow(`SELECT cells_json FROM patterns WHERE name=?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return pattern.Pattern{}, ErrNotFound
	}
	if err != nil {
		return pattern.Pattern{}, err
	}

	var cells []cellJSON
	if err := json.Unmarshal([]byte(blob), &cells); err != nil {
		return pattern.Pattern{}, fmt.Errorf("template %q: %w", name, err)
	}
	cm := make(map[volume.Vec3i]volume.TypeID, len(cells))
	om := map[volume.Vec3i]uint8{}
	sm := map[volume.Vec3i]string{}
	for _, c := range cells {
		p := volume.Vec3i{X: c.Pos[0], Y: c.Pos[1], Z: c.Pos[2]}
		cm[p] = volume.TypeID(c.Block)
		if c.Orient != 0 {
			om[p] = c.Orient
		}
		if c.Shape != "" {
			sm[p] = c.Shape
		}
	}
	return pattern.Normalize(cm, name, om, sm)
}

// List returns stored template names in alphabetical order.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM patterns ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM patterns WHERE name=?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
