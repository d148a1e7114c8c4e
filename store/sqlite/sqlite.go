// Package sqlite provides the reference SQLite-backed Store. The
// driver is pure Go, so the store works anywhere the library does,
// with no cgo toolchain.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/openpit/blast"
	"github.com/openpit/blast/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id       TEXT PRIMARY KEY,
    saved_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS holes (
    snapshot_id  TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    entity_name  TEXT NOT NULL,
    hole_id      TEXT NOT NULL,
    collar_x     REAL NOT NULL,
    collar_y     REAL NOT NULL,
    collar_z     REAL NOT NULL,
    angle        REAL NOT NULL,
    bearing      REAL NOT NULL,
    length       REAL NOT NULL,
    bench_height REAL NOT NULL,
    subdrill     REAL NOT NULL,
    diameter     REAL NOT NULL,
    from_hole_id TEXT NOT NULL,
    ord          INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, entity_name, hole_id)
);
CREATE TABLE IF NOT EXISTS kad_entities (
    snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    kind        INTEGER NOT NULL,
    color_name  TEXT NOT NULL,
    line_width  REAL NOT NULL,
    transparent REAL NOT NULL,
    radius      REAL NOT NULL,
    text        TEXT NOT NULL,
    vertices    TEXT NOT NULL,
    ord         INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, name)
);
`

// Store persists snapshots in a single SQLite file.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save writes the snapshot in one transaction. Retrying the same
// snapshot ID replaces the earlier rows.
func (s *Store) Save(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id = ?`, snap.ID); err != nil {
		return fmt.Errorf("sqlite: clear snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, saved_at) VALUES (?, ?)`,
		snap.ID, snap.SavedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("sqlite: insert snapshot: %w", err)
	}

	for i, h := range snap.Holes {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO holes (snapshot_id, entity_name, hole_id,
                collar_x, collar_y, collar_z,
                angle, bearing, length, bench_height, subdrill, diameter,
                from_hole_id, ord)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, h.EntityName, h.ID,
			h.Collar.X, h.Collar.Y, h.Collar.Z,
			h.Angle, h.Bearing, h.Length, h.BenchHeight, h.Subdrill, h.Diameter,
			h.FromHoleID, i); err != nil {
			return fmt.Errorf("sqlite: insert hole %s: %w", h.Key(), err)
		}
	}

	for i, e := range snap.Entities {
		verts, err := json.Marshal(e.Vertices)
		if err != nil {
			return fmt.Errorf("sqlite: encode vertices of %s: %w", e.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO kad_entities (snapshot_id, name, kind,
                color_name, line_width, transparent, radius, text, vertices, ord)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, e.Name, int(e.Kind),
			e.ColorName, e.LineWidth, e.Transparent, e.Radius, e.Text,
			string(verts), i); err != nil {
			return fmt.Errorf("sqlite: insert entity %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Latest loads the most recently saved snapshot.
func (s *Store) Latest(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	var savedAt string
	row := s.db.QueryRowContext(ctx,
		`SELECT id, saved_at FROM snapshots ORDER BY saved_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&snap.ID, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Snapshot{}, store.ErrSnapshotNotFound
		}
		return store.Snapshot{}, fmt.Errorf("sqlite: load snapshot: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("sqlite: parse saved_at: %w", err)
	}
	snap.SavedAt = t

	if snap.Holes, err = s.loadHoles(ctx, snap.ID); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Entities, err = s.loadEntities(ctx, snap.ID); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) loadHoles(ctx context.Context, id string) ([]blast.Hole, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT entity_name, hole_id, collar_x, collar_y, collar_z,
               angle, bearing, length, bench_height, subdrill, diameter, from_hole_id
        FROM holes WHERE snapshot_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load holes: %w", err)
	}
	defer rows.Close()

	var holes []blast.Hole
	for rows.Next() {
		var h blast.Hole
		if err := rows.Scan(&h.EntityName, &h.ID,
			&h.Collar.X, &h.Collar.Y, &h.Collar.Z,
			&h.Angle, &h.Bearing, &h.Length, &h.BenchHeight, &h.Subdrill,
			&h.Diameter, &h.FromHoleID); err != nil {
			return nil, fmt.Errorf("sqlite: scan hole: %w", err)
		}
		// Grade and Toe are derived, not stored.
		h.DeriveGeometry()
		holes = append(holes, h)
	}
	return holes, rows.Err()
}

func (s *Store) loadEntities(ctx context.Context, id string) ([]blast.KADEntity, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, kind, color_name, line_width, transparent, radius, text, vertices
        FROM kad_entities WHERE snapshot_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load entities: %w", err)
	}
	defer rows.Close()

	var ents []blast.KADEntity
	for rows.Next() {
		var e blast.KADEntity
		var kind int
		var verts string
		if err := rows.Scan(&e.Name, &kind, &e.ColorName, &e.LineWidth,
			&e.Transparent, &e.Radius, &e.Text, &verts); err != nil {
			return nil, fmt.Errorf("sqlite: scan entity: %w", err)
		}
		e.Kind = blast.KADKind(kind)
		if err := json.Unmarshal([]byte(verts), &e.Vertices); err != nil {
			return nil, fmt.Errorf("sqlite: decode vertices of %s: %w", e.Name, err)
		}
		ents = append(ents, e)
	}
	return ents, rows.Err()
}
