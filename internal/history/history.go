// Package history keeps an optional SQLite log of snapshot summaries,
// so an operator can compare topology counts across scans. Recording
// is opt-in; when disabled lvmnav writes nothing to disk.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"lvmnav/internal/scan"
)

// DefaultPath is the default database location.
const DefaultPath = "/var/lib/lvmnav/history.db"

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the history database at the given path.
func Open(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure history database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var version int
	if err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return err
	}

	migrations := []string{migrationV1}
	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}
		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

const migrationV1 = `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY,
    snapshot_id TEXT UNIQUE NOT NULL,
    taken_at TIMESTAMP NOT NULL,
    device_count INTEGER NOT NULL,
    pv_count INTEGER NOT NULL,
    vg_count INTEGER NOT NULL,
    lv_segment_count INTEGER NOT NULL,
    vg_total_bytes INTEGER NOT NULL,
    vg_free_bytes INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at);
`

// Record is one stored snapshot summary.
type Record struct {
	ID           int64
	SnapshotID   string
	TakenAt      time.Time
	DeviceCount  int
	PVCount      int
	VGCount      int
	LVSegments   int
	VGTotalBytes int64
	VGFreeBytes  int64
}

// RecordSnapshot stores a summary row for the given snapshot.
func (d *DB) RecordSnapshot(snap *scan.Snapshot) error {
	segments := 0
	for _, rows := range snap.LVsByVG {
		segments += len(rows)
	}

	var total, free int64
	for _, vg := range snap.VGByName {
		if v, err := strconv.ParseInt(vg.Size, 10, 64); err == nil {
			total += v
		}
		if v, err := strconv.ParseInt(vg.Free, 10, 64); err == nil {
			free += v
		}
	}

	_, err := d.conn.Exec(`
		INSERT INTO snapshots (
			snapshot_id, taken_at, device_count, pv_count, vg_count,
			lv_segment_count, vg_total_bytes, vg_free_bytes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(snapshot_id) DO NOTHING
	`,
		snap.ID.String(), snap.TakenAt, len(snap.Devices), len(snap.PVByPath),
		len(snap.VGByName), segments, total, free,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return nil
}

// List returns the most recent snapshot summaries, newest first.
func (d *DB) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
		SELECT id, snapshot_id, taken_at, device_count, pv_count, vg_count,
			lv_segment_count, vg_total_bytes, vg_free_bytes
		FROM snapshots ORDER BY taken_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SnapshotID, &r.TakenAt, &r.DeviceCount,
			&r.PVCount, &r.VGCount, &r.LVSegments, &r.VGTotalBytes, &r.VGFreeBytes); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
