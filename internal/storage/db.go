package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gstreco/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  file2b TEXT NOT NULL,
  fileBooks TEXT NOT NULL,
  outputPath TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  warningCount INTEGER NOT NULL DEFAULT 0,
  totalMs REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_traceId ON runs(traceId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun records one completed reconciliation with its per-status counts.
func (d *DB) InsertRun(traceID, file2b, fileBooks, outputPath string, counts map[internal.MatchStatus]int, warnings int, totalMs float64) error {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(
		`INSERT INTO runs (traceId, file2b, fileBooks, outputPath, countsJson, warningCount, totalMs) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		traceID, file2b, fileBooks, outputPath, string(countsJSON), warnings, totalMs,
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.Query(
		`SELECT id, traceId, file2b, fileBooks, outputPath, countsJson, warningCount, totalMs, createdAt
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var rec internal.RunRecord
		var countsJSON string
		if err := rows.Scan(&rec.ID, &rec.TraceID, &rec.File2B, &rec.FileBooks, &rec.Output, &countsJSON, &rec.Warnings, &rec.TotalMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(countsJSON), &rec.Counts); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT INTO metadata (key, value, updatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	row := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}
