// Package storage persists finished runs into a SQLite database so
// results can be queried or diffed across builds. The in-memory index
// is never reloaded from here; this is a write-once export.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"kerncount/internal/errors"
	"kerncount/internal/index"
	"kerncount/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	target          TEXT NOT NULL,
	build_dir       TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	total_instances INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS occurrences (
	run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	object_path    TEXT NOT NULL,
	kernel         TEXT NOT NULL,
	instance_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, object_path, kernel)
);

CREATE INDEX IF NOT EXISTS idx_occurrences_kernel ON occurrences(run_id, kernel);
`

// DB is a handle on the run-export database
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the export database at dbPath
func Open(dbPath string, logger *logging.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunMeta describes the run being exported
type RunMeta struct {
	Target   string
	BuildDir string
}

// SaveRun writes one finished run and every (object, kernel) count into
// the database in a single transaction. It returns the generated run id.
func (db *DB) SaveRun(meta RunMeta, idx *index.Index) (string, error) {
	runID := uuid.NewString()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", errors.NewKernError(errors.ExportFailed, "Failed to begin export transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, target, build_dir, created_at, total_instances) VALUES (?, ?, ?, ?, ?)`,
		runID, meta.Target, meta.BuildDir, time.Now().UTC().Format(time.RFC3339), idx.TotalOccurrences(),
	)
	if err != nil {
		return "", errors.NewKernError(errors.ExportFailed, "Failed to insert run", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO occurrences (run_id, object_path, kernel, instance_count) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return "", errors.NewKernError(errors.ExportFailed, "Failed to prepare occurrence insert", err)
	}
	defer stmt.Close()

	for _, pc := range idx.PairCounts() {
		if _, err := stmt.Exec(runID, pc.Object, pc.Kernel, pc.Count); err != nil {
			return "", errors.NewKernError(errors.ExportFailed, "Failed to insert occurrence", err).
				WithDetails(map[string]interface{}{
					"object": pc.Object,
					"kernel": pc.Kernel,
				})
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.NewKernError(errors.ExportFailed, "Failed to commit export", err)
	}

	db.logger.Info("Run exported", map[string]interface{}{
		"run":       runID,
		"target":    meta.Target,
		"pairs":     len(idx.PairCounts()),
		"instances": idx.TotalOccurrences(),
	})

	return runID, nil
}
