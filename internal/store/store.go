// Package store records pipeline runs and their measured objects in a SQLite
// database so results can be compared across thresholds and images.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ironsheep/contour-tools/internal/detection"
)

// DB wraps the SQLite connection with serialized writes.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Run describes one invocation of the object-property pipeline.
type Run struct {
	ID          int64
	ImagePath   string
	Width       int
	Height      int
	Backend     string
	Threshold   int
	BlurSize    int
	ObjectCount int
	CreatedAt   time.Time
}

// New opens (creating if needed) the database at dbPath and applies the
// schema. Use ":memory:" for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive between calls.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		image_path TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		backend TEXT NOT NULL,
		threshold INTEGER NOT NULL,
		blur_size INTEGER DEFAULT 0,
		object_count INTEGER DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS objects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		object_index INTEGER NOT NULL,
		contour_index INTEGER NOT NULL,
		centroid_x REAL,
		centroid_y REAL,
		bbox_x INTEGER NOT NULL,
		bbox_y INTEGER NOT NULL,
		bbox_width INTEGER NOT NULL,
		bbox_height INTEGER NOT NULL,
		area REAL NOT NULL,
		perimeter REAL NOT NULL,
		aspect_ratio REAL NOT NULL,
		extent REAL NOT NULL,
		solidity REAL NOT NULL,
		equivalent_diameter REAL NOT NULL,
		orientation REAL,
		mean_intensity REAL NOT NULL,
		points INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_image_path ON runs(image_path);
	CREATE INDEX IF NOT EXISTS idx_objects_run_id ON objects(run_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveRun stores run and its objects in one transaction and returns the new
// run ID. run.ID, run.ObjectCount and a zero run.CreatedAt are filled in.
func (db *DB) SaveRun(run *Run, objects []detection.ObjectProperties) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.ObjectCount = len(objects)

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs (image_path, width, height, backend, threshold, blur_size, object_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ImagePath, run.Width, run.Height, run.Backend, run.Threshold, run.BlurSize, run.ObjectCount, run.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO objects (run_id, object_index, contour_index, centroid_x, centroid_y,
			bbox_x, bbox_y, bbox_width, bbox_height, area, perimeter, aspect_ratio, extent,
			solidity, equivalent_diameter, orientation, mean_intensity, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, obj := range objects {
		var cx, cy, orientation sql.NullFloat64
		if obj.Centroid != nil {
			cx = sql.NullFloat64{Float64: obj.Centroid.X, Valid: true}
			cy = sql.NullFloat64{Float64: obj.Centroid.Y, Valid: true}
		}
		if obj.Orientation != nil {
			orientation = sql.NullFloat64{Float64: *obj.Orientation, Valid: true}
		}

		if _, err := stmt.Exec(runID, obj.Index, obj.Contour, cx, cy,
			obj.BoundingBox.X, obj.BoundingBox.Y, obj.BoundingBox.Width, obj.BoundingBox.Height,
			obj.Area, obj.Perimeter, obj.AspectRatio, obj.Extent, obj.Solidity,
			obj.EquivalentDiameter, orientation, obj.MeanIntensity, obj.Points); err != nil {
			return 0, fmt.Errorf("failed to insert object: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	run.ID = runID
	return runID, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (db *DB) Runs(limit int) ([]Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`
		SELECT id, image_path, width, height, backend, threshold, blur_size, object_count, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ImagePath, &r.Width, &r.Height, &r.Backend,
			&r.Threshold, &r.BlurSize, &r.ObjectCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Objects returns the objects recorded for runID in index order.
func (db *DB) Objects(runID int64) ([]detection.ObjectProperties, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT object_index, contour_index, centroid_x, centroid_y,
			bbox_x, bbox_y, bbox_width, bbox_height, area, perimeter, aspect_ratio, extent,
			solidity, equivalent_diameter, orientation, mean_intensity, points
		FROM objects WHERE run_id = ? ORDER BY object_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	objects := make([]detection.ObjectProperties, 0)
	for rows.Next() {
		var obj detection.ObjectProperties
		var cx, cy, orientation sql.NullFloat64
		if err := rows.Scan(&obj.Index, &obj.Contour, &cx, &cy,
			&obj.BoundingBox.X, &obj.BoundingBox.Y, &obj.BoundingBox.Width, &obj.BoundingBox.Height,
			&obj.Area, &obj.Perimeter, &obj.AspectRatio, &obj.Extent, &obj.Solidity,
			&obj.EquivalentDiameter, &orientation, &obj.MeanIntensity, &obj.Points); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		if cx.Valid && cy.Valid {
			obj.Centroid = &detection.Centroid{X: cx.Float64, Y: cy.Float64}
		}
		if orientation.Valid {
			angle := orientation.Float64
			obj.Orientation = &angle
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}
