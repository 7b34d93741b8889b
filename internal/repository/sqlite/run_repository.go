package sqlite

import (
	"fmt"
	"time"
)

// Run statuses recorded in the run log.
const (
	RunStatusOK    = "ok"
	RunStatusError = "error"
)

// Run is one pipeline execution: a (device, image) analysis attempt with
// its outcome and duration.
type Run struct {
	ID         int64     `json:"id"`
	Device     string    `json:"device"`
	Image      string    `json:"image"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunRepository handles run log operations.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Insert records a pipeline run and returns its id.
func (r *RunRepository) Insert(run *Run) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result, err := r.db.conn.Exec(`
		INSERT INTO runs (device, image, status, error, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, run.Device, run.Image, run.Status, run.Error, run.DurationMs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// ListByDevice returns the most recent runs for a device, newest first.
func (r *RunRepository) ListByDevice(device string, limit int) ([]Run, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.conn.Query(`
		SELECT id, device, image, status, error, duration_ms, created_at
		FROM runs WHERE device = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, device, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Device, &run.Image, &run.Status, &run.Error, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// CountByStatus returns run totals per status for a device.
func (r *RunRepository) CountByStatus(device string) (map[string]int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows, err := r.db.conn.Query(`
		SELECT status, COUNT(*) FROM runs WHERE device = ? GROUP BY status
	`, device)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
