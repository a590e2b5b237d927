package slight

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `CREATE TABLE IF NOT EXISTS history (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	entry     TEXT NOT NULL,
	result    TEXT,
	error     TEXT,
	steps     INTEGER NOT NULL DEFAULT 0,
	timestamp TEXT NOT NULL
)`

// History persists evaluation traces in a SQLite database.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Record appends a trace. Only the step count is stored, not the steps.
func (h *History) Record(t *Trace) error {
	var result, errText sql.NullString
	if t.Error != "" {
		errText = sql.NullString{String: t.Error, Valid: true}
	} else {
		result = sql.NullString{String: t.Result, Valid: true}
	}
	_, err := h.db.Exec(
		`INSERT INTO history (entry, result, error, steps, timestamp) VALUES (?, ?, ?, ?, ?)`,
		t.Entry, result, errText, t.StepCount, t.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// Recent returns up to n of the latest traces, oldest first. n <= 0 means all.
func (h *History) Recent(n int) ([]Trace, error) {
	query := `SELECT entry, result, error, steps, timestamp FROM history ORDER BY id DESC`
	args := []any{}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var traces []Trace
	for rows.Next() {
		var (
			t             Trace
			result, errTx sql.NullString
		)
		if err := rows.Scan(&t.Entry, &result, &errTx, &t.StepCount, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		t.Result = result.String
		t.Error = errTx.String
		traces = append(traces, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	for i, j := 0, len(traces)-1; i < j; i, j = i+1, j-1 {
		traces[i], traces[j] = traces[j], traces[i]
	}
	return traces, nil
}

// Clear deletes every recorded trace.
func (h *History) Clear() error {
	if _, err := h.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	return h.db.Close()
}
