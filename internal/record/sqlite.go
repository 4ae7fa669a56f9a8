package record

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"spmon/internal/model"
)

// SQLiteRecorder appends cycles to a samples table carrying exactly the
// CSV column set. Values are stored as text so the two sinks stay
// byte-for-byte comparable.
type SQLiteRecorder struct {
	db   *sql.DB
	path string
	n    int
}

func NewSQLite(path string, n int) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite log %s: %w", path, err)
	}
	return &SQLiteRecorder{db: db, path: path, n: n}, nil
}

func (r *SQLiteRecorder) EnsureSchema() error {
	cols := Header(r.n)
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%q TEXT", c)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS samples (%s)", strings.Join(defs, ", "))
	if _, err := r.db.Exec(stmt); err != nil {
		return fmt.Errorf("creating samples table: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) Append(c model.Cycle) error {
	row := Row(c, r.n)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", ")
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	stmt := fmt.Sprintf("INSERT INTO samples VALUES (%s)", placeholders)
	if _, err := r.db.Exec(stmt, args...); err != nil {
		return fmt.Errorf("inserting sample: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }

func (r *SQLiteRecorder) Target() string { return r.path }
