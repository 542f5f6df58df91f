// Package visitors counts page views without keeping anything that
// identifies a visitor. IP addresses are salted and hashed before they
// reach the database, and old rows are pruned.
package visitors

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// timeLayout sorts lexically, so range queries can compare strings.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL,
	visited_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);
CREATE INDEX IF NOT EXISTS idx_visits_hashed_ip ON visits(hashed_ip);
`

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	VisitedAt time.Time `json:"visited_at"`
}

// PathCount is a path and how often it was viewed.
type PathCount struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

// Stats summarises the visits table.
type Stats struct {
	TotalVisits    int64       `json:"total_visits"`
	UniqueVisitors int64       `json:"unique_visitors"`
	VisitsToday    int64       `json:"visits_today"`
	VisitsThisWeek int64       `json:"visits_this_week"`
	TopPaths       []PathCount `json:"top_paths"`
	RecentVisits   []Visit     `json:"recent_visits"`
}

// Store wraps the sqlite database holding visits.
type Store struct {
	db *sql.DB
}

// Open creates or opens the visits database at path.
func Open(path string) (s *Store, err error) {
	if dir := filepath.Dir(path); dir != "." {
		err = os.MkdirAll(dir, 0o755)
		if err != nil {
			err = errors.Wrapf(err, "failed to create database directory %s", dir)
			return nil, err
		}
	}

	var db *sql.DB
	db, err = sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		err = errors.Wrapf(err, "failed to open visits database %s", path)
		return nil, err
	}
	// sqlite has a single writer.
	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		err = errors.Wrapf(err, "failed to ping visits database %s", path)
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil {
		_ = db.Close()
		err = errors.Wrap(err, "failed to create visits schema")
		return nil, err
	}

	s = &Store{db: db}
	return s, err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts v. VisitedAt is stored in UTC at second precision.
func (s *Store) Record(ctx context.Context, v Visit) (err error) {
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.VisitedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		err = errors.Wrap(err, "failed to record visit")
	}
	return err
}

// Prune deletes visits older than before and reports how many went.
func (s *Store) Prune(ctx context.Context, before time.Time) (n int64, err error) {
	var res sql.Result
	res, err = s.db.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, before.UTC().Format(timeLayout))
	if err != nil {
		err = errors.Wrap(err, "failed to prune visits")
		return n, err
	}
	n, err = res.RowsAffected()
	return n, err
}

// Stats computes totals relative to now. "Today" starts at UTC midnight.
func (s *Store) Stats(ctx context.Context, now time.Time) (st Stats, err error) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.TotalVisits, `SELECT COUNT(*) FROM visits`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&st.VisitsToday, `SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{midnight.Format(timeLayout)}},
		{&st.VisitsThisWeek, `SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{weekAgo.Format(timeLayout)}},
	}
	for _, c := range counts {
		err = s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst)
		if err != nil {
			err = errors.Wrapf(err, "failed to run %q", c.query)
			return st, err
		}
	}

	st.TopPaths, err = s.topPaths(ctx, 10)
	if err != nil {
		return st, err
	}

	st.RecentVisits, err = s.Recent(ctx, 20)
	return st, err
}

func (s *Store) topPaths(ctx context.Context, limit int) (out []PathCount, err error) {
	var rows *sql.Rows
	rows, err = s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS n
		FROM visits
		GROUP BY path
		ORDER BY n DESC, path ASC
		LIMIT ?`, limit)
	if err != nil {
		err = errors.Wrap(err, "failed to query top paths")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pc PathCount
		err = rows.Scan(&pc.Path, &pc.Visits)
		if err != nil {
			err = errors.Wrap(err, "failed to scan path count")
			return nil, err
		}
		out = append(out, pc)
	}
	err = rows.Err()
	return out, err
}

// Recent returns the newest visits first.
func (s *Store) Recent(ctx context.Context, limit int) (out []Visit, err error) {
	var rows *sql.Rows
	rows, err = s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, visited_at
		FROM visits
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		err = errors.Wrap(err, "failed to query recent visits")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Visit
		var at string
		err = rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at)
		if err != nil {
			err = errors.Wrap(err, "failed to scan visit")
			return nil, err
		}
		v.VisitedAt, err = time.ParseInLocation(timeLayout, at, time.UTC)
		if err != nil {
			err = errors.Wrapf(err, "bad timestamp on visit %d", v.ID)
			return nil, err
		}
		out = append(out, v)
	}
	err = rows.Err()
	return out, err
}
