// Package db provides the persistence layer of the web server. It wraps a
// SQLite database holding the Last.fm sessions users registered with the
// server and the scrobbles seen while serving their recent tracks, from which
// local listening summaries are computed. Open a single DB with New and share
// it.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path. If the file does not
// exist it is created along with the required schema.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		d.SetMaxOpenConns(1)
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (username TEXT PRIMARY KEY, session_key TEXT NOT NULL, subscriber INTEGER NOT NULL DEFAULT 0, created_at INTEGER NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS scrobbles (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT, artist TEXT, track TEXT, album TEXT, played_at INTEGER)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_scrobble_unique ON scrobbles(username, artist, track, played_at)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// Session is a Last.fm session key registered for a user.
type Session struct {
	Username   string
	Key        string
	Subscriber bool
	CreatedAt  time.Time
}

// SaveSession stores the session for s.Username, replacing any earlier one.
// A zero CreatedAt is set to now.
func (db *DB) SaveSession(ctx context.Context, s Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO sessions(username, session_key, subscriber, created_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET session_key=excluded.session_key, subscriber=excluded.subscriber, created_at=excluded.created_at`,
		s.Username, s.Key, s.Subscriber, s.CreatedAt.Unix())
	return err
}

// GetSession returns the session stored for username. sql.ErrNoRows is
// returned when there is none.
func (db *DB) GetSession(ctx context.Context, username string) (Session, error) {
	var (
		s       Session
		created int64
	)
	err := db.QueryRowContext(ctx, `SELECT username, session_key, subscriber, created_at FROM sessions WHERE username=?`, username).
		Scan(&s.Username, &s.Key, &s.Subscriber, &created)
	if err != nil {
		return Session{}, err
	}
	s.CreatedAt = time.Unix(created, 0).UTC()
	return s, nil
}

// DeleteSession removes the session of username. sql.ErrNoRows is returned
// when none was stored, which allows callers to respond with a 404.
func (db *DB) DeleteSession(ctx context.Context, username string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE username=?`, username)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSessions returns every stored session ordered by username.
func (db *DB) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := db.QueryContext(ctx, `SELECT username, session_key, subscriber, created_at FROM sessions ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			s       Session
			created int64
		)
		if err := rows.Scan(&s.Username, &s.Key, &s.Subscriber, &created); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Scrobble is one play of a track.
type Scrobble struct {
	Artist   string
	Track    string
	Album    string
	PlayedAt time.Time
}

// AddScrobbles records plays for username in one transaction and returns how
// many were new. Plays already stored, or without a time (the track playing
// now), are skipped.
func (db *DB) AddScrobbles(ctx context.Context, username string, plays []Scrobble) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO scrobbles(username, artist, track, album, played_at) VALUES(?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, p := range plays {
		if p.PlayedAt.IsZero() {
			continue
		}
		res, err := stmt.ExecContext(ctx, username, p.Artist, p.Track, p.Album, p.PlayedAt.Unix())
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	return added, tx.Commit()
}

// ArtistCount represents how many times an artist was played.
type ArtistCount struct {
	Artist string
	Count  int
}

// TopArtistsSince returns the most played artists since the provided time.
func (db *DB) TopArtistsSince(ctx context.Context, username string, since time.Time) ([]ArtistCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT artist, COUNT(*) c FROM scrobbles WHERE username=? AND played_at>=? GROUP BY artist ORDER BY c DESC, artist`, username, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ArtistCount
	for rows.Next() {
		var ac ArtistCount
		if err := rows.Scan(&ac.Artist, &ac.Count); err != nil {
			return nil, err
		}
		res = append(res, ac)
	}
	return res, rows.Err()
}

// TrackCount represents how many times a specific track was played.
type TrackCount struct {
	Artist string
	Track  string
	Count  int
}

// TopTracksSince returns the most played tracks since the given time.
func (db *DB) TopTracksSince(ctx context.Context, username string, since time.Time) ([]TrackCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT artist, track, COUNT(*) c FROM scrobbles WHERE username=? AND played_at>=? GROUP BY artist, track ORDER BY c DESC, artist, track`, username, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []TrackCount
	for rows.Next() {
		var tc TrackCount
		if err := rows.Scan(&tc.Artist, &tc.Track, &tc.Count); err != nil {
			return nil, err
		}
		res = append(res, tc)
	}
	return res, rows.Err()
}

// MonthCount groups play count totals by month in YYYY-MM format.
type MonthCount struct {
	Month string
	Count int
}

// MonthlyPlayCountsSince aggregates plays per UTC month starting from the
// provided time. Results are ordered chronologically.
func (db *DB) MonthlyPlayCountsSince(ctx context.Context, username string, since time.Time) ([]MonthCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT strftime('%Y-%m', played_at, 'unixepoch') m, COUNT(*) c FROM scrobbles WHERE username=? AND played_at>=? GROUP BY m ORDER BY m`, username, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		res = append(res, mc)
	}
	return res, rows.Err()
}
