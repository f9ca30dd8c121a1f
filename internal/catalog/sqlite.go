package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/simonhull/cuesheet/internal/types"
)

// sqliteStore is the SQLite implementation of Store.
type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const createTablesSQL = `
	CREATE TABLE IF NOT EXISTS discs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		performer TEXT NOT NULL DEFAULT '',
		songwriter TEXT NOT NULL DEFAULT '',
		catalog TEXT NOT NULL DEFAULT '',
		file_count INTEGER NOT NULL DEFAULT 0,
		track_count INTEGER NOT NULL DEFAULT 0,
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		disc_id INTEGER NOT NULL REFERENCES discs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		file_path TEXT NOT NULL,
		file_format TEXT NOT NULL,
		number TEXT NOT NULL,
		format TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		performer TEXT NOT NULL DEFAULT '',
		isrc TEXT NOT NULL DEFAULT '',
		start_ns INTEGER
	);
	CREATE INDEX IF NOT EXISTS tracks_disc_id ON tracks(disc_id);
	`

// NewSQLiteStore opens (creating if needed) the catalog at dataSourceName.
//
// ":memory:" gives a private in-memory catalog, useful in tests.
func NewSQLiteStore(dataSourceName string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite3", withForeignKeys(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog tables: %w", err)
	}
	logger.Debug("catalog opened", "dsn", dataSourceName)
	return &sqliteStore{db: db, logger: logger}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.logger.Debug("catalog closed")
	return err
}

func (s *sqliteStore) Put(ctx context.Context, path string, disc *types.Disc) error {
	if disc == nil {
		return fmt.Errorf("put %s: nil disc", path)
	}
	e := entryFromDisc(path, disc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks WHERE disc_id IN (SELECT id FROM discs WHERE path = ?)", path); err != nil {
		return fmt.Errorf("put %s: clear tracks: %w", path, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM discs WHERE path = ?", path); err != nil {
		return fmt.Errorf("put %s: clear disc: %w", path, err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO discs (path, title, performer, songwriter, catalog, file_count, track_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Path, e.Title, e.Performer, e.Songwriter, e.Catalog, e.FileCount, e.TrackCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %s: insert disc: %w", path, err)
	}
	discID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tracks (disc_id, position, file_path, file_format, number, format, title, performer, isrc, start_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	defer stmt.Close()

	for _, t := range e.Tracks {
		var start sql.NullInt64
		if t.Start != nil {
			start = sql.NullInt64{Int64: int64(*t.Start), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, discID, t.Position, t.FilePath, t.FileFormat,
			t.Number, t.Format, t.Title, t.Performer, t.ISRC, start); err != nil {
			return fmt.Errorf("put %s: insert track %s: %w", path, t.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put %s: commit: %w", path, err)
	}
	s.logger.Debug("sheet indexed", "path", path, "tracks", e.TrackCount)
	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, path string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks WHERE disc_id IN (SELECT id FROM discs WHERE path = ?)", path); err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM discs WHERE path = ?", path)
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("remove %s: commit: %w", path, err)
	}
	if n > 0 {
		s.logger.Debug("sheet removed", "path", path)
	}
	return n > 0, nil
}

func (s *sqliteStore) Get(ctx context.Context, path string) (*Entry, error) {
	var (
		e       Entry
		discID  int64
		indexed sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path, title, performer, songwriter, catalog, file_count, track_count, indexed_at
		 FROM discs WHERE path = ?`, path).
		Scan(&discID, &e.Path, &e.Title, &e.Performer, &e.Songwriter, &e.Catalog, &e.FileCount, &e.TrackCount, &indexed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	e.IndexedAt = indexed.Time

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, file_path, file_format, number, format, title, performer, isrc, start_ns
		 FROM tracks WHERE disc_id = ? ORDER BY position`, discID)
	if err != nil {
		return nil, fmt.Errorf("get %s: tracks: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", path, err)
		}
		e.Tracks = append(e.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return &e, nil
}

func (s *sqliteStore) Search(ctx context.Context, term string) ([]Hit, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.path, d.title, d.performer,
		        t.position, t.file_path, t.file_format, t.number, t.format, t.title, t.performer, t.isrc, t.start_ns
		 FROM tracks t JOIN discs d ON d.id = t.disc_id
		 WHERE t.title LIKE ?1 ESCAPE '\' OR t.performer LIKE ?1 ESCAPE '\'
		    OR d.title LIKE ?1 ESCAPE '\' OR d.performer LIKE ?1 ESCAPE '\'
		 ORDER BY d.path, t.position`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h     Hit
			start sql.NullInt64
		)
		if err := rows.Scan(&h.SheetPath, &h.DiscTitle, &h.DiscPerformer,
			&h.Track.Position, &h.Track.FilePath, &h.Track.FileFormat, &h.Track.Number, &h.Track.Format,
			&h.Track.Title, &h.Track.Performer, &h.Track.ISRC, &start); err != nil {
			return nil, fmt.Errorf("search %q: %w", term, err)
		}
		h.Track.Start = durationOrNil(start)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return hits, nil
}

func (s *sqliteStore) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path FROM discs ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("list paths: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func scanTrack(rows *sql.Rows) (TrackEntry, error) {
	var (
		t     TrackEntry
		start sql.NullInt64
	)
	if err := rows.Scan(&t.Position, &t.FilePath, &t.FileFormat, &t.Number, &t.Format,
		&t.Title, &t.Performer, &t.ISRC, &start); err != nil {
		return TrackEntry{}, err
	}
	t.Start = durationOrNil(start)
	return t, nil
}

func durationOrNil(v sql.NullInt64) *time.Duration {
	if !v.Valid {
		return nil
	}
	d := time.Duration(v.Int64)
	return &d
}

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
