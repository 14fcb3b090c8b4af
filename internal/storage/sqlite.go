// Package storage tracks level progress in an in-memory SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing is written to disk; progress lasts as long as the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrInvalidStars is returned when a completion is recorded with a rating
// outside 1-3.
var ErrInvalidStars = errors.New("storage: stars must be between 1 and 3")

// Store manages the SQLite connection for level progress.
type Store struct {
	db *sql.DB
}

// Completion is the best result a player reached on one level.
type Completion struct {
	Player    string
	LevelID   int
	Stars     int
	Completed bool
	UpdatedAt time.Time
}

// Open creates an empty in-memory progress database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			player TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, level_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. All progress is lost.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordCompletion stores a solved level for player.
// The stored rating only ever increases; improved reports whether this call
// changed it.
func (s *Store) RecordCompletion(player string, levelID, stars int) (improved bool, err error) {
	if stars < 1 || stars > 3 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidStars, stars)
	}

	result, err := s.db.Exec(
		`INSERT INTO progress (player, level_id, stars, completed, updated_at)
		 VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT (player, level_id) DO UPDATE
		 SET stars = excluded.stars, updated_at = excluded.updated_at
		 WHERE excluded.stars > progress.stars`,
		player, levelID, stars,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot record completion: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	return n > 0, nil
}

// Completion returns the record for one level. A level the player has not
// solved yields a zero-star, not completed record.
func (s *Store) Completion(player string, levelID int) (Completion, error) {
	c := Completion{Player: player, LevelID: levelID}

	var updatedAt any
	err := s.db.QueryRow(
		`SELECT stars, completed, updated_at FROM progress
		 WHERE player = ? AND level_id = ?`,
		player, levelID,
	).Scan(&c.Stars, &c.Completed, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("storage: cannot query completion: %w", err)
	}

	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

// All returns every solved level for player, ordered by level ID.
func (s *Store) All(player string) ([]Completion, error) {
	rows, err := s.db.Query(
		`SELECT level_id, stars, completed, updated_at
		 FROM progress
		 WHERE player = ?
		 ORDER BY level_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		c := Completion{Player: player}
		var updatedAt any
		if err := rows.Scan(&c.LevelID, &c.Stars, &c.Completed, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// StarsByLevel returns the best rating per level ID for player.
func (s *Store) StarsByLevel(player string) (map[int]int, error) {
	all, err := s.All(player)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(all))
	for _, c := range all {
		out[c.LevelID] = c.Stars
	}
	return out, nil
}

// Reset removes all progress for player.
func (s *Store) Reset(player string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// ForPlayer returns a view of the store bound to one player.
func (s *Store) ForPlayer(player string) *PlayerProgress {
	return &PlayerProgress{store: s, player: player}
}

// PlayerProgress records completions for a single player.
type PlayerProgress struct {
	store  *Store
	player string
}

// RecordCompletion stores a solved level.
func (p *PlayerProgress) RecordCompletion(levelID, stars int) error {
	_, err := p.store.RecordCompletion(p.player, levelID, stars)
	return err
}

// StarsByLevel returns the player's best rating per level ID.
func (p *PlayerProgress) StarsByLevel() (map[int]int, error) {
	return p.store.StarsByLevel(p.player)
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
