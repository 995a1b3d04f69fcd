package catalog

import (
	"context"
	"strings"

	"kithara/internal/services"
)

// MusicTrack is one catalogued music track.
type MusicTrack struct {
	ID              string
	Title           string
	FilePath        string
	DurationSeconds float64
}

// UpsertTrack inserts or replaces a music track row by id.
func (s *Store) UpsertTrack(ctx context.Context, track MusicTrack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO music_tracks (id, title, file_path, duration_secs)
         VALUES (?, ?, ?, ?)`,
		track.ID, track.Title, track.FilePath, track.DurationSeconds)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "catalog", "upsert track", track.ID, err)
	}
	return nil
}

// Tracks returns all music tracks ordered by title. A non-empty query
// filters by case-insensitive substring match, capped at 100 rows.
func (s *Store) Tracks(ctx context.Context, query string) ([]MusicTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		sql  string
		args []any
	)
	if strings.TrimSpace(query) == "" {
		sql = `SELECT id, title, file_path, duration_secs FROM music_tracks ORDER BY title ASC`
	} else {
		sql = `SELECT id, title, file_path, duration_secs FROM music_tracks
               WHERE LOWER(title) LIKE ? ORDER BY title ASC LIMIT 100`
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(query))+"%")
	}

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "tracks", query, err)
	}
	defer rows.Close()

	var tracks []MusicTrack
	for rows.Next() {
		var track MusicTrack
		if err := rows.Scan(&track.ID, &track.Title, &track.FilePath, &track.DurationSeconds); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "catalog", "tracks", "scan", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "tracks", "rows", err)
	}
	return tracks, nil
}

// CountTracks returns the number of catalogued music tracks.
func (s *Store) CountTracks(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(ctx, "SELECT COUNT(*) FROM music_tracks")
}
