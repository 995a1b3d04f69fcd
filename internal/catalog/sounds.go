package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"kithara/internal/services"
)

const searchLimit = 500

// Sound is one catalogued sound effect.
type Sound struct {
	ID              string
	EventName       string
	DisplayName     string
	Category        string
	UnitType        string
	Subcategory     string
	DurationSeconds float64
	FilePath        string
	Tags            []string
	IsFavorite      bool
}

// Facet is a category or unit-type bucket with its sound count.
type Facet struct {
	ID    string
	Name  string
	Count int
}

// UpsertSound inserts or replaces a sound row by id. The full-text index is
// maintained by trigger.
func (s *Store) UpsertSound(ctx context.Context, sound Sound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tagsJSON, err := json.Marshal(sound.Tags)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "catalog", "upsert sound", "serialize tags", err)
	}
	durationMS := int64(sound.DurationSeconds * 1000)

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sounds
         (id, event_name, display_name, category, unit_type, subcategory,
          duration_ms, file_path, tags, is_favorite)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sound.ID,
		sound.EventName,
		sound.DisplayName,
		sound.Category,
		nullableString(sound.UnitType),
		sound.Subcategory,
		durationMS,
		sound.FilePath,
		string(tagsJSON),
		boolToInt(sound.IsFavorite),
	)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "catalog", "upsert sound", sound.ID, err)
	}
	return nil
}

// Search returns sounds matching the query and optional facet filters. An
// empty query lists all sounds alphabetically; otherwise the full-text index
// answers a prefix query ordered by relevance. Never more than 500 rows.
func (s *Store) Search(ctx context.Context, query, category, unitType string) ([]Sound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.TrimSpace(query)
	var (
		sb   strings.Builder
		args []any
	)

	if query != "" {
		sb.WriteString(`SELECT s.id, s.event_name, s.display_name, s.category,
            s.unit_type, s.subcategory, s.duration_ms, s.file_path, s.tags, s.is_favorite
            FROM sounds s
            JOIN sounds_fts fts ON s.rowid = fts.rowid
            WHERE sounds_fts MATCH ?`)
		args = append(args, query+"*")
	} else {
		sb.WriteString(`SELECT s.id, s.event_name, s.display_name, s.category,
            s.unit_type, s.subcategory, s.duration_ms, s.file_path, s.tags, s.is_favorite
            FROM sounds s
            WHERE 1=1`)
	}
	if category != "" {
		sb.WriteString(" AND s.category = ?")
		args = append(args, category)
	}
	if unitType != "" {
		sb.WriteString(" AND s.unit_type = ?")
		args = append(args, unitType)
	}
	if query != "" {
		sb.WriteString(" ORDER BY rank LIMIT ?")
	} else {
		sb.WriteString(" ORDER BY s.display_name ASC LIMIT ?")
	}
	args = append(args, searchLimit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "search", query, err)
	}
	defer rows.Close()
	return collectSounds(rows)
}

// Categories returns all categories with their sound counts, busiest first.
func (s *Store) Categories(ctx context.Context) ([]Facet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) AS count FROM sounds GROUP BY category ORDER BY count DESC`)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "categories", "", err)
	}
	defer rows.Close()

	var facets []Facet
	for rows.Next() {
		var f Facet
		if err := rows.Scan(&f.ID, &f.Count); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "catalog", "categories", "scan", err)
		}
		f.Name = titleFromID(f.ID)
		facets = append(facets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "categories", "rows", err)
	}
	return facets, nil
}

// UnitTypes returns all unit types with their sound counts, alphabetical.
func (s *Store) UnitTypes(ctx context.Context) ([]Facet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT unit_type, COUNT(*) AS count FROM sounds
         WHERE unit_type IS NOT NULL GROUP BY unit_type ORDER BY unit_type ASC`)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "unit types", "", err)
	}
	defer rows.Close()

	var facets []Facet
	for rows.Next() {
		var f Facet
		if err := rows.Scan(&f.ID, &f.Count); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "catalog", "unit types", "scan", err)
		}
		f.Name = f.ID
		facets = append(facets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "unit types", "rows", err)
	}
	return facets, nil
}

// ToggleFavorite flips the favorite flag for a sound and returns the new
// state.
func (s *Store) ToggleFavorite(ctx context.Context, soundID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		"UPDATE sounds SET is_favorite = NOT is_favorite WHERE id = ?", soundID); err != nil {
		return false, services.Wrap(services.ErrPersistence, "catalog", "toggle favorite", soundID, err)
	}

	var state int
	err := s.db.QueryRowContext(ctx,
		"SELECT is_favorite FROM sounds WHERE id = ?", soundID).Scan(&state)
	if err != nil {
		return false, services.Wrap(services.ErrPersistence, "catalog", "toggle favorite", fmt.Sprintf("no sound with id %s", soundID), err)
	}
	return state != 0, nil
}

// Favorites returns all favorited sounds, alphabetical by display name.
func (s *Store) Favorites(ctx context.Context) ([]Sound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_name, display_name, category, unit_type, subcategory,
                duration_ms, file_path, tags, is_favorite
         FROM sounds WHERE is_favorite = 1 ORDER BY display_name ASC`)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "favorites", "", err)
	}
	defer rows.Close()
	return collectSounds(rows)
}

// CountSounds returns the number of catalogued sounds.
func (s *Store) CountSounds(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(ctx, "SELECT COUNT(*) FROM sounds")
}

// CountFavorites returns the number of favorited sounds.
func (s *Store) CountFavorites(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(ctx, "SELECT COUNT(*) FROM sounds WHERE is_favorite = 1")
}

func (s *Store) countLocked(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, services.Wrap(services.ErrPersistence, "catalog", "count", query, err)
	}
	return count, nil
}

func collectSounds(rows *sql.Rows) ([]Sound, error) {
	var sounds []Sound
	for rows.Next() {
		var (
			sound      Sound
			unitType   sql.NullString
			tagsJSON   sql.NullString
			durationMS int64
			favorite   int
		)
		if err := rows.Scan(
			&sound.ID,
			&sound.EventName,
			&sound.DisplayName,
			&sound.Category,
			&unitType,
			&sound.Subcategory,
			&durationMS,
			&sound.FilePath,
			&tagsJSON,
			&favorite,
		); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "catalog", "scan sound", "", err)
		}
		sound.UnitType = unitType.String
		sound.DurationSeconds = float64(durationMS) / 1000
		sound.IsFavorite = favorite != 0
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &sound.Tags); err != nil {
				sound.Tags = nil
			}
		}
		sounds = append(sounds, sound)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "collect sounds", "", err)
	}
	return sounds, nil
}

// titleFromID converts a snake_case category id to a display title.
func titleFromID(id string) string {
	words := strings.Split(id, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
