package catalog

import (
	"context"
	"os"
	"strings"

	"kithara/internal/services"
)

// markerRemovedExcludedSounds records that withheld-content rows stored by
// older builds have been purged. The key is stable; bump the suffix if the
// vocabulary ever changes enough to warrant a re-run.
const markerRemovedExcludedSounds = "migration_removed_excluded_sounds_v1"

// RunMigrations executes one-shot data migrations. Safe to invoke
// unconditionally at startup; completed migrations are skipped via metadata
// markers.
func (s *Store) RunMigrations(ctx context.Context, withheldPatterns []string) error {
	return s.removeExcludedSounds(ctx, withheldPatterns)
}

// removeExcludedSounds permanently deletes sound rows whose event name
// matches the withheld-content vocabulary, along with their audio files on
// disk. Runs once, tracked via a migration marker.
func (s *Store) removeExcludedSounds(ctx context.Context, patterns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, done, err := s.metadataLocked(ctx, markerRemovedExcludedSounds); err != nil {
		return err
	} else if done {
		return nil
	}

	paths, err := s.deleteMatchingLocked(ctx, patterns)
	if err != nil {
		return err
	}
	for _, path := range paths {
		// Best effort; a missing file is not worth failing the migration.
		_ = os.Remove(path)
	}

	return s.setMetadataLocked(ctx, markerRemovedExcludedSounds, "done")
}

// deleteMatchingLocked removes sounds whose event name contains any pattern
// (case-insensitive) and returns the file paths of the removed rows.
func (s *Store) deleteMatchingLocked(ctx context.Context, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(patterns))
	args := make([]any, 0, len(patterns))
	for _, pattern := range patterns {
		conditions = append(conditions, "LOWER(event_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(pattern)+"%")
	}
	where := strings.Join(conditions, " OR ")

	rows, err := s.db.QueryContext(ctx, "SELECT file_path FROM sounds WHERE "+where, args...)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "migration", "select excluded", err)
	}
	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, services.Wrap(services.ErrPersistence, "catalog", "migration", "scan excluded", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, services.Wrap(services.ErrPersistence, "catalog", "migration", "rows", err)
	}
	rows.Close()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM sounds WHERE "+where, args...); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "migration", "delete excluded", err)
	}
	return paths, nil
}
