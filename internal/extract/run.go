package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"kithara/internal/catalog"
	"kithara/internal/classify"
	"kithara/internal/fileutil"
	"kithara/internal/logging"
	"kithara/internal/metadata"
	"kithara/internal/services"
	"kithara/internal/soundbank"
)

// soundbankNames are the archives the game ships its audio in. Each has a
// matching metadata document alongside.
var soundbankNames = []string{"Audio_Animation", "Audio_2D", "Audio_3D"}

// Progress slice boundaries for the run's stages.
const (
	progressMetadataDone  = 0.05
	progressArchivesDone  = 0.10
	progressEntriesDone   = 0.95
	progressStreamedStart = 0.96
)

func (m *Manager) run(ctx context.Context, opts Options, logger *slog.Logger) error {
	gameDir := opts.GameDir
	if gameDir == "" {
		gameDir = m.cfg.Paths.GameDir
	}
	if strings.TrimSpace(gameDir) == "" {
		return errors.New("game audio directory not configured")
	}

	// Stage 1: metadata documents.
	fileInfo := make(map[uint32]metadata.FileInfo)
	for _, name := range soundbankNames {
		xmlPath := filepath.Join(gameDir, name+".xml")
		if _, err := os.Stat(xmlPath); err != nil {
			logger.Warn("metadata document missing", logging.String("path", xmlPath))
			continue
		}
		parsed, err := metadata.ParseSoundbank(xmlPath)
		if err != nil {
			logger.Warn("metadata document unreadable", logging.String("path", xmlPath), logging.Error(err))
			continue
		}
		logger.Info("parsed metadata document",
			logging.String("path", xmlPath),
			logging.Int("entries", len(parsed)))
		for id, info := range parsed {
			fileInfo[id] = info
		}
	}
	eventsPath := filepath.Join(gameDir, "Events.xml")
	events, err := metadata.ParseEvents(eventsPath)
	if err != nil {
		logger.Warn("events document unreadable", logging.String("path", eventsPath), logging.Error(err))
	} else if len(events) > 0 {
		logger.Info("parsed events document", logging.Int("events", len(events)))
	}
	m.updateStatus(StateInProgress, progressMetadataDone, "Parsing soundbanks...")

	// Stage 2: archives.
	var entries []soundbank.Entry
	for _, name := range soundbankNames {
		if m.isCancelled(ctx) {
			return errCancelled
		}
		bnkPath := filepath.Join(gameDir, name+".bnk")
		if _, err := os.Stat(bnkPath); err != nil {
			logger.Warn("soundbank missing", logging.String(logging.FieldArchive, bnkPath))
			continue
		}
		parsed, err := soundbank.Parse(bnkPath)
		if err != nil {
			return err
		}
		logger.Info("parsed soundbank",
			logging.String(logging.FieldArchive, bnkPath),
			logging.Int("entries", len(parsed)))
		entries = append(entries, parsed...)
	}
	if len(entries) == 0 {
		return errors.New("no audio entries found in soundbanks")
	}
	m.updateStatus(StateInProgress, progressArchivesDone, "Extracting audio...")

	// Stage 3: working directories.
	stagingDir := m.cfg.StagingDir()
	soundsDir := m.cfg.SoundsDir()
	for _, dir := range []string{stagingDir, soundsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "extract", "run", fmt.Sprintf("create %s", dir), err)
		}
	}

	// Stage 4: per-entry pipeline.
	total := len(entries)
	processed := 0
	successful := 0
	skippedNoMetadata := 0
	for _, entry := range entries {
		if m.isCancelled(ctx) {
			_ = os.RemoveAll(stagingDir)
			return errCancelled
		}
		processed++

		info, ok := fileInfo[entry.AssetID]
		if !ok {
			skippedNoMetadata++
			continue
		}
		if classify.IsExcluded(info.ShortName, opts.IncludeMusic) {
			continue
		}

		if m.processEntry(ctx, entry, info, soundsDir, stagingDir, logger) {
			successful++
		}
		progress := progressArchivesDone + float64(processed)/float64(total)*(progressEntriesDone-progressArchivesDone)
		m.updateStatus(StateInProgress, progress, info.ShortName)
	}
	if skippedNoMetadata > 0 {
		logger.Info("entries without metadata skipped", logging.Int("count", skippedNoMetadata))
	}
	logger.Info("embedded extraction finished",
		logging.Int("processed", processed),
		logging.Int("successful", successful))

	// Staging holds nothing we want once every entry has been handled.
	_ = os.RemoveAll(stagingDir)

	// Stage 5: loose streamed tracks.
	if opts.IncludeMusic {
		m.updateStatus(StateInProgress, progressStreamedStart, "Extracting music tracks...")
		if err := m.runStreamedMusic(ctx, gameDir, soundsDir, logger); err != nil {
			if errors.Is(err, services.ErrCancelled) {
				return err
			}
			// A broken streamed listing must not void the embedded pass.
			logger.Warn("streamed music extraction failed", logging.Error(err))
		}
	}
	return nil
}

// processEntry takes one embedded asset from archive bytes to a catalog row.
// Failures are logged and reported as a skip, never escalated.
func (m *Manager) processEntry(ctx context.Context, entry soundbank.Entry, info metadata.FileInfo, soundsDir, stagingDir string, logger *slog.Logger) bool {
	wemPath := filepath.Join(stagingDir, fmt.Sprintf("%d.wem", entry.AssetID))
	defer os.Remove(wemPath)

	if err := soundbank.ExtractTo(entry, wemPath); err != nil {
		logger.Warn("extract failed",
			logging.Uint64(logging.FieldAssetID, uint64(entry.AssetID)),
			logging.Error(err))
		return false
	}

	isMusic := classify.IsMusic(info.ShortName)
	category, unitType, subcategory := classify.ParseShortName(info.ShortName)

	destDir := filepath.Join(soundsDir, "music")
	if !isMusic {
		destDir = filepath.Join(soundsDir, category)
		if unitType != "" {
			destDir = filepath.Join(destDir, strings.ToLower(unitType))
		}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		logger.Warn("create output dir failed", logging.String("dir", destDir), logging.Error(err))
		return false
	}

	filename := fmt.Sprintf("%d_%s.ogg", entry.AssetID, fileutil.SanitizeFilename(info.ShortName))
	destPath := filepath.Join(destDir, filename)

	if err := m.pipeline.Convert(ctx, wemPath, destPath); err != nil {
		logger.Warn("convert failed",
			logging.Uint64(logging.FieldAssetID, uint64(entry.AssetID)),
			logging.String("short_name", info.ShortName),
			logging.Error(err))
		return false
	}

	if isMusic {
		duration, err := m.pipeline.ProbeDuration(ctx, destPath)
		if err != nil {
			logger.Warn("duration probe failed", logging.String("path", destPath), logging.Error(err))
			duration = 0
		}
		track := catalog.MusicTrack{
			ID:              fmt.Sprintf("%d", entry.AssetID),
			Title:           classify.MusicTitle(info.ShortName),
			FilePath:        destPath,
			DurationSeconds: duration,
		}
		if err := m.store.UpsertTrack(ctx, track); err != nil {
			logger.Warn("catalog write failed", logging.Error(err))
			return false
		}
		return true
	}

	sound := catalog.Sound{
		ID:          fmt.Sprintf("%d", entry.AssetID),
		EventName:   info.ShortName,
		DisplayName: classify.DisplayName(info.ShortName),
		Category:    category,
		UnitType:    unitType,
		Subcategory: subcategory,
		FilePath:    destPath,
		Tags:        classify.Tags(info.ShortName, category, unitType),
	}
	if err := m.store.UpsertSound(ctx, sound); err != nil {
		logger.Warn("catalog write failed", logging.Error(err))
		return false
	}
	return true
}

// runStreamedMusic converts loose streamed tracks referenced by the
// project-scoped listing. Each asset is expected as <id>.wem next to the
// archives; absent files and already-converted destinations are skipped.
func (m *Manager) runStreamedMusic(ctx context.Context, gameDir, soundsDir string, logger *slog.Logger) error {
	infoPath := filepath.Join(gameDir, "SoundbanksInfo.xml")
	streamed, err := metadata.ParseStreamedFiles(infoPath)
	if err != nil {
		return err
	}
	logger.Info("streamed tracks listed", logging.Int("count", len(streamed)))
	if len(streamed) == 0 {
		return nil
	}

	musicDir := filepath.Join(soundsDir, "music")
	if err := os.MkdirAll(musicDir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "extract", "streamed music", fmt.Sprintf("create %s", musicDir), err)
	}

	total := len(streamed)
	processed := 0
	for id, info := range streamed {
		if m.isCancelled(ctx) {
			return errCancelled
		}
		processed++

		wemPath := filepath.Join(gameDir, fmt.Sprintf("%d.wem", id))
		if _, err := os.Stat(wemPath); err != nil {
			continue
		}

		title := classify.StreamedMusicTitle(info.ShortName)
		destPath := filepath.Join(musicDir, fmt.Sprintf("%d_%s.ogg", id, fileutil.SanitizeFilename(title)))
		if _, err := os.Stat(destPath); err == nil {
			continue
		}

		if err := m.pipeline.Convert(ctx, wemPath, destPath); err != nil {
			logger.Warn("streamed track convert failed",
				logging.String("short_name", info.ShortName),
				logging.Error(err))
			continue
		}

		duration, err := m.pipeline.ProbeDuration(ctx, destPath)
		if err != nil {
			logger.Warn("duration probe failed", logging.String("path", destPath), logging.Error(err))
			duration = 0
		}
		track := catalog.MusicTrack{
			ID:              fmt.Sprintf("%d", id),
			Title:           title,
			FilePath:        destPath,
			DurationSeconds: duration,
		}
		if err := m.store.UpsertTrack(ctx, track); err != nil {
			logger.Warn("catalog write failed", logging.Error(err))
			continue
		}

		progress := progressStreamedStart + float64(processed)/float64(total)*(1.0-progressStreamedStart)
		m.updateStatus(StateInProgress, progress, "Music: "+title)
	}
	return nil
}
