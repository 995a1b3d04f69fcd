package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"kithara/internal/catalog"
	"kithara/internal/config"
	"kithara/internal/convert"
	"kithara/internal/logging"
	"kithara/internal/services"
)

// Options control one extraction run.
type Options struct {
	// GameDir overrides the configured game audio directory when non-empty.
	GameDir string
	// IncludeMusic extracts embedded and streamed music assets too.
	IncludeMusic bool
}

// Manager owns extraction run state: one run at a time, cooperative
// cancellation, poll-based progress. A file lock prevents concurrent runs
// across processes sharing a cache directory.
type Manager struct {
	cfg      *config.Config
	store    *catalog.Store
	logger   *slog.Logger
	pipeline convert.Pipeline
	lock     *flock.Flock

	mu        sync.Mutex
	status    Status
	wg        sync.WaitGroup
	cancelled atomic.Bool
}

// NewManager constructs a manager bound to a catalog store.
func NewManager(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "extract"),
		pipeline: convert.Pipeline{
			VgmstreamBinary: cfg.Tools.Vgmstream,
			FFmpegBinary:    cfg.Tools.FFmpeg,
			FFprobeBinary:   cfg.Tools.FFprobe,
			VorbisQuality:   cfg.Conversion.VorbisQuality,
		},
		lock:   flock.New(filepath.Join(cfg.Paths.CacheDir, "extract.lock")),
		status: Status{State: StateNotStarted},
	}
}

// Status returns a snapshot of the current run state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Cancel requests cooperative cancellation of the active run. The run stops
// after finishing the current entry's in-flight stage.
func (m *Manager) Cancel() {
	m.cancelled.Store(true)
}

// Reset returns the manager to its initial state. Rejected while a run is
// active.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.State == StateInProgress {
		return errors.New("extraction in progress")
	}
	m.status = Status{State: StateNotStarted}
	m.cancelled.Store(false)
	return nil
}

// Start launches an extraction run in the background. It fails if a run is
// already in progress in this process or if another process holds the run
// lock. Callers observe completion by polling Status or calling Wait.
func (m *Manager) Start(ctx context.Context, opts Options) error {
	m.mu.Lock()
	if m.status.State == StateInProgress {
		m.mu.Unlock()
		return errors.New("extraction already in progress")
	}

	locked, err := m.lock.TryLock()
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		m.mu.Unlock()
		return errors.New("another extraction run is already active")
	}

	m.status = Status{State: StateInProgress, CurrentFile: "Parsing metadata..."}
	m.cancelled.Store(false)
	m.mu.Unlock()

	runID := uuid.NewString()
	logger := m.logger.With(logging.String(logging.FieldRunID, runID))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			if err := m.lock.Unlock(); err != nil {
				logger.Warn("release run lock", logging.Error(err))
			}
		}()

		if err := m.run(ctx, opts, logger); err != nil {
			logger.Error("extraction failed", logging.Error(err))
			m.setError(err)
			return
		}
		m.updateStatus(StateComplete, 1.0, "")
		logger.Info("extraction complete")
	}()
	return nil
}

// Wait blocks until the active run (if any) finishes.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) isCancelled(ctx context.Context) bool {
	return m.cancelled.Load() || ctx.Err() != nil
}

// updateStatus records a progress step. Progress never moves backwards
// within a run.
func (m *Manager) updateStatus(state State, progress float64, currentFile string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if progress < m.status.Progress {
		progress = m.status.Progress
	}
	m.status.State = state
	m.status.Progress = progress
	m.status.CurrentFile = currentFile
}

func (m *Manager) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.State = StateError
	m.status.CurrentFile = ""
	m.status.Error = err.Error()
}

var errCancelled = services.Wrap(services.ErrCancelled, "extract", "run", "extraction cancelled", nil)
