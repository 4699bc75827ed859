package fs

import (
	"context"
	"log/slog"
	"os"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// StateStore owns the per-child state directory layout and the advisory lock
// files under the data root.
type StateStore struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewStateStore creates the filesystem state store
func NewStateStore(cfg *config.RuntimeConfig, log *slog.Logger) *StateStore {
	return &StateStore{cfg: cfg, log: log}
}

// LiveHandles scans the instance's lock files and returns the handles whose
// recorded pid is still alive. Stale lock files (dead pid) are removed so a
// crashed network does not block the next start.
func (s *StateStore) LiveHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error) {
	return s.scan(instance, true)
}

// ScanHandles is the read-only variant of LiveHandles: stale and corrupt lock
// files are skipped but left on disk, preserving the crashed child's pid and
// start time for inspection.
func (s *StateStore) ScanHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error) {
	return s.scan(instance, false)
}

func (s *StateStore) scan(instance *domain.NetworkInstance, prune bool) (map[string]*domain.ProcessHandle, error) {
	live := make(map[string]*domain.ProcessHandle)

	for _, name := range instance.ChildNames() {
		paths := PathsFor(s.cfg.DataDir, name)
		handle, err := ReadLock(paths.LockFile)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			// an unreadable lock file is treated as stale, not fatal
			if prune {
				s.log.Warn("discarding unreadable lock file", "path", paths.LockFile, "error", err)
				_ = RemoveLock(paths.LockFile)
			}
			continue
		}

		if !Alive(handle.PID) {
			if prune {
				s.log.Debug("removing stale lock file", "name", name, "pid", handle.PID)
				_ = RemoveLock(paths.LockFile)
			}
			continue
		}

		live[name] = handle
	}

	return live, nil
}

// ClearHandle removes a stopped child's lock file
func (s *StateStore) ClearHandle(ctx context.Context, handle *domain.ProcessHandle) error {
	return RemoveLock(handle.LockFile)
}

// Clean removes state per scope. Callers verify liveness first; cleaning an
// already-clean tree is a no-op.
func (s *StateStore) Clean(ctx context.Context, scope domain.CleanScope) ([]string, error) {
	roots := []string{s.cfg.DataDir}
	if scope == domain.CleanStateAndArtifacts {
		roots = append(roots, s.cfg.ArtifactsDir, s.cfg.BinDir)
	}

	var removed []string
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(root); err != nil {
			return removed, err
		}
		removed = append(removed, root)
	}

	return removed, nil
}
