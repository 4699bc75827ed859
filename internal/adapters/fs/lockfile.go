package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// WriteLock records a spawned child's handle in its lock file. The lock is
// advisory: it serializes orchestrator invocations against the same state
// directory by detection, not OS enforcement.
func WriteLock(handle *domain.ProcessHandle) error {
	data, err := json.MarshalIndent(handle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lock file: %w", err)
	}
	return os.WriteFile(handle.LockFile, data, 0o644)
}

// ReadLock loads a handle from a lock file. A missing file returns
// os.ErrNotExist.
func ReadLock(path string) (*domain.ProcessHandle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var handle domain.ProcessHandle
	if err := json.Unmarshal(data, &handle); err != nil {
		return nil, fmt.Errorf("invalid lock file %s: %w", path, err)
	}
	handle.LockFile = path
	return &handle, nil
}

// RemoveLock deletes a lock file; removing an absent lock is a no-op
func RemoveLock(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Alive reports whether a process with the given pid exists, via signal 0.
// EPERM means the pid is taken by a process we may not signal, which still
// counts as alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
