package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/interlab-org/icx-cli/internal/adapters/fs"
	"github.com/interlab-org/icx-cli/internal/adapters/probe"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// stopPollInterval is how often Stop re-checks a terminating child
const stopPollInterval = 200 * time.Millisecond

// Prober waits until a spawned child is ready to be used
type Prober interface {
	Wait(ctx context.Context, spec domain.ProbeSpec, logFile string) error
}

// Supervisor spawns, health-polls, and terminates external processes. Chain
// nodes and relayers go through the same code path; only the spawn spec
// differs.
type Supervisor struct {
	prober Prober
	log    *slog.Logger
}

// New creates a process supervisor
func New(prober Prober, log *slog.Logger) *Supervisor {
	return &Supervisor{prober: prober, log: log}
}

// Spawn launches the child, records its lock file, and polls the readiness
// probe. A child that never becomes ready is terminated before the error is
// returned so no starting process is left behind.
func (s *Supervisor) Spawn(ctx context.Context, spec domain.SpawnSpec) (*domain.ProcessHandle, error) {
	if err := os.MkdirAll(filepath.Dir(spec.LogFile), 0o755); err != nil {
		return nil, &domain.SpawnFailureError{Child: spec.Name, Err: err}
	}

	logFile, err := os.Create(spec.LogFile)
	if err != nil {
		return nil, &domain.SpawnFailureError{Child: spec.Name, Err: err}
	}
	defer logFile.Close()

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.WorkDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = os.Environ()
	for key, value := range spec.Env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	if err := cmd.Start(); err != nil {
		return nil, &domain.SpawnFailureError{Child: spec.Name, Err: err}
	}

	// reap the child if it exits while the orchestrator is still running
	go func() { _ = cmd.Wait() }()

	handle := &domain.ProcessHandle{
		Name:      spec.Name,
		PID:       cmd.Process.Pid,
		LogFile:   spec.LogFile,
		LockFile:  spec.LockFile,
		StartedAt: time.Now().UTC(),
	}

	if err := fs.WriteLock(handle); err != nil {
		_ = cmd.Process.Kill()
		return nil, &domain.SpawnFailureError{Child: spec.Name, Err: err}
	}

	s.log.Debug("child started", "name", spec.Name, "pid", handle.PID)

	if err := s.prober.Wait(ctx, spec.Probe, spec.LogFile); err != nil {
		_ = cmd.Process.Kill()
		_ = fs.RemoveLock(spec.LockFile)
		if errors.Is(err, probe.ErrTimeout) {
			return nil, &domain.ReadinessTimeoutError{Child: spec.Name, Timeout: spec.Probe.WithDefaults().Timeout}
		}
		return nil, &domain.SpawnFailureError{Child: spec.Name, Err: err}
	}

	return handle, nil
}

// Stop terminates a child gracefully: SIGTERM, wait up to grace, SIGKILL.
// Stopping a child that already exited is success.
func (s *Supervisor) Stop(ctx context.Context, handle *domain.ProcessHandle, grace time.Duration) error {
	if !fs.Alive(handle.PID) {
		return nil
	}

	process, err := os.FindProcess(handle.PID)
	if err != nil {
		return nil
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			return nil
		}
		return err
	}

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if !fs.Alive(handle.PID) {
			return nil
		}
		select {
		case <-ctx.Done():
			// interrupted teardown still force-kills below
			deadline = time.Now()
		case <-time.After(stopPollInterval):
		}
	}

	s.log.Warn("child ignored SIGTERM, killing", "name", handle.Name, "pid", handle.PID)
	if err := process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Status reports the child's state. A live pid counts as Ready since the
// readiness probe passed at spawn time; a dead one as Exited.
func (s *Supervisor) Status(ctx context.Context, handle *domain.ProcessHandle) domain.ProcessStatus {
	if fs.Alive(handle.PID) {
		return domain.ProcessStatus{State: domain.ProcessReady, PID: handle.PID}
	}
	return domain.ProcessStatus{State: domain.ProcessExited}
}
