package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sentinel errors for domain operations
var (
	// ErrNotRunning is returned when an operation requires a live network instance
	ErrNotRunning = errors.New("network is not running")

	// ErrUnknownChainKind is returned when a chain kind is not part of the closed set
	ErrUnknownChainKind = errors.New("unknown chain kind")

	// ErrUnknownRelayerKind is returned when a relayer kind is not part of the closed set
	ErrUnknownRelayerKind = errors.New("unknown relayer kind")

	// ErrUnknownProbeKind is returned when a readiness probe kind is not recognized
	ErrUnknownProbeKind = errors.New("unknown probe kind")
)

// BuildFailureError is returned when the external contract compiler or
// optimizer exits non-zero for a target. It is locally fatal to that build
// invocation and is never retried automatically.
type BuildFailureError struct {
	Target string
	Output string
	Err    error
}

func (e *BuildFailureError) Error() string {
	return fmt.Sprintf("build failed for %s: %v", e.Target, e.Err)
}

func (e *BuildFailureError) Unwrap() error { return e.Err }

// SpawnFailureError is returned when a child process failed to launch at all.
// It propagates and aborts the enclosing start barrier.
type SpawnFailureError struct {
	Child string
	Err   error
}

func (e *SpawnFailureError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Child, e.Err)
}

func (e *SpawnFailureError) Unwrap() error { return e.Err }

// ReadinessTimeoutError is returned when a child launched but its readiness
// probe never succeeded within the configured timeout. The supervisor has
// already terminated the child when this is returned.
type ReadinessTimeoutError struct {
	Child   string
	Timeout time.Duration
}

func (e *ReadinessTimeoutError) Error() string {
	return fmt.Sprintf("%s did not become ready within %s", e.Child, e.Timeout)
}

// ResourceBusyError is returned when an operation detected a conflicting live
// process holding a state directory. The operation has not mutated any state;
// it never implicitly stops processes it does not own.
type ResourceBusyError struct {
	Child string
	Path  string
	PID   int
}

func (e *ResourceBusyError) Error() string {
	return fmt.Sprintf("%s is still running (PID %d, lock file %s); stop it before retrying", e.Child, e.PID, e.Path)
}

// StopWarning records a child that failed to stop cleanly during teardown.
// Warnings are aggregated and surfaced but never prevent reaching Down.
type StopWarning struct {
	Child string
	Err   error
}

func (w StopWarning) String() string {
	return fmt.Sprintf("%s: %v", w.Child, w.Err)
}

// PartialStartFailureError aggregates the outcome of an aborted start
// sequence: which children came up before the failure, which failed, and the
// first fatal cause. Rollback of the succeeded children has already been
// attempted when this is returned; rollback problems are in Warnings.
type PartialStartFailureError struct {
	Succeeded []string
	Failed    []string
	Cause     error
	Warnings  []StopWarning
}

func (e *PartialStartFailureError) Error() string {
	succeeded := make([]string, len(e.Succeeded))
	copy(succeeded, e.Succeeded)
	sort.Strings(succeeded)

	failed := make([]string, len(e.Failed))
	copy(failed, e.Failed)
	sort.Strings(failed)

	var b strings.Builder
	fmt.Fprintf(&b, "network start failed: %v", e.Cause)
	if len(failed) > 0 {
		fmt.Fprintf(&b, " (failed: %s)", strings.Join(failed, ", "))
	}
	if len(succeeded) > 0 {
		fmt.Fprintf(&b, " (rolled back: %s)", strings.Join(succeeded, ", "))
	}
	return b.String()
}

func (e *PartialStartFailureError) Unwrap() error { return e.Cause }
