package usecase

import (
	"context"
	"time"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// ProcessSupervisor spawns, health-polls, and terminates long-running
// external processes. It is used uniformly for chain nodes and relayers.
type ProcessSupervisor interface {
	// Spawn launches the child, then polls its readiness probe until it
	// succeeds or times out. On probe timeout the child is terminated and a
	// domain.ReadinessTimeoutError is returned.
	Spawn(ctx context.Context, spec domain.SpawnSpec) (*domain.ProcessHandle, error)

	// Stop sends a graceful termination signal, waits up to grace, then
	// force-kills. Stopping an already-exited child is success, not an error.
	Stop(ctx context.Context, handle *domain.ProcessHandle, grace time.Duration) error

	// Status reports the child's current state. Pure read.
	Status(ctx context.Context, handle *domain.ProcessHandle) domain.ProcessStatus
}

// NetworkLauncher resolves a chain or relayer spec into a concrete spawn
// spec: command line, working directory, generated config files, environment.
// Dispatch over the closed set of chain/relayer kinds happens here.
type NetworkLauncher interface {
	PrepareChain(ctx context.Context, chain domain.ChainSpec) (*domain.SpawnSpec, error)
	PrepareRelayer(ctx context.Context, relayer domain.RelayerSpec, chains []domain.ChainSpec) (*domain.SpawnSpec, error)
}

// StateStore owns the on-disk layout of per-child state directories and the
// advisory lock files recording liveness.
type StateStore interface {
	// LiveHandles scans lock files for the instance's children and returns
	// handles whose recorded pid is still alive. Stale lock files are removed.
	LiveHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error)

	// ScanHandles is the read-only variant of LiveHandles: stale lock files
	// are skipped but never removed. For status-style reads.
	ScanHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error)

	// ClearHandle removes a child's lock file after it has been stopped
	ClearHandle(ctx context.Context, handle *domain.ProcessHandle) error

	// Clean removes state directories per scope. Callers must have verified
	// no live instance references them.
	Clean(ctx context.Context, scope domain.CleanScope) ([]string, error)
}

// ContractCompiler wraps the external compiler/optimizer toolchain
type ContractCompiler interface {
	// Targets discovers the buildable contract names
	Targets(ctx context.Context) ([]string, error)

	// Fingerprint hashes a target's source tree
	Fingerprint(ctx context.Context, target string) (string, error)

	// Compile builds one target, writing the output atomically. A non-zero
	// tool exit surfaces as a domain.BuildFailureError.
	Compile(ctx context.Context, target, fingerprint string) (domain.BuildArtifact, error)
}

// ManifestStore persists the build manifest under the artifact output root
type ManifestStore interface {
	Load(ctx context.Context) (*domain.BuildManifest, error)
	Save(ctx context.Context, manifest *domain.BuildManifest) error
}

// TestRunner executes the external e2e test suite against a live network
type TestRunner interface {
	Run(ctx context.Context, args []string) error
}

// ProgressSink receives user-facing progress messages
type ProgressSink interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

func (NopSink) Info(string)  {}
func (NopSink) Warn(string)  {}
func (NopSink) Error(string) {}
