package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// stopGracePeriod bounds how long a child gets to exit after SIGTERM
const stopGracePeriod = 10 * time.Second

// StartNetwork brings the whole local network up as one unit: all chains in
// parallel, wait for chain readiness, then all relayers in parallel, wait for
// relayer readiness. If lock files point at a fully live instance it attaches
// instead of erroring, supporting the persistent-devnet usage mode.
type StartNetwork struct {
	cfg        *config.RuntimeConfig
	supervisor ProcessSupervisor
	launcher   NetworkLauncher
	store      StateStore
	progress   ProgressSink
	log        *slog.Logger
}

// NewStartNetwork creates the start use case
func NewStartNetwork(
	cfg *config.RuntimeConfig,
	supervisor ProcessSupervisor,
	launcher NetworkLauncher,
	store StateStore,
	progress ProgressSink,
	log *slog.Logger,
) *StartNetwork {
	return &StartNetwork{
		cfg:        cfg,
		supervisor: supervisor,
		launcher:   launcher,
		store:      store,
		progress:   progress,
		log:        log,
	}
}

// StartNetworkResult reports the outcome of a start operation
type StartNetworkResult struct {
	Instance *domain.NetworkInstance
	// Attached is true when an already-running instance was detected and no
	// child was spawned
	Attached bool
	Warnings []domain.StopWarning
}

// Execute runs the two-barrier start sequence
func (uc *StartNetwork) Execute(ctx context.Context) (*StartNetworkResult, error) {
	instance, err := uc.cfg.Devnet.Instance()
	if err != nil {
		return nil, err
	}

	live, err := uc.store.LiveHandles(ctx, instance)
	if err != nil {
		return nil, err
	}

	total := len(instance.Chains) + len(instance.Relayers)
	if len(live) == total {
		// every child is already running: attach instead of double-starting
		instance.Handles = live
		if err := instance.Transition(domain.NetworkUp); err != nil {
			return nil, err
		}
		uc.progress.Info(fmt.Sprintf("attached to running network '%s'", instance.Name))
		return &StartNetworkResult{Instance: instance, Attached: true}, nil
	}
	if len(live) > 0 {
		// a half-alive instance is not safe to start over or to adopt
		for name, handle := range live {
			return nil, &domain.ResourceBusyError{Child: name, Path: handle.LockFile, PID: handle.PID}
		}
	}

	if err := instance.Transition(domain.NetworkStarting); err != nil {
		return nil, err
	}

	uc.progress.Info(fmt.Sprintf("starting network '%s' (%d chains, %d relayers)",
		instance.Name, len(instance.Chains), len(instance.Relayers)))

	// barrier 1: all chains up and ready
	chainSpecs := make([]domain.SpawnSpec, 0, len(instance.Chains))
	for _, chain := range instance.Chains {
		spawnSpec, err := uc.launcher.PrepareChain(ctx, chain)
		if err != nil {
			_ = instance.Transition(domain.NetworkFailed)
			return nil, fmt.Errorf("failed to prepare chain %s: %w", chain.Name, err)
		}
		chainSpecs = append(chainSpecs, *spawnSpec)
	}

	started, failures := uc.spawnAll(ctx, chainSpecs)
	for name, handle := range started {
		instance.Handles[name] = handle
	}
	if len(failures) > 0 {
		return nil, uc.abortStart(ctx, instance, failures)
	}

	// barrier 2: relayers, strictly after every chain is ready
	relayerSpecs := make([]domain.SpawnSpec, 0, len(instance.Relayers))
	for _, relayer := range instance.Relayers {
		spawnSpec, err := uc.launcher.PrepareRelayer(ctx, relayer, instance.Chains)
		if err != nil {
			failures = append(failures, spawnFailure{name: relayer.Name, err: err})
			return nil, uc.abortStart(ctx, instance, failures)
		}
		relayerSpecs = append(relayerSpecs, *spawnSpec)
	}

	started, failures = uc.spawnAll(ctx, relayerSpecs)
	for name, handle := range started {
		instance.Handles[name] = handle
	}
	if len(failures) > 0 {
		return nil, uc.abortStart(ctx, instance, failures)
	}

	if err := instance.Transition(domain.NetworkUp); err != nil {
		return nil, err
	}

	uc.progress.Info(fmt.Sprintf("network '%s' is up", instance.Name))
	return &StartNetworkResult{Instance: instance}, nil
}

type spawnFailure struct {
	name string
	err  error
}

// spawnAll launches every spec concurrently and joins on all of them. A
// failing child does not cancel its siblings: the barrier always waits for
// every spawn to report so no starting process is orphaned.
func (uc *StartNetwork) spawnAll(ctx context.Context, specs []domain.SpawnSpec) (map[string]*domain.ProcessHandle, []spawnFailure) {
	type result struct {
		name   string
		handle *domain.ProcessHandle
		err    error
	}

	results := make(chan result, len(specs))
	for _, spec := range specs {
		go func(spec domain.SpawnSpec) {
			uc.log.Debug("spawning child", "name", spec.Name, "command", spec.Command)
			handle, err := uc.supervisor.Spawn(ctx, spec)
			results <- result{name: spec.Name, handle: handle, err: err}
		}(spec)
	}

	started := make(map[string]*domain.ProcessHandle)
	var failures []spawnFailure
	for range specs {
		res := <-results
		if res.err != nil {
			failures = append(failures, spawnFailure{name: res.name, err: res.err})
			continue
		}
		uc.progress.Info(fmt.Sprintf("%s is ready (PID %d)", res.name, res.handle.PID))
		started[res.name] = res.handle
	}

	return started, failures
}

// abortStart rolls back every started child after a barrier failure and
// shapes the aggregate error. Rollback problems are reported as warnings,
// never masking the original cause.
func (uc *StartNetwork) abortStart(ctx context.Context, instance *domain.NetworkInstance, failures []spawnFailure) error {
	cause := failures[0].err
	uc.progress.Error(fmt.Sprintf("start failed: %v; rolling back", cause))

	warnings := uc.teardown(ctx, instance)
	_ = instance.Transition(domain.NetworkFailed)

	partial := &domain.PartialStartFailureError{
		Cause:    cause,
		Warnings: warnings,
	}
	for name := range instance.Handles {
		partial.Succeeded = append(partial.Succeeded, name)
	}
	for _, failure := range failures {
		partial.Failed = append(partial.Failed, failure.name)
	}

	return partial
}

// teardown stops the instance's started children in reverse dependency order
// (relayers before chains), best-effort.
func (uc *StartNetwork) teardown(ctx context.Context, instance *domain.NetworkInstance) []domain.StopWarning {
	var warnings []domain.StopWarning

	stop := func(name string) {
		handle, ok := instance.Handles[name]
		if !ok {
			return
		}
		if err := uc.supervisor.Stop(ctx, handle, stopGracePeriod); err != nil {
			warnings = append(warnings, domain.StopWarning{Child: name, Err: err})
			uc.log.Warn("failed to stop child during rollback", "name", name, "error", err)
		}
		if err := uc.store.ClearHandle(ctx, handle); err != nil {
			warnings = append(warnings, domain.StopWarning{Child: name, Err: err})
		}
	}

	for i := len(instance.Relayers) - 1; i >= 0; i-- {
		stop(instance.Relayers[i].Name)
	}
	for i := len(instance.Chains) - 1; i >= 0; i-- {
		stop(instance.Chains[i].Name)
	}

	return warnings
}
