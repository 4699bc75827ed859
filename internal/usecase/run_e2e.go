package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// RunE2E runs the end-to-end test suite against a live network. When a
// network is already up it attaches and leaves the lifecycle to its external
// owner; otherwise it manages the lifecycle itself and teardown is guaranteed
// even when the build or the tests fail.
type RunE2E struct {
	cfg      *config.RuntimeConfig
	start    *StartNetwork
	stop     *StopNetwork
	dist     *BuildArtifacts
	runner   TestRunner
	store    StateStore
	progress ProgressSink
	log      *slog.Logger
}

// NewRunE2E creates the test orchestration use case
func NewRunE2E(
	cfg *config.RuntimeConfig,
	start *StartNetwork,
	stop *StopNetwork,
	dist *BuildArtifacts,
	runner TestRunner,
	store StateStore,
	progress ProgressSink,
	log *slog.Logger,
) *RunE2E {
	return &RunE2E{
		cfg:      cfg,
		start:    start,
		stop:     stop,
		dist:     dist,
		runner:   runner,
		store:    store,
		progress: progress,
		log:      log,
	}
}

// RunE2EParams carries the test selector arguments appended to the runner
// command line
type RunE2EParams struct {
	Args []string
}

// RunE2EResult reports which mode ran and any teardown warnings
type RunE2EResult struct {
	Attached bool
	Warnings []domain.StopWarning
}

// Execute runs deployment artifacts build + tests, managing the network
// lifecycle unless one is already up.
func (uc *RunE2E) Execute(ctx context.Context, params RunE2EParams) (result *RunE2EResult, err error) {
	instance, err := uc.cfg.Devnet.Instance()
	if err != nil {
		return nil, err
	}

	live, err := uc.store.LiveHandles(ctx, instance)
	if err != nil {
		return nil, err
	}

	total := len(instance.Chains) + len(instance.Relayers)
	result = &RunE2EResult{Attached: len(live) == total}

	if result.Attached {
		uc.progress.Info("network already running, attaching")
	} else {
		if _, err := uc.start.Execute(ctx); err != nil {
			return nil, err
		}

		// teardown must run whatever happens below, including interrupts:
		// the surrounding context may already be canceled by then
		defer func() {
			stopResult, stopErr := uc.stop.Execute(context.WithoutCancel(ctx))
			if stopErr != nil {
				uc.progress.Warn(fmt.Sprintf("teardown failed: %v", stopErr))
				uc.log.Warn("network teardown failed", "error", stopErr)
				return
			}
			result.Warnings = stopResult.Warnings
		}()
	}

	if _, err := uc.dist.Execute(ctx, BuildArtifactsParams{}); err != nil {
		return result, err
	}

	uc.progress.Info("running e2e tests")
	if err := uc.runner.Run(ctx, params.Args); err != nil {
		// the test failure is the reported error; teardown problems are warnings
		return result, fmt.Errorf("e2e tests failed: %w", err)
	}

	return result, nil
}
