package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// StopNetwork tears the local network down: relayers first, then chains,
// tolerating children that already exited. The network always reaches Down;
// individual stop problems are aggregated as warnings.
type StopNetwork struct {
	cfg        *config.RuntimeConfig
	supervisor ProcessSupervisor
	store      StateStore
	progress   ProgressSink
	log        *slog.Logger
}

// NewStopNetwork creates the stop use case
func NewStopNetwork(
	cfg *config.RuntimeConfig,
	supervisor ProcessSupervisor,
	store StateStore,
	progress ProgressSink,
	log *slog.Logger,
) *StopNetwork {
	return &StopNetwork{
		cfg:        cfg,
		supervisor: supervisor,
		store:      store,
		progress:   progress,
		log:        log,
	}
}

// StopNetworkResult reports the outcome of a stop operation
type StopNetworkResult struct {
	State    domain.NetworkState
	Stopped  []string
	Warnings []domain.StopWarning
}

// Execute stops every live child. Calling it against an already-down network
// is a no-op, not an error.
func (uc *StopNetwork) Execute(ctx context.Context) (*StopNetworkResult, error) {
	instance, err := uc.cfg.Devnet.Instance()
	if err != nil {
		return nil, err
	}

	live, err := uc.store.LiveHandles(ctx, instance)
	if err != nil {
		return nil, err
	}

	result := &StopNetworkResult{State: domain.NetworkDown}
	if len(live) == 0 {
		uc.progress.Info(fmt.Sprintf("network '%s' is not running", instance.Name))
		return result, nil
	}

	uc.progress.Info(fmt.Sprintf("stopping network '%s'", instance.Name))

	stop := func(name string) {
		handle, ok := live[name]
		if !ok {
			return
		}
		if err := uc.supervisor.Stop(ctx, handle, stopGracePeriod); err != nil {
			result.Warnings = append(result.Warnings, domain.StopWarning{Child: name, Err: err})
			uc.log.Warn("child did not stop cleanly", "name", name, "error", err)
		} else {
			result.Stopped = append(result.Stopped, name)
		}
		if err := uc.store.ClearHandle(ctx, handle); err != nil {
			result.Warnings = append(result.Warnings, domain.StopWarning{Child: name, Err: err})
		}
	}

	// reverse dependency order: relayers depend on chains
	for i := len(instance.Relayers) - 1; i >= 0; i-- {
		stop(instance.Relayers[i].Name)
	}
	for i := len(instance.Chains) - 1; i >= 0; i-- {
		stop(instance.Chains[i].Name)
	}

	uc.progress.Info(fmt.Sprintf("network '%s' is down", instance.Name))
	return result, nil
}
