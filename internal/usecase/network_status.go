package usecase

import (
	"context"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// NetworkStatus reports the current network state plus per-child process
// status. Pure read: it never mutates lock files or processes.
type NetworkStatus struct {
	cfg        *config.RuntimeConfig
	supervisor ProcessSupervisor
	store      StateStore
}

// NewNetworkStatus creates the status use case
func NewNetworkStatus(cfg *config.RuntimeConfig, supervisor ProcessSupervisor, store StateStore) *NetworkStatus {
	return &NetworkStatus{cfg: cfg, supervisor: supervisor, store: store}
}

// ChildStatus is one row of the status report
type ChildStatus struct {
	Name    string
	Kind    string
	Status  domain.ProcessStatus
	LogFile string
}

// NetworkStatusResult is the aggregate status snapshot
type NetworkStatusResult struct {
	Name     string
	State    domain.NetworkState
	Children []ChildStatus
}

// Execute derives the instance state from lock files: Up when every child is
// live, Down when none is, Failed for anything in between (a partially-up
// network is never a valid rest state).
func (uc *NetworkStatus) Execute(ctx context.Context) (*NetworkStatusResult, error) {
	instance, err := uc.cfg.Devnet.Instance()
	if err != nil {
		return nil, err
	}

	// read-only scan: a stale lock is a crashed child's forensic record and
	// status must not destroy it
	live, err := uc.store.ScanHandles(ctx, instance)
	if err != nil {
		return nil, err
	}

	result := &NetworkStatusResult{Name: instance.Name}

	appendChild := func(name, kind string) {
		child := ChildStatus{Name: name, Kind: kind}
		if handle, ok := live[name]; ok {
			child.Status = uc.supervisor.Status(ctx, handle)
			child.LogFile = handle.LogFile
		} else {
			child.Status = domain.ProcessStatus{State: domain.ProcessExited}
		}
		result.Children = append(result.Children, child)
	}

	for _, chain := range instance.Chains {
		appendChild(chain.Name, string(chain.Kind))
	}
	for _, relayer := range instance.Relayers {
		appendChild(relayer.Name, string(relayer.Kind))
	}

	total := len(instance.Chains) + len(instance.Relayers)
	switch len(live) {
	case 0:
		result.State = domain.NetworkDown
	case total:
		result.State = domain.NetworkUp
	default:
		result.State = domain.NetworkFailed
	}

	return result, nil
}
