package usecase

import (
	"context"
	"fmt"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// CleanState removes persisted local network state. It refuses to touch
// anything while a live instance holds the directories: cleanup never
// implicitly kills processes it does not own.
type CleanState struct {
	cfg      *config.RuntimeConfig
	store    StateStore
	progress ProgressSink
}

// NewCleanState creates the clean use case
func NewCleanState(cfg *config.RuntimeConfig, store StateStore, progress ProgressSink) *CleanState {
	return &CleanState{cfg: cfg, store: store, progress: progress}
}

// CleanStateParams selects the clean scope
type CleanStateParams struct {
	Scope domain.CleanScope
}

// CleanStateResult lists what was removed
type CleanStateResult struct {
	Scope   domain.CleanScope
	Removed []string
}

// Execute cleans per-scope. Cleaning an already-clean tree is a no-op.
func (uc *CleanState) Execute(ctx context.Context, params CleanStateParams) (*CleanStateResult, error) {
	instance, err := uc.cfg.Devnet.Instance()
	if err != nil {
		return nil, err
	}

	// refuse before mutating anything
	live, err := uc.store.LiveHandles(ctx, instance)
	if err != nil {
		return nil, err
	}
	for name, handle := range live {
		return nil, &domain.ResourceBusyError{Child: name, Path: handle.LockFile, PID: handle.PID}
	}

	removed, err := uc.store.Clean(ctx, params.Scope)
	if err != nil {
		return nil, err
	}

	if len(removed) == 0 {
		uc.progress.Info("nothing to clean")
	} else {
		uc.progress.Info(fmt.Sprintf("removed %d entries", len(removed)))
	}

	return &CleanStateResult{Scope: params.Scope, Removed: removed}, nil
}
