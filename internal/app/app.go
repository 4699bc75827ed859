package app

import (
	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	StartNetwork   *usecase.StartNetwork
	StopNetwork    *usecase.StopNetwork
	NetworkStatus  *usecase.NetworkStatus
	CleanState     *usecase.CleanState
	BuildArtifacts *usecase.BuildArtifacts
	RunE2E         *usecase.RunE2E
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	startNetwork *usecase.StartNetwork,
	stopNetwork *usecase.StopNetwork,
	networkStatus *usecase.NetworkStatus,
	cleanState *usecase.CleanState,
	buildArtifacts *usecase.BuildArtifacts,
	runE2E *usecase.RunE2E,
) (*App, error) {
	return &App{
		Config:         cfg,
		StartNetwork:   startNetwork,
		StopNetwork:    stopNetwork,
		NetworkStatus:  networkStatus,
		CleanState:     cleanState,
		BuildArtifacts: buildArtifacts,
		RunE2E:         runE2E,
	}, nil
}
