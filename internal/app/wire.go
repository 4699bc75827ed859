//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/interlab-org/icx-cli/internal/adapters"
	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/logging"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration and logging
		config.Provider,
		logging.NewLogger,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewStartNetwork,
		usecase.NewStopNetwork,
		usecase.NewNetworkStatus,
		usecase.NewCleanState,
		usecase.NewBuildArtifacts,
		usecase.NewRunE2E,

		// App
		NewApp,
	)
	return nil, nil
}
