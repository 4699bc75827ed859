package adapters

import (
	"github.com/google/wire"

	"github.com/interlab-org/icx-cli/internal/adapters/builder"
	"github.com/interlab-org/icx-cli/internal/adapters/fs"
	"github.com/interlab-org/icx-cli/internal/adapters/launcher"
	"github.com/interlab-org/icx-cli/internal/adapters/probe"
	"github.com/interlab-org/icx-cli/internal/adapters/supervisor"
	"github.com/interlab-org/icx-cli/internal/adapters/testrunner"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// FSSet provides the filesystem-backed state and manifest stores
var FSSet = wire.NewSet(
	fs.NewStateStore,
	wire.Bind(new(usecase.StateStore), new(*fs.StateStore)),

	fs.NewManifestStore,
	wire.Bind(new(usecase.ManifestStore), new(*fs.ManifestStore)),
)

// ProcessSet provides process supervision and readiness probing
var ProcessSet = wire.NewSet(
	probe.NewWaiter,
	wire.Bind(new(supervisor.Prober), new(*probe.Waiter)),

	supervisor.New,
	wire.Bind(new(usecase.ProcessSupervisor), new(*supervisor.Supervisor)),

	launcher.NewLauncher,
	wire.Bind(new(usecase.NetworkLauncher), new(*launcher.Launcher)),
)

// BuildSet provides the contract build pipeline
var BuildSet = wire.NewSet(
	builder.NewBuilder,
	wire.Bind(new(usecase.ContractCompiler), new(*builder.Builder)),
)

// TestSet provides the external e2e test runner
var TestSet = wire.NewSet(
	testrunner.NewRunner,
	wire.Bind(new(usecase.TestRunner), new(*testrunner.Runner)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ProcessSet,
	BuildSet,
	TestSet,
)
