package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// fakeWorld is the shared state behind the fake supervisor and state store,
// standing in for the real pid-file coupling between them.
type fakeWorld struct {
	mu   sync.Mutex
	live map[string]*domain.ProcessHandle

	spawnCalls int
	stopCalls  int

	// failSpawn injects a spawn failure per child name
	failSpawn map[string]error
	// failStop injects a stop failure per child name
	failStop map[string]error

	nextPID int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		live:      make(map[string]*domain.ProcessHandle),
		failSpawn: make(map[string]error),
		failStop:  make(map[string]error),
		nextPID:   1000,
	}
}

func (w *fakeWorld) liveNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.live))
	for name := range w.live {
		names = append(names, name)
	}
	return names
}

type fakeSupervisor struct {
	world *fakeWorld
}

func (s *fakeSupervisor) Spawn(ctx context.Context, spec domain.SpawnSpec) (*domain.ProcessHandle, error) {
	s.world.mu.Lock()
	defer s.world.mu.Unlock()

	s.world.spawnCalls++
	if err, ok := s.world.failSpawn[spec.Name]; ok {
		return nil, err
	}

	s.world.nextPID++
	handle := &domain.ProcessHandle{
		Name:      spec.Name,
		PID:       s.world.nextPID,
		LogFile:   spec.LogFile,
		LockFile:  spec.LockFile,
		StartedAt: time.Now(),
	}
	s.world.live[spec.Name] = handle
	return handle, nil
}

func (s *fakeSupervisor) Stop(ctx context.Context, handle *domain.ProcessHandle, grace time.Duration) error {
	s.world.mu.Lock()
	defer s.world.mu.Unlock()

	s.world.stopCalls++
	delete(s.world.live, handle.Name)
	if err, ok := s.world.failStop[handle.Name]; ok {
		return err
	}
	return nil
}

func (s *fakeSupervisor) Status(ctx context.Context, handle *domain.ProcessHandle) domain.ProcessStatus {
	s.world.mu.Lock()
	defer s.world.mu.Unlock()

	if _, ok := s.world.live[handle.Name]; ok {
		return domain.ProcessStatus{State: domain.ProcessReady, PID: handle.PID}
	}
	return domain.ProcessStatus{State: domain.ProcessExited}
}

type fakeStore struct {
	world      *fakeWorld
	cleaned    []domain.CleanScope
	cleanErr   error
	cleanPaths []string
}

func (s *fakeStore) LiveHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error) {
	s.world.mu.Lock()
	defer s.world.mu.Unlock()

	live := make(map[string]*domain.ProcessHandle)
	for _, name := range instance.ChildNames() {
		if handle, ok := s.world.live[name]; ok {
			live[name] = handle
		}
	}
	return live, nil
}

func (s *fakeStore) ScanHandles(ctx context.Context, instance *domain.NetworkInstance) (map[string]*domain.ProcessHandle, error) {
	return s.LiveHandles(ctx, instance)
}

func (s *fakeStore) ClearHandle(ctx context.Context, handle *domain.ProcessHandle) error {
	s.world.mu.Lock()
	defer s.world.mu.Unlock()
	delete(s.world.live, handle.Name)
	return nil
}

func (s *fakeStore) Clean(ctx context.Context, scope domain.CleanScope) ([]string, error) {
	if s.cleanErr != nil {
		return nil, s.cleanErr
	}
	s.cleaned = append(s.cleaned, scope)
	return s.cleanPaths, nil
}

type fakeLauncher struct {
	// failPrepare injects a prepare failure per child name
	failPrepare map[string]error
}

func (l *fakeLauncher) spawnSpec(name string) *domain.SpawnSpec {
	return &domain.SpawnSpec{
		Name:     name,
		Command:  "/bin/" + name,
		LogFile:  "/tmp/" + name + ".log",
		LockFile: "/tmp/" + name + ".pid",
		Probe:    domain.ProbeSpec{Kind: domain.ProbeKindNone},
	}
}

func (l *fakeLauncher) PrepareChain(ctx context.Context, chain domain.ChainSpec) (*domain.SpawnSpec, error) {
	if err, ok := l.failPrepare[chain.Name]; ok {
		return nil, err
	}
	return l.spawnSpec(chain.Name), nil
}

func (l *fakeLauncher) PrepareRelayer(ctx context.Context, relayer domain.RelayerSpec, chains []domain.ChainSpec) (*domain.SpawnSpec, error) {
	if err, ok := l.failPrepare[relayer.Name]; ok {
		return nil, err
	}
	return l.spawnSpec(relayer.Name), nil
}

type fakeCompiler struct {
	targets      []string
	fingerprints map[string]string
	compileCalls int
	failCompile  map[string]error
}

func (c *fakeCompiler) Targets(ctx context.Context) ([]string, error) {
	return c.targets, nil
}

func (c *fakeCompiler) Fingerprint(ctx context.Context, target string) (string, error) {
	fp, ok := c.fingerprints[target]
	if !ok {
		return "", fmt.Errorf("unknown target %s", target)
	}
	return fp, nil
}

func (c *fakeCompiler) Compile(ctx context.Context, target, fingerprint string) (domain.BuildArtifact, error) {
	c.compileCalls++
	if err, ok := c.failCompile[target]; ok {
		return domain.BuildArtifact{}, err
	}
	return domain.BuildArtifact{
		Name:        target,
		Path:        "artifacts/" + target + ".wasm",
		Fingerprint: fingerprint,
		BuiltAt:     time.Now(),
	}, nil
}

type fakeManifestStore struct {
	manifest  *domain.BuildManifest
	saveCalls int
}

func (s *fakeManifestStore) Load(ctx context.Context) (*domain.BuildManifest, error) {
	if s.manifest == nil {
		s.manifest = domain.NewBuildManifest()
	}
	return s.manifest, nil
}

func (s *fakeManifestStore) Save(ctx context.Context, manifest *domain.BuildManifest) error {
	s.saveCalls++
	s.manifest = manifest
	return nil
}

type fakeRunner struct {
	runCalls int
	args     []string
	err      error
	// observe captures live children at the moment tests run
	observe func()
}

func (r *fakeRunner) Run(ctx context.Context, args []string) error {
	r.runCalls++
	r.args = args
	if r.observe != nil {
		r.observe()
	}
	return r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig builds a RuntimeConfig with a two-chain, one-relayer topology
func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot:  "/tmp/icx-test",
		DataDir:      "/tmp/icx-test/.icx/state",
		ArtifactsDir: "/tmp/icx-test/artifacts",
		Project:      config.DefaultProjectConfig(),
		Devnet: &config.DevnetConfig{
			Name: "localnet",
			Chains: []domain.ChainSpec{
				{Name: "neutron", Kind: domain.ChainKindNeutron, Probe: domain.ProbeSpec{Kind: domain.ProbeKindNone}},
				{Name: "gaia", Kind: domain.ChainKindGaia, Probe: domain.ProbeSpec{Kind: domain.ProbeKindNone}},
			},
			Relayers: []domain.RelayerSpec{
				{Name: "hermes", Kind: domain.RelayerKindHermes, Chains: []string{"neutron", "gaia"}, Probe: domain.ProbeSpec{Kind: domain.ProbeKindNone}},
			},
		},
	}
}

type harness struct {
	world      *fakeWorld
	cfg        *config.RuntimeConfig
	supervisor *fakeSupervisor
	store      *fakeStore
	launcher   *fakeLauncher
	start      *StartNetwork
	stop       *StopNetwork
	status     *NetworkStatus
	clean      *CleanState
}

func newHarness() *harness {
	world := newFakeWorld()
	cfg := testConfig()
	supervisor := &fakeSupervisor{world: world}
	store := &fakeStore{world: world}
	launcher := &fakeLauncher{failPrepare: make(map[string]error)}
	log := testLogger()

	return &harness{
		world:      world,
		cfg:        cfg,
		supervisor: supervisor,
		store:      store,
		launcher:   launcher,
		start:      NewStartNetwork(cfg, supervisor, launcher, store, NopSink{}, log),
		stop:       NewStopNetwork(cfg, supervisor, store, NopSink{}, log),
		status:     NewNetworkStatus(cfg, supervisor, store),
		clean:      NewCleanState(cfg, store, NopSink{}),
	}
}
