package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/interlab-org/icx-cli/internal/adapters/fs"
	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// runFunc executes one external command to completion, returning combined
// output. Swappable for tests.
type runFunc func(ctx context.Context, workDir string, env map[string]string, name string, args ...string) ([]byte, error)

// Launcher resolves chain and relayer specs into concrete spawn specs:
// initialized home directories, generated config files, command lines, and
// environment. The dispatch over the closed set of kinds lives here.
type Launcher struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
	run runFunc
}

// NewLauncher creates the launcher
func NewLauncher(cfg *config.RuntimeConfig, log *slog.Logger) *Launcher {
	return &Launcher{cfg: cfg, log: log, run: runCommand}
}

// PrepareChain initializes the chain's home directory on first use and
// builds its spawn spec.
func (l *Launcher) PrepareChain(ctx context.Context, chain domain.ChainSpec) (*domain.SpawnSpec, error) {
	paths := fs.PathsFor(l.cfg.DataDir, chain.Name)
	if err := os.MkdirAll(paths.HomeDir, 0o755); err != nil {
		return nil, err
	}

	if err := l.ensureChainHome(ctx, chain, paths); err != nil {
		return nil, err
	}

	env, err := l.projectEnv()
	if err != nil {
		return nil, err
	}

	args := chainStartArgs(chain, paths)
	args = append(args, chain.Args...)

	return &domain.SpawnSpec{
		Name:     chain.Name,
		Command:  chain.Binary,
		Args:     args,
		WorkDir:  paths.Dir,
		Env:      env,
		LogFile:  paths.LogFile,
		LockFile: paths.LockFile,
		Probe:    chain.Probe,
	}, nil
}

// PrepareRelayer generates the relayer's config from the chains it connects
// and builds its spawn spec. Relayers depend on every referenced chain
// existing and being reachable.
func (l *Launcher) PrepareRelayer(ctx context.Context, relayer domain.RelayerSpec, chains []domain.ChainSpec) (*domain.SpawnSpec, error) {
	paths := fs.PathsFor(l.cfg.DataDir, relayer.Name)
	if err := os.MkdirAll(paths.HomeDir, 0o755); err != nil {
		return nil, err
	}

	connected, err := resolveChains(relayer, chains)
	if err != nil {
		return nil, err
	}

	env, err := l.projectEnv()
	if err != nil {
		return nil, err
	}

	var args []string
	switch relayer.Kind {
	case domain.RelayerKindHermes:
		configPath := filepath.Join(paths.HomeDir, "config.toml")
		if err := writeHermesConfig(configPath, connected); err != nil {
			return nil, fmt.Errorf("failed to write hermes config: %w", err)
		}
		args = []string{"--config", configPath, "start"}
	case domain.RelayerKindICQ:
		// .env entries win over the generated defaults
		for key, value := range l.icqEnv(connected, paths) {
			if _, ok := env[key]; !ok {
				env[key] = value
			}
		}
		args = []string{"start"}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRelayerKind, relayer.Kind)
	}
	args = append(args, relayer.Args...)

	return &domain.SpawnSpec{
		Name:     relayer.Name,
		Command:  relayer.Binary,
		Args:     args,
		WorkDir:  paths.Dir,
		Env:      env,
		LogFile:  paths.LogFile,
		LockFile: paths.LockFile,
		Probe:    relayer.Probe,
	}, nil
}

// resolveChains maps the relayer's ordered chain names to their specs
func resolveChains(relayer domain.RelayerSpec, chains []domain.ChainSpec) ([]domain.ChainSpec, error) {
	byName := make(map[string]domain.ChainSpec, len(chains))
	for _, chain := range chains {
		byName[chain.Name] = chain
	}

	connected := make([]domain.ChainSpec, 0, len(relayer.Chains))
	for _, name := range relayer.Chains {
		chain, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("relayer %s references unknown chain %q", relayer.Name, name)
		}
		connected = append(connected, chain)
	}
	return connected, nil
}

// projectEnv loads operator overrides from the workspace .env file, if any
func (l *Launcher) projectEnv() (map[string]string, error) {
	path := filepath.Join(l.cfg.ProjectRoot, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return env, nil
}

// runCommand is the real runFunc
func runCommand(ctx context.Context, workDir string, env map[string]string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	for key, value := range env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s %v failed: %w\noutput: %s", name, args, err, output)
	}
	return output, nil
}
