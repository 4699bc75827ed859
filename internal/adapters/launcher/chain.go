package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/interlab-org/icx-cli/internal/adapters/fs"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// devKeyName is the funded account every fresh chain home gets
const devKeyName = "icx-dev"

// genesis balances, large enough that tests never run dry
const (
	genesisBalance = "100000000000"
	stakeAmount    = "70000000000"
)

// ensureChainHome initializes the chain's home directory on first use. A
// present genesis file marks the home as initialized; restarts reuse the
// existing chain state so the devnet survives stop/start cycles.
func (l *Launcher) ensureChainHome(ctx context.Context, chain domain.ChainSpec, paths fs.ChildPaths) error {
	genesis := filepath.Join(paths.HomeDir, "config", "genesis.json")
	if _, err := os.Stat(genesis); err == nil {
		return nil
	}

	l.log.Info("initializing chain home", "chain", chain.Name, "home", paths.HomeDir)

	for _, args := range initCommands(chain, paths) {
		if output, err := l.run(ctx, paths.Dir, nil, chain.Binary, args...); err != nil {
			return &domain.SpawnFailureError{
				Child: chain.Name,
				Err:   fmt.Errorf("init step %q failed: %w\n%s", strings.Join(args, " "), err, output),
			}
		}
	}

	return nil
}

// initCommands is the one-time genesis setup sequence for a chain kind. Gaia
// runs its own validator; neutron is a consumer chain and produces blocks
// without a local gentx.
func initCommands(chain domain.ChainSpec, paths fs.ChildPaths) [][]string {
	home := paths.HomeDir
	commands := [][]string{
		{"init", chain.Name, "--chain-id", chain.ChainID, "--home", home},
		{"keys", "add", devKeyName, "--keyring-backend", "test", "--home", home},
		{"add-genesis-account", devKeyName, genesisBalance + chain.Denom,
			"--keyring-backend", "test", "--home", home},
	}

	if chain.Kind == domain.ChainKindGaia {
		commands = append(commands,
			[]string{"gentx", devKeyName, stakeAmount + chain.Denom,
				"--chain-id", chain.ChainID, "--keyring-backend", "test", "--home", home},
			[]string{"collect-gentxs", "--home", home},
		)
	}

	return commands
}

// chainStartArgs builds the daemon start command line from the spec's listen
// addresses.
func chainStartArgs(chain domain.ChainSpec, paths fs.ChildPaths) []string {
	return []string{
		"start",
		"--home", paths.HomeDir,
		"--rpc.laddr", chain.RPCAddr,
		"--grpc.address", chain.GRPCAddr,
		"--p2p.laddr", chain.P2PAddr,
	}
}
