package launcher

import (
	"path/filepath"

	"github.com/interlab-org/icx-cli/internal/adapters/fs"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// icqEnv builds the interchain-query relayer configuration. The relayer is
// configured entirely through RELAYER_* environment variables: the first
// connected chain is the neutron side submitting query results, the second is
// the target chain being queried.
func (l *Launcher) icqEnv(chains []domain.ChainSpec, paths fs.ChildPaths) map[string]string {
	env := map[string]string{
		"RELAYER_STORAGE_PATH":     filepath.Join(paths.HomeDir, "storage"),
		"RELAYER_LISTEN_ADDR":      "127.0.0.1:9999",
		"RELAYER_ALLOW_TX_QUERIES": "true",
	}

	if len(chains) > 0 {
		neutron := chains[0]
		home := fs.PathsFor(l.cfg.DataDir, neutron.Name).HomeDir
		env["RELAYER_NEUTRON_CHAIN_RPC_ADDR"] = neutron.RPCAddr
		env["RELAYER_NEUTRON_CHAIN_CHAIN_ID"] = neutron.ChainID
		env["RELAYER_NEUTRON_CHAIN_DENOM"] = neutron.Denom
		env["RELAYER_NEUTRON_CHAIN_HOME_DIR"] = home
		env["RELAYER_NEUTRON_CHAIN_SIGN_KEY_NAME"] = devKeyName
		env["RELAYER_NEUTRON_CHAIN_KEYRING_BACKEND"] = "test"
		env["RELAYER_NEUTRON_CHAIN_GAS_PRICES"] = "0.5" + neutron.Denom
	}

	if len(chains) > 1 {
		target := chains[1]
		env["RELAYER_TARGET_CHAIN_RPC_ADDR"] = target.RPCAddr
		env["RELAYER_TARGET_CHAIN_CHAIN_ID"] = target.ChainID
		env["RELAYER_TARGET_CHAIN_DENOM"] = target.Denom
	}

	return env
}
