package launcher

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// hermesConfig is the subset of the hermes configuration the devnet needs.
// Rendered to config.toml inside the relayer's home directory on every start
// so topology edits take effect without manual cleanup.
type hermesConfig struct {
	Global    hermesGlobal    `toml:"global"`
	Mode      hermesMode      `toml:"mode"`
	Telemetry hermesTelemetry `toml:"telemetry"`
	Chains    []hermesChain   `toml:"chains"`
}

type hermesGlobal struct {
	LogLevel string `toml:"log_level"`
}

type hermesMode struct {
	Clients     hermesToggle `toml:"clients"`
	Connections hermesToggle `toml:"connections"`
	Channels    hermesToggle `toml:"channels"`
	Packets     hermesToggle `toml:"packets"`
}

type hermesToggle struct {
	Enabled bool `toml:"enabled"`
}

type hermesTelemetry struct {
	Enabled bool `toml:"enabled"`
}

type hermesChain struct {
	ID             string         `toml:"id"`
	RPCAddr        string         `toml:"rpc_addr"`
	GRPCAddr       string         `toml:"grpc_addr"`
	EventSource    hermesEventSrc `toml:"event_source"`
	AccountPrefix  string         `toml:"account_prefix"`
	KeyName        string         `toml:"key_name"`
	StorePrefix    string         `toml:"store_prefix"`
	GasPrice       hermesGasPrice `toml:"gas_price"`
	TrustingPeriod string         `toml:"trusting_period"`
}

type hermesEventSrc struct {
	Mode       string `toml:"mode"`
	URL        string `toml:"url"`
	BatchDelay string `toml:"batch_delay"`
}

type hermesGasPrice struct {
	Price float64 `toml:"price"`
	Denom string  `toml:"denom"`
}

// writeHermesConfig renders the relayer config for the connected chains
func writeHermesConfig(path string, chains []domain.ChainSpec) error {
	cfg := hermesConfig{
		Global: hermesGlobal{LogLevel: "info"},
		Mode: hermesMode{
			Clients:     hermesToggle{Enabled: true},
			Connections: hermesToggle{Enabled: true},
			Channels:    hermesToggle{Enabled: true},
			Packets:     hermesToggle{Enabled: true},
		},
	}

	for _, chain := range chains {
		cfg.Chains = append(cfg.Chains, hermesChain{
			ID:       chain.ChainID,
			RPCAddr:  httpAddr(chain.RPCAddr),
			GRPCAddr: "http://" + chain.GRPCAddr,
			EventSource: hermesEventSrc{
				Mode:       "push",
				URL:        wsAddr(chain.RPCAddr),
				BatchDelay: "200ms",
			},
			AccountPrefix:  accountPrefix(chain.Kind),
			KeyName:        devKeyName,
			StorePrefix:    "ibc",
			GasPrice:       hermesGasPrice{Price: 0.025, Denom: chain.Denom},
			TrustingPeriod: "14days",
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(cfg)
}

// accountPrefix maps a chain kind to its bech32 address prefix
func accountPrefix(kind domain.ChainKind) string {
	if kind == domain.ChainKindNeutron {
		return "neutron"
	}
	return "cosmos"
}

// httpAddr rewrites the node's tcp listen address into the http form hermes
// expects.
func httpAddr(rpcAddr string) string {
	return strings.Replace(rpcAddr, "tcp://", "http://", 1)
}

// wsAddr points at the node's websocket endpoint
func wsAddr(rpcAddr string) string {
	return strings.Replace(rpcAddr, "tcp://", "ws://", 1) + "/websocket"
}
