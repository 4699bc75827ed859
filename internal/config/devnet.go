package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// DevnetConfig describes the local network topology: which chains to run,
// which relayers connect them, and how readiness is detected for each.
// Loaded from devnet.yaml at the project root when present, otherwise the
// built-in neutron localnet topology is used.
type DevnetConfig struct {
	Name     string               `yaml:"name"`
	Chains   []domain.ChainSpec   `yaml:"chains"`
	Relayers []domain.RelayerSpec `yaml:"relayers"`
}

// DevnetFileName is looked up at the project root
const DevnetFileName = "devnet.yaml"

// DefaultDevnetConfig is the built-in topology: a neutron app chain, a gaia
// host chain, hermes relaying between them, and the interchain-query relayer.
func DefaultDevnetConfig() *DevnetConfig {
	return &DevnetConfig{
		Name: "localnet",
		Chains: []domain.ChainSpec{
			{
				Name:     "neutron",
				Kind:     domain.ChainKindNeutron,
				Binary:   "neutrond",
				ChainID:  "test-1",
				Denom:    "untrn",
				RPCAddr:  "tcp://127.0.0.1:26657",
				GRPCAddr: "127.0.0.1:9090",
				P2PAddr:  "tcp://127.0.0.1:26656",
				Probe: domain.ProbeSpec{
					Kind:     domain.ProbeKindRPC,
					URL:      "http://127.0.0.1:26657/status",
					Interval: time.Second,
					Timeout:  60 * time.Second,
				},
			},
			{
				Name:     "gaia",
				Kind:     domain.ChainKindGaia,
				Binary:   "gaiad",
				ChainID:  "test-2",
				Denom:    "uatom",
				RPCAddr:  "tcp://127.0.0.1:16657",
				GRPCAddr: "127.0.0.1:9091",
				P2PAddr:  "tcp://127.0.0.1:16656",
				Probe: domain.ProbeSpec{
					Kind:     domain.ProbeKindRPC,
					URL:      "http://127.0.0.1:16657/status",
					Interval: time.Second,
					Timeout:  60 * time.Second,
				},
			},
		},
		Relayers: []domain.RelayerSpec{
			{
				Name:   "hermes",
				Kind:   domain.RelayerKindHermes,
				Binary: "hermes",
				Chains: []string{"neutron", "gaia"},
				Probe: domain.ProbeSpec{
					Kind:     domain.ProbeKindLogMarker,
					Marker:   "Hermes has started",
					Interval: 2 * time.Second,
					Timeout:  120 * time.Second,
				},
			},
			{
				Name:   "icq-relayer",
				Kind:   domain.RelayerKindICQ,
				Binary: "neutron-query-relayer",
				Chains: []string{"neutron", "gaia"},
				Probe: domain.ProbeSpec{
					Kind:     domain.ProbeKindLogMarker,
					Marker:   "subscribing to neutron chain events",
					Interval: 2 * time.Second,
					Timeout:  60 * time.Second,
				},
			},
		},
	}
}

// LoadDevnetConfig reads path, falling back to the default topology when the
// file does not exist.
func LoadDevnetConfig(path string) (*DevnetConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultDevnetConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read devnet config: %w", err)
	}

	var cfg DevnetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse devnet config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = "localnet"
	}

	return &cfg, nil
}

// Instance builds a validated domain.NetworkInstance from the topology,
// filling in probe polling defaults.
func (c *DevnetConfig) Instance() (*domain.NetworkInstance, error) {
	chains := make([]domain.ChainSpec, len(c.Chains))
	for i, chain := range c.Chains {
		if _, err := domain.ParseChainKind(string(chain.Kind)); err != nil {
			return nil, fmt.Errorf("chain %q: %w", chain.Name, err)
		}
		if err := chain.Probe.Validate(); err != nil {
			return nil, fmt.Errorf("chain %q: %w", chain.Name, err)
		}
		chain.Probe = chain.Probe.WithDefaults()
		chains[i] = chain
	}

	relayers := make([]domain.RelayerSpec, len(c.Relayers))
	for i, relayer := range c.Relayers {
		if _, err := domain.ParseRelayerKind(string(relayer.Kind)); err != nil {
			return nil, fmt.Errorf("relayer %q: %w", relayer.Name, err)
		}
		if err := relayer.Probe.Validate(); err != nil {
			return nil, fmt.Errorf("relayer %q: %w", relayer.Name, err)
		}
		relayer.Probe = relayer.Probe.WithDefaults()
		relayers[i] = relayer
	}

	instance := domain.NewNetworkInstance(c.Name, chains, relayers)
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	return instance, nil
}
