package domain

import (
	"fmt"
	"time"
)

// ChainKind identifies which node software a chain instance runs. The set is
// closed: each kind carries its own launch command template and readiness
// probe defaults, resolved by a single dispatch at spawn time.
type ChainKind string

const (
	// ChainKindNeutron is the CosmWasm-enabled app chain (neutrond)
	ChainKindNeutron ChainKind = "neutron"
	// ChainKindGaia is the remote host chain (gaiad)
	ChainKindGaia ChainKind = "gaia"
)

// ParseChainKind validates a chain kind string
func ParseChainKind(s string) (ChainKind, error) {
	switch ChainKind(s) {
	case ChainKindNeutron, ChainKindGaia:
		return ChainKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChainKind, s)
	}
}

// RelayerKind identifies which relayer software a relayer instance runs
type RelayerKind string

const (
	// RelayerKindHermes is the general-purpose IBC packet relayer
	RelayerKindHermes RelayerKind = "hermes"
	// RelayerKindICQ is the interchain-query relayer servicing cross-chain reads
	RelayerKindICQ RelayerKind = "icq"
)

// ParseRelayerKind validates a relayer kind string
func ParseRelayerKind(s string) (RelayerKind, error) {
	switch RelayerKind(s) {
	case RelayerKindHermes, RelayerKindICQ:
		return RelayerKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRelayerKind, s)
	}
}

// ChainSpec describes a single chain instance of the local network.
// Immutable once a network instance is constructed from it.
type ChainSpec struct {
	Name     string    `yaml:"name"`
	Kind     ChainKind `yaml:"kind"`
	Binary   string    `yaml:"binary"`
	ChainID  string    `yaml:"chain_id"`
	Denom    string    `yaml:"denom"`
	RPCAddr  string    `yaml:"rpc_addr"`
	GRPCAddr string    `yaml:"grpc_addr"`
	P2PAddr  string    `yaml:"p2p_addr"`
	// HomeDir is the chain's state directory, relative to the data root
	HomeDir string    `yaml:"home_dir,omitempty"`
	Args    []string  `yaml:"args,omitempty"`
	Probe   ProbeSpec `yaml:"probe,omitempty"`
}

// RelayerSpec describes a relayer instance connecting two or more chains.
// Chains is ordered: the first entry is the controller/app side.
type RelayerSpec struct {
	Name   string      `yaml:"name"`
	Kind   RelayerKind `yaml:"kind"`
	Binary string      `yaml:"binary"`
	// Chains are the names of the ChainSpecs this relayer connects
	Chains  []string  `yaml:"chains"`
	HomeDir string    `yaml:"home_dir,omitempty"`
	Args    []string  `yaml:"args,omitempty"`
	Probe   ProbeSpec `yaml:"probe,omitempty"`
}

// ProcessHandle is the orchestrator's handle to one spawned child process.
// Each handle is owned exclusively by one chain or relayer entry of a single
// network instance.
type ProcessHandle struct {
	Name      string    `json:"name"`
	PID       int       `json:"pid"`
	LogFile   string    `json:"logFile"`
	LockFile  string    `json:"lockFile"`
	StartedAt time.Time `json:"startedAt"`
}

// ProcessState is the lifecycle state of a supervised child process
type ProcessState string

const (
	ProcessStarting ProcessState = "starting"
	ProcessReady    ProcessState = "ready"
	ProcessExited   ProcessState = "exited"
	ProcessKilled   ProcessState = "killed"
)

// ProcessStatus is a point-in-time snapshot of a supervised child
type ProcessStatus struct {
	State    ProcessState
	PID      int
	ExitCode int
}

// NetworkState is the lifecycle state of the network instance as a whole.
// Down and Up are the only valid rest states; Starting and Stopping are
// transient and must converge, Failed is reached on an unrecoverable child
// error during either transition.
type NetworkState string

const (
	NetworkDown     NetworkState = "down"
	NetworkStarting NetworkState = "starting"
	NetworkUp       NetworkState = "up"
	NetworkStopping NetworkState = "stopping"
	NetworkFailed   NetworkState = "failed"
)

// validTransitions is the closed transition table of the network lifecycle
var validTransitions = map[NetworkState][]NetworkState{
	NetworkDown:     {NetworkStarting, NetworkUp}, // Down -> Up covers attaching to an existing instance
	NetworkStarting: {NetworkUp, NetworkFailed},
	NetworkUp:       {NetworkStopping},
	NetworkStopping: {NetworkDown, NetworkFailed},
	NetworkFailed:   {NetworkStopping, NetworkDown},
}

// CanTransition reports whether moving from s to next is a legal lifecycle step
func (s NetworkState) CanTransition(next NetworkState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NetworkInstance is the running aggregate of one local network: the specs it
// was constructed from plus the child handles it exclusively owns.
type NetworkInstance struct {
	Name     string
	Chains   []ChainSpec
	Relayers []RelayerSpec
	State    NetworkState
	Handles  map[string]*ProcessHandle
}

// NewNetworkInstance constructs a Down instance from validated specs
func NewNetworkInstance(name string, chains []ChainSpec, relayers []RelayerSpec) *NetworkInstance {
	return &NetworkInstance{
		Name:     name,
		Chains:   chains,
		Relayers: relayers,
		State:    NetworkDown,
		Handles:  make(map[string]*ProcessHandle),
	}
}

// Transition moves the instance to next, rejecting illegal lifecycle steps
func (n *NetworkInstance) Transition(next NetworkState) error {
	if !n.State.CanTransition(next) {
		return fmt.Errorf("invalid network transition %s -> %s", n.State, next)
	}
	n.State = next
	return nil
}

// ChildNames returns every chain and relayer name, chains first
func (n *NetworkInstance) ChildNames() []string {
	names := make([]string, 0, len(n.Chains)+len(n.Relayers))
	for _, c := range n.Chains {
		names = append(names, c.Name)
	}
	for _, r := range n.Relayers {
		names = append(names, r.Name)
	}
	return names
}

// Chain returns the chain spec with the given name, if present
func (n *NetworkInstance) Chain(name string) (ChainSpec, bool) {
	for _, c := range n.Chains {
		if c.Name == name {
			return c, true
		}
	}
	return ChainSpec{}, false
}

// Validate checks the instance specs for construction errors: duplicate
// names, relayers referencing unknown chains, and relayers connecting fewer
// than two chains.
func (n *NetworkInstance) Validate() error {
	if len(n.Chains) == 0 {
		return fmt.Errorf("network %q has no chains", n.Name)
	}

	seen := make(map[string]bool)
	for _, c := range n.Chains {
		if seen[c.Name] {
			return fmt.Errorf("duplicate child name %q", c.Name)
		}
		seen[c.Name] = true
	}

	for _, r := range n.Relayers {
		if seen[r.Name] {
			return fmt.Errorf("duplicate child name %q", r.Name)
		}
		seen[r.Name] = true

		if len(r.Chains) < 2 {
			return fmt.Errorf("relayer %q must connect at least two chains", r.Name)
		}
		for _, chain := range r.Chains {
			if _, ok := n.Chain(chain); !ok {
				return fmt.Errorf("relayer %q references unknown chain %q", r.Name, chain)
			}
		}
	}

	return nil
}
