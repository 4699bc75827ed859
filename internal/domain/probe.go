package domain

import (
	"fmt"
	"time"
)

// ProbeKind selects the readiness detection mechanism for a child process
type ProbeKind string

const (
	// ProbeKindRPC polls a CometBFT-style JSON-RPC status endpoint until the
	// node reports a block height above zero
	ProbeKindRPC ProbeKind = "rpc"
	// ProbeKindLogMarker tails the child's log file until a marker line appears
	ProbeKindLogMarker ProbeKind = "log"
	// ProbeKindNone skips readiness polling; the child counts as ready once spawned
	ProbeKindNone ProbeKind = "none"
)

// ProbeSpec configures the readiness probe for one chain or relayer. The
// mechanism and timeouts are per-spec configuration, not fixed constants:
// each target binary signals readiness differently.
type ProbeSpec struct {
	Kind ProbeKind `yaml:"kind"`
	// URL is the status endpoint polled by rpc probes
	URL string `yaml:"url,omitempty"`
	// Marker is the log line substring awaited by log probes
	Marker   string        `yaml:"marker,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Validate checks the probe configuration for the fields its kind requires
func (p ProbeSpec) Validate() error {
	switch p.Kind {
	case ProbeKindRPC:
		if p.URL == "" {
			return fmt.Errorf("rpc probe requires a url")
		}
	case ProbeKindLogMarker:
		if p.Marker == "" {
			return fmt.Errorf("log probe requires a marker")
		}
	case ProbeKindNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProbeKind, p.Kind)
	}
	return nil
}

// WithDefaults fills in unset polling parameters
func (p ProbeSpec) WithDefaults() ProbeSpec {
	if p.Interval <= 0 {
		p.Interval = time.Second
	}
	if p.Timeout <= 0 {
		p.Timeout = 60 * time.Second
	}
	return p
}

// SpawnSpec is everything the process supervisor needs to launch and watch
// one child: the command, its working directory and environment, where its
// output goes, and how readiness is detected.
type SpawnSpec struct {
	Name     string
	Command  string
	Args     []string
	WorkDir  string
	Env      map[string]string
	LogFile  string
	LockFile string
	Probe    ProbeSpec
}
