package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// ErrTimeout is returned when a probe never succeeded within its deadline
var ErrTimeout = errors.New("readiness probe timed out")

// Waiter polls readiness probes for spawned children. The mechanism is
// selected per spec: a CometBFT-style RPC status poll for chain nodes, a log
// marker for relayers that expose no stable query endpoint.
type Waiter struct {
	client *http.Client
	log    *slog.Logger
}

// NewWaiter creates a probe waiter
func NewWaiter(log *slog.Logger) *Waiter {
	return &Waiter{
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// Wait blocks until the probe succeeds, the timeout elapses (ErrTimeout), or
// the context is canceled.
func (w *Waiter) Wait(ctx context.Context, spec domain.ProbeSpec, logFile string) error {
	if spec.Kind == domain.ProbeKindNone {
		return nil
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	spec = spec.WithDefaults()

	check := func() error {
		switch spec.Kind {
		case domain.ProbeKindRPC:
			return w.checkRPC(ctx, spec.URL)
		case domain.ProbeKindLogMarker:
			return checkLogMarker(logFile, spec.Marker)
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownProbeKind, spec.Kind)
		}
	}

	deadline := time.Now().Add(spec.Timeout)
	ticker := time.NewTicker(spec.Interval)
	defer ticker.Stop()

	for {
		err := check()
		if err == nil {
			return nil
		}
		w.log.Debug("probe not ready", "kind", spec.Kind, "error", err)

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: last error: %v", ErrTimeout, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// statusResponse is the subset of the CometBFT /status payload we care about
type statusResponse struct {
	Result struct {
		SyncInfo struct {
			LatestBlockHeight string `json:"latest_block_height"`
			CatchingUp        bool   `json:"catching_up"`
		} `json:"sync_info"`
	} `json:"result"`
}

// checkRPC polls the node's status endpoint; the chain is ready once it has
// produced its first block.
func (w *Waiter) checkRPC(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status endpoint returned HTTP %d", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("failed to decode status response: %w", err)
	}

	height, err := strconv.ParseInt(status.Result.SyncInfo.LatestBlockHeight, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid block height %q", status.Result.SyncInfo.LatestBlockHeight)
	}
	if height < 1 {
		return fmt.Errorf("no blocks produced yet")
	}

	return nil
}

// checkLogMarker scans the child's log file for the marker line
func checkLogMarker(logFile, marker string) error {
	data, err := os.ReadFile(logFile)
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), marker) {
		return fmt.Errorf("marker %q not found in log", marker)
	}
	return nil
}
