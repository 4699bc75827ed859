package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/interlab-org/icx-cli/internal/usecase"
)

// NetworkRenderer renders start/stop operation results
type NetworkRenderer struct {
	out io.Writer
}

// NewNetworkRenderer creates a new network renderer
func NewNetworkRenderer(out io.Writer) *NetworkRenderer {
	return &NetworkRenderer{out: out}
}

// RenderStart renders the start operation result
func (r *NetworkRenderer) RenderStart(result *usecase.StartNetworkResult) error {
	if result.Attached {
		color.New(color.FgYellow).Fprintf(r.out, "network '%s' is already running, attached\n", result.Instance.Name)
	} else {
		color.New(color.FgGreen).Fprintf(r.out, "network '%s' is up\n", result.Instance.Name)
	}

	names := make([]string, 0, len(result.Instance.Handles))
	for name := range result.Instance.Handles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		handle := result.Instance.Handles[name]
		fmt.Fprintf(r.out, "  %s (PID %d)\n", name, handle.PID)
		color.New(color.FgHiBlack).Fprintf(r.out, "    logs: %s\n", handle.LogFile)
	}

	renderWarnings(r.out, result.Warnings)
	return nil
}

// RenderStop renders the stop operation result
func (r *NetworkRenderer) RenderStop(result *usecase.StopNetworkResult) error {
	if len(result.Stopped) == 0 {
		color.New(color.FgHiBlack).Fprintln(r.out, "network is not running, nothing to stop")
	} else {
		color.New(color.FgGreen).Fprintf(r.out, "network is down (stopped %d processes)\n", len(result.Stopped))
	}

	renderWarnings(r.out, result.Warnings)
	return nil
}
