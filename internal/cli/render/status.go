package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/interlab-org/icx-cli/internal/domain"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// StatusRenderer renders the network status snapshot
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// Render renders the status result as a table
func (r *StatusRenderer) Render(result *usecase.NetworkStatusResult) error {
	fmt.Fprintf(r.out, "network '%s': %s\n\n", result.Name, stateLabel(result.State))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "KIND", "STATUS", "PID", "LOG"})

	for _, child := range result.Children {
		t.AppendRow(table.Row{
			child.Name,
			child.Kind,
			processLabel(child.Status),
			pidCell(child.Status),
			child.LogFile,
		})
	}

	t.Render()
	return nil
}

func stateLabel(state domain.NetworkState) string {
	switch state {
	case domain.NetworkUp:
		return color.GreenString(string(state))
	case domain.NetworkFailed:
		return color.RedString(string(state))
	default:
		return color.HiBlackString(string(state))
	}
}

func processLabel(status domain.ProcessStatus) string {
	switch status.State {
	case domain.ProcessReady:
		return color.GreenString("running")
	case domain.ProcessStarting:
		return color.YellowString("starting")
	default:
		return color.HiBlackString("down")
	}
}

func pidCell(status domain.ProcessStatus) string {
	if status.PID == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", status.PID)
}
