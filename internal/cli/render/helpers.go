package render

import (
	"io"

	"github.com/fatih/color"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// renderWarnings prints aggregated stop warnings, if any
func renderWarnings(out io.Writer, warnings []domain.StopWarning) {
	for _, warning := range warnings {
		color.New(color.FgYellow).Fprintf(out, "warning: %s\n", warning.String())
	}
}
