package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/interlab-org/icx-cli/internal/usecase"
)

// CleanRenderer renders clean results
type CleanRenderer struct {
	out io.Writer
}

// NewCleanRenderer creates a new clean renderer
func NewCleanRenderer(out io.Writer) *CleanRenderer {
	return &CleanRenderer{out: out}
}

// Render renders the clean result
func (r *CleanRenderer) Render(result *usecase.CleanStateResult) error {
	if len(result.Removed) == 0 {
		fmt.Fprintln(r.out, "nothing to clean")
		return nil
	}

	for _, path := range result.Removed {
		color.New(color.FgGreen).Fprintf(r.out, "removed %s\n", path)
	}
	return nil
}
