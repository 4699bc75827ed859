package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/interlab-org/icx-cli/internal/usecase"
)

// BuildRenderer renders dist results
type BuildRenderer struct {
	out io.Writer
}

// NewBuildRenderer creates a new build renderer
func NewBuildRenderer(out io.Writer) *BuildRenderer {
	return &BuildRenderer{out: out}
}

// Render renders the build result
func (r *BuildRenderer) Render(result *usecase.BuildArtifactsResult) error {
	for _, artifact := range result.Built {
		color.New(color.FgGreen).Fprintf(r.out, "built %s\n", artifact.Name)
		color.New(color.FgHiBlack).Fprintf(r.out, "  %s (%s, sha256 %.12s)\n",
			artifact.Path, formatSize(artifact.Size), artifact.Checksum)
	}
	for _, name := range result.Skipped {
		color.New(color.FgHiBlack).Fprintf(r.out, "skipped %s (unchanged)\n", name)
	}

	if len(result.Built) == 0 && len(result.Skipped) == 0 {
		fmt.Fprintln(r.out, "no contracts to build")
	}
	return nil
}

func formatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.1f KiB", float64(size)/1024)
}
