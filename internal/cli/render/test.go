package render

import (
	"io"

	"github.com/fatih/color"

	"github.com/interlab-org/icx-cli/internal/usecase"
)

// TestRenderer renders e2e run results
type TestRenderer struct {
	out io.Writer
}

// NewTestRenderer creates a new test renderer
func NewTestRenderer(out io.Writer) *TestRenderer {
	return &TestRenderer{out: out}
}

// Render renders the e2e result. The test output itself already streamed to
// the terminal; this only summarizes the outcome and any teardown warnings.
func (r *TestRenderer) Render(result *usecase.RunE2EResult, testErr error) error {
	renderWarnings(r.out, result.Warnings)

	if testErr != nil {
		color.New(color.FgRed).Fprintln(r.out, "e2e tests failed")
		return nil
	}

	if result.Attached {
		color.New(color.FgGreen).Fprintln(r.out, "e2e tests passed (network left running)")
	} else {
		color.New(color.FgGreen).Fprintln(r.out, "e2e tests passed")
	}
	return nil
}
