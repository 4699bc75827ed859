package cli

import (
	"github.com/spf13/cobra"

	"github.com/interlab-org/icx-cli/internal/cli/render"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// NewTestCmd creates the test command group
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run test suites against the local devnet",
	}

	cmd.AddCommand(newTestE2ECmd())

	return cmd
}

// newTestE2ECmd creates the test e2e subcommand
func newTestE2ECmd() *cobra.Command {
	return &cobra.Command{
		Use:   "e2e [selector args...]",
		Short: "Run the e2e suite against a live devnet",
		Long: `Build the contract artifacts, make sure the devnet is up, and run the
configured e2e test command. When no devnet is running one is started and
torn down afterwards, even if the tests fail; a devnet that is already up
is reused and left running.

Extra arguments are appended to the test command, e.g. a test name filter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunE2E.Execute(cmd.Context(), usecase.RunE2EParams{Args: args})
			if result != nil {
				// teardown warnings are reported even when the tests failed
				_ = render.NewTestRenderer(cmd.OutOrStdout()).Render(result, err)
			}
			return err
		},
	}
}
