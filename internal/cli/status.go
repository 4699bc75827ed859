package cli

import (
	"github.com/spf13/cobra"

	"github.com/interlab-org/icx-cli/internal/cli/render"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show devnet state and per-process status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.NetworkStatus.Execute(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewStatusRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
