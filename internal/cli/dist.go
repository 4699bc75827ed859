package cli

import (
	"github.com/spf13/cobra"

	"github.com/interlab-org/icx-cli/internal/cli/render"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// NewDistCmd creates the dist command
func NewDistCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "dist [contract...]",
		Short: "Build optimized contract artifacts",
		Long: `Compile and optimize the workspace contracts into the artifacts
directory. Contracts whose sources are unchanged since the last build are
skipped; use --force to rebuild them anyway.

With no arguments every contract under the contracts directory is built.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			spin := newSpinner(app.Config, " building contracts...")
			if spin != nil {
				spin.Start()
			}
			result, err := app.BuildArtifacts.Execute(cmd.Context(), usecase.BuildArtifactsParams{
				Targets: args,
				Force:   force,
			})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			return render.NewBuildRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild even when sources are unchanged")

	return cmd
}
