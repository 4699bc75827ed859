package cli

import (
	"github.com/spf13/cobra"

	"github.com/interlab-org/icx-cli/internal/cli/render"
	"github.com/interlab-org/icx-cli/internal/domain"
	"github.com/interlab-org/icx-cli/internal/usecase"
)

// NewCleanLocalStateCmd creates the clean-local-state command
func NewCleanLocalStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-local-state",
		Short: "Remove devnet chain state",
		Long: `Remove the per-chain and per-relayer state directories so the next
start-local begins from a fresh genesis. Built artifacts and fetched
binaries are kept. Refused while the network is up.`,
		Args: cobra.NoArgs,
		RunE: runClean(domain.CleanStateOnly),
	}
}

// NewCleanLocalAllCmd creates the clean-local-all command
func NewCleanLocalAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-local-all",
		Short: "Remove devnet state, artifacts, and fetched binaries",
		Long: `Remove everything clean-local-state removes, plus the built contract
artifacts and fetched binaries. Refused while the network is up.`,
		Args: cobra.NoArgs,
		RunE: runClean(domain.CleanStateAndArtifacts),
	}
}

func runClean(scope domain.CleanScope) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := getApp(cmd)
		if err != nil {
			return err
		}

		result, err := app.CleanState.Execute(cmd.Context(), usecase.CleanStateParams{Scope: scope})
		if err != nil {
			return err
		}

		return render.NewCleanRenderer(cmd.OutOrStdout()).Render(result)
	}
}
