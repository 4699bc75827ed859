package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/interlab-org/icx-cli/internal/cli/render"
	"github.com/interlab-org/icx-cli/internal/config"
)

// NewStartLocalCmd creates the start-local command
func NewStartLocalCmd() *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "start-local",
		Short: "Start the local devnet",
		Long: `Start every chain node in parallel, wait until all are producing blocks,
then start every relayer in parallel and wait until all are relaying.

Without --detach the network runs in the foreground and is torn down on
Ctrl-C. If the network is already up, start-local attaches to it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			spin := newSpinner(app.Config, " starting local network...")
			if spin != nil {
				spin.Start()
			}
			result, err := app.StartNetwork.Execute(cmd.Context())
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			renderer := render.NewNetworkRenderer(cmd.OutOrStdout())
			if err := renderer.RenderStart(result); err != nil {
				return err
			}

			if detach || result.Attached {
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "network is running, press Ctrl-C to stop")
			<-cmd.Context().Done()

			// the interrupt canceled the command context; teardown still needs one
			stopResult, err := app.StopNetwork.Execute(context.WithoutCancel(cmd.Context()))
			if err != nil {
				return err
			}
			return renderer.RenderStop(stopResult)
		},
	}

	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "Leave the network running and return immediately")

	return cmd
}

// NewStopLocalCmd creates the stop-local command
func NewStopLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop-local",
		Short: "Stop a detached local devnet",
		Long: `Stop every live relayer and chain node of the local devnet, relayers
first. Stopping an already-down network is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.StopNetwork.Execute(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworkRenderer(cmd.OutOrStdout()).RenderStop(result)
		},
	}
}

// newSpinner returns nil when progress animation would garble the output
func newSpinner(cfg *config.RuntimeConfig, suffix string) *spinner.Spinner {
	if cfg.NonInteractive || cfg.Debug {
		return nil
	}
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Suffix = suffix
	return spin
}
