package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/interlab-org/icx-cli/internal/adapters/progress"
	"github.com/interlab-org/icx-cli/internal/app"
	"github.com/interlab-org/icx-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

// appKey is the context key for the app instance
const appKey contextKey = "app"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "icx",
		Short: "Local interchain devnet orchestrator for CosmWasm contracts",
		Long: `icx runs a disposable multi-chain devnet (chain nodes plus IBC relayers)
on the local machine and drives the contract build and e2e test workflow
against it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			bindGlobalFlags(v, cmd)

			sink := progress.NewConsoleSink(cmd.OutOrStdout())

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// start-local runs until interrupted, so it is exempt from the
			// invocation timeout
			if appInstance.Config.Timeout > 0 && cmd.Name() != "start-local" {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "network",
		Title: "Network Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "workflow",
		Title: "Workflow Commands",
	})

	startCmd := NewStartLocalCmd()
	startCmd.GroupID = "network"
	rootCmd.AddCommand(startCmd)

	stopCmd := NewStopLocalCmd()
	stopCmd.GroupID = "network"
	rootCmd.AddCommand(stopCmd)

	statusCmd := NewStatusCmd()
	statusCmd.GroupID = "network"
	rootCmd.AddCommand(statusCmd)

	cleanStateCmd := NewCleanLocalStateCmd()
	cleanStateCmd.GroupID = "network"
	rootCmd.AddCommand(cleanStateCmd)

	cleanAllCmd := NewCleanLocalAllCmd()
	cleanAllCmd.GroupID = "network"
	rootCmd.AddCommand(cleanAllCmd)

	distCmd := NewDistCmd()
	distCmd.GroupID = "workflow"
	rootCmd.AddCommand(distCmd)

	testCmd := NewTestCmd()
	testCmd.GroupID = "workflow"
	rootCmd.AddCommand(testCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	if f := cmd.Flag("debug"); f != nil && f.Changed {
		v.Set("debug", f.Value.String())
	}
	if f := cmd.Flag("non-interactive"); f != nil && f.Changed {
		v.Set("non_interactive", f.Value.String())
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
