package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ProjectFileName marks the workspace root
const ProjectFileName = "icx.toml"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ProjectFileName, err)
	}

	devnet, err := LoadDevnetConfig(filepath.Join(projectRoot, DevnetFileName))
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".icx", "state"),
		ArtifactsDir:   filepath.Join(projectRoot, project.Build.OutputDir),
		BinDir:         filepath.Join(projectRoot, ".icx", "bin"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		Project:        project,
		Devnet:         devnet,
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find icx.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		marker := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(marker); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an icx workspace (%s not found)", ProjectFileName)
		}
		dir = parent
	}
}

// loadProjectConfig parses icx.toml, filling unset fields from defaults
func loadProjectConfig(projectRoot string) (*ProjectConfig, error) {
	cfg := DefaultProjectConfig()

	path := filepath.Join(projectRoot, ProjectFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var parsed ProjectConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	defaults := DefaultProjectConfig()
	if parsed.Build.ContractsDir == "" {
		parsed.Build.ContractsDir = defaults.Build.ContractsDir
	}
	if parsed.Build.OutputDir == "" {
		parsed.Build.OutputDir = defaults.Build.OutputDir
	}
	if len(parsed.Build.Command) == 0 {
		parsed.Build.Command = defaults.Build.Command
	}
	if len(parsed.Build.Optimizer) == 0 {
		parsed.Build.Optimizer = defaults.Build.Optimizer
	}
	if len(parsed.Test.E2ECommand) == 0 {
		parsed.Test.E2ECommand = defaults.Test.E2ECommand
	}

	return &parsed, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".icx"))

	v.SetEnvPrefix("ICX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// config file is optional
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			panic(err)
		}
	})

	return v
}
