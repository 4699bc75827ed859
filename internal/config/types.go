package config

import (
	"time"
)

// RuntimeConfig is the resolved configuration for a single icx invocation.
// It is assembled once by the provider and injected everywhere else.
type RuntimeConfig struct {
	// ProjectRoot is the workspace root (the directory holding icx.toml)
	ProjectRoot string

	// DataDir is the root for per-chain/relayer state directories
	DataDir string

	// ArtifactsDir is the contract build output root
	ArtifactsDir string

	// BinDir holds fetched external binaries, removed by clean-local-all
	BinDir string

	// Debug enables debug output
	Debug bool

	// NonInteractive disables interactive prompts
	NonInteractive bool

	// Timeout bounds a whole command invocation
	Timeout time.Duration

	// Project is the parsed icx.toml
	Project *ProjectConfig

	// Devnet is the local network topology
	Devnet *DevnetConfig
}

// ProjectConfig is the icx.toml file at the workspace root. Its presence
// marks the project root.
type ProjectConfig struct {
	Build BuildConfig `toml:"build"`
	Test  TestConfig  `toml:"test"`
}

// BuildConfig configures the contract dist pipeline
type BuildConfig struct {
	// ContractsDir is the directory containing one subdirectory per contract
	ContractsDir string `toml:"contracts_dir"`
	// OutputDir is where optimized binaries and the manifest land
	OutputDir string `toml:"output_dir"`
	// Command is the compiler invocation run per target, with {target}
	// substituted for the contract name
	Command []string `toml:"command"`
	// Optimizer is an optional post-processing invocation, with {input} and
	// {output} substituted
	Optimizer []string `toml:"optimizer"`
}

// TestConfig configures the external e2e test runner
type TestConfig struct {
	// E2ECommand is the test invocation; extra selector args are appended
	E2ECommand []string `toml:"e2e_command"`
}

// DefaultProjectConfig returns the config used when icx.toml omits sections
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Build: BuildConfig{
			ContractsDir: "contracts",
			OutputDir:    "artifacts",
			Command: []string{
				"cargo", "build", "--release", "--target", "wasm32-unknown-unknown", "-p", "{target}",
			},
			Optimizer: []string{"wasm-opt", "-Os", "-o", "{output}", "{input}"},
		},
		Test: TestConfig{
			E2ECommand: []string{"cargo", "test", "--", "--nocapture", "--test-threads", "1"},
		},
	}
}
