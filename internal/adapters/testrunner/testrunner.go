package testrunner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/interlab-org/icx-cli/internal/config"
)

// Runner executes the project's e2e test command against the live network.
// Test output streams straight through to the terminal so failures read
// exactly as they would when running the suite by hand.
type Runner struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewRunner creates the e2e test runner
func NewRunner(cfg *config.RuntimeConfig, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run invokes the configured e2e command with any extra selector args
// appended, from the project root.
func (r *Runner) Run(ctx context.Context, args []string) error {
	command := r.cfg.Project.Test.E2ECommand
	if len(command) == 0 {
		return fmt.Errorf("no e2e test command configured")
	}
	command = append(append([]string{}, command...), args...)

	r.log.Debug("running e2e tests", "command", command)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = r.cfg.ProjectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	env, err := r.projectEnv()
	if err != nil {
		return err
	}
	for key, value := range env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("e2e command exited: %w", err)
	}
	return nil
}

// projectEnv loads the workspace .env so tests see the same overrides the
// relayers were started with.
func (r *Runner) projectEnv() (map[string]string, error) {
	path := filepath.Join(r.cfg.ProjectRoot, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return env, nil
}
