package builder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

type runFunc func(ctx context.Context, workDir string, name string, args ...string) ([]byte, error)

// Builder drives the external contract toolchain: it discovers targets under
// the contracts directory, fingerprints their sources for rebuild skipping,
// and compiles each target into the artifacts directory.
type Builder struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
	run runFunc
}

// NewBuilder creates the contract builder
func NewBuilder(cfg *config.RuntimeConfig, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log, run: runCommand}
}

// Targets lists the contract names: one per subdirectory of the contracts
// directory that holds a Cargo.toml.
func (b *Builder) Targets(ctx context.Context) ([]string, error) {
	contractsDir := b.contractsDir()
	entries, err := os.ReadDir(contractsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts in %s: %w", contractsDir, err)
	}

	var targets []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest := filepath.Join(contractsDir, entry.Name(), "Cargo.toml")
		if _, err := os.Stat(manifest); err != nil {
			continue
		}
		targets = append(targets, entry.Name())
	}
	sort.Strings(targets)

	return targets, nil
}

// Fingerprint hashes the target's source tree: file paths and contents in
// sorted order. Build output directories are excluded so compiling does not
// change the fingerprint.
func (b *Builder) Fingerprint(ctx context.Context, target string) (string, error) {
	root := filepath.Join(b.contractsDir(), target)
	hash := sha256.New()

	var files []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == "target" || strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s sources: %w", target, err)
	}
	sort.Strings(files)

	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		hash.Write([]byte(rel))

		file, err := os.Open(path)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(hash, file)
		file.Close()
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Compile builds one target and lands the optimized binary in the artifacts
// directory. The final write is a temp file plus rename so a crashed build
// never leaves a truncated artifact behind.
func (b *Builder) Compile(ctx context.Context, target, fingerprint string) (domain.BuildArtifact, error) {
	command := substitute(b.cfg.Project.Build.Command, map[string]string{"{target}": target})
	if len(command) == 0 {
		return domain.BuildArtifact{}, fmt.Errorf("empty build command for %s", target)
	}

	b.log.Debug("compiling contract", "target", target, "command", command)
	output, err := b.run(ctx, b.cfg.ProjectRoot, command[0], command[1:]...)
	if err != nil {
		return domain.BuildArtifact{}, &domain.BuildFailureError{
			Target: target,
			Output: string(output),
			Err:    err,
		}
	}

	rawPath := filepath.Join(b.cfg.ProjectRoot, "target", "wasm32-unknown-unknown", "release",
		strings.ReplaceAll(target, "-", "_")+".wasm")
	if _, err := os.Stat(rawPath); err != nil {
		return domain.BuildArtifact{}, &domain.BuildFailureError{
			Target: target,
			Output: string(output),
			Err:    fmt.Errorf("compiler produced no output at %s: %w", rawPath, err),
		}
	}

	if err := os.MkdirAll(b.cfg.ArtifactsDir, 0o755); err != nil {
		return domain.BuildArtifact{}, err
	}

	finalPath := filepath.Join(b.cfg.ArtifactsDir, target+".wasm")
	tmpPath := finalPath + ".tmp"

	if optimizer := b.cfg.Project.Build.Optimizer; len(optimizer) > 0 {
		command := substitute(optimizer, map[string]string{"{input}": rawPath, "{output}": tmpPath})
		if output, err := b.run(ctx, b.cfg.ProjectRoot, command[0], command[1:]...); err != nil {
			return domain.BuildArtifact{}, &domain.BuildFailureError{
				Target: target,
				Output: string(output),
				Err:    fmt.Errorf("optimizer failed: %w", err),
			}
		}
	} else {
		if err := copyFile(rawPath, tmpPath); err != nil {
			return domain.BuildArtifact{}, err
		}
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return domain.BuildArtifact{}, err
	}

	checksum, size, err := fileDigest(finalPath)
	if err != nil {
		return domain.BuildArtifact{}, err
	}

	return domain.BuildArtifact{
		Name:        target,
		Path:        finalPath,
		Fingerprint: fingerprint,
		Checksum:    checksum,
		Size:        size,
		BuiltAt:     time.Now().UTC(),
	}, nil
}

func (b *Builder) contractsDir() string {
	return filepath.Join(b.cfg.ProjectRoot, b.cfg.Project.Build.ContractsDir)
}

// substitute expands placeholders in a command template
func substitute(template []string, replacements map[string]string) []string {
	command := make([]string, len(template))
	for i, word := range template {
		for placeholder, value := range replacements {
			word = strings.ReplaceAll(word, placeholder, value)
		}
		command[i] = word
	}
	return command
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func fileDigest(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hash.Sum(nil)), size, nil
}

func runCommand(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	return cmd.CombinedOutput()
}
