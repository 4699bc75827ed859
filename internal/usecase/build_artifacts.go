package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/interlab-org/icx-cli/internal/domain"
)

// BuildArtifacts compiles contract targets for distribution. Targets whose
// source fingerprint matches the manifest are skipped unless forced. Targets
// build sequentially to keep failure attribution simple.
type BuildArtifacts struct {
	compiler ContractCompiler
	manifest ManifestStore
	progress ProgressSink
	log      *slog.Logger
}

// NewBuildArtifacts creates the dist use case
func NewBuildArtifacts(compiler ContractCompiler, manifest ManifestStore, progress ProgressSink, log *slog.Logger) *BuildArtifacts {
	return &BuildArtifacts{
		compiler: compiler,
		manifest: manifest,
		progress: progress,
		log:      log,
	}
}

// BuildArtifactsParams selects and forces targets
type BuildArtifactsParams struct {
	// Targets limits the build; empty means every discovered contract
	Targets []string
	// Force rebuilds even when the source fingerprint is unchanged
	Force bool
}

// BuildArtifactsResult reports what was built and what was fresh
type BuildArtifactsResult struct {
	Built   []domain.BuildArtifact
	Skipped []string
}

// Execute builds the selected targets
func (uc *BuildArtifacts) Execute(ctx context.Context, params BuildArtifactsParams) (*BuildArtifactsResult, error) {
	targets := params.Targets
	if len(targets) == 0 {
		var err error
		targets, err = uc.compiler.Targets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to discover contract targets: %w", err)
		}
	}

	manifest, err := uc.manifest.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load build manifest: %w", err)
	}

	result := &BuildArtifactsResult{}
	for _, target := range targets {
		fingerprint, err := uc.compiler.Fingerprint(ctx, target)
		if err != nil {
			return result, fmt.Errorf("failed to fingerprint %s: %w", target, err)
		}

		if !params.Force && manifest.Fresh(target, fingerprint) {
			uc.log.Debug("target is fresh, skipping", "target", target)
			result.Skipped = append(result.Skipped, target)
			continue
		}

		uc.progress.Info(fmt.Sprintf("building %s", target))
		artifact, err := uc.compiler.Compile(ctx, target, fingerprint)
		if err != nil {
			return result, err
		}

		manifest.Record(artifact)
		// persist after every target so earlier results survive a later failure
		if err := uc.manifest.Save(ctx, manifest); err != nil {
			return result, fmt.Errorf("failed to save build manifest: %w", err)
		}

		result.Built = append(result.Built, artifact)
	}

	return result, nil
}
