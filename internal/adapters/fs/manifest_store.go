package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/interlab-org/icx-cli/internal/config"
	"github.com/interlab-org/icx-cli/internal/domain"
)

// ManifestFileName sits under the artifact output root
const ManifestFileName = "manifest.json"

// ManifestStore persists the build manifest as JSON under the artifacts dir
type ManifestStore struct {
	path string
}

// NewManifestStore creates the manifest store
func NewManifestStore(cfg *config.RuntimeConfig) *ManifestStore {
	return &ManifestStore{path: filepath.Join(cfg.ArtifactsDir, ManifestFileName)}
}

// Load reads the manifest, returning an empty one when none exists yet
func (s *ManifestStore) Load(ctx context.Context) (*domain.BuildManifest, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.NewBuildManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read build manifest: %w", err)
	}

	var manifest domain.BuildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse build manifest: %w", err)
	}
	if manifest.Artifacts == nil {
		manifest.Artifacts = make(map[string]domain.BuildArtifact)
	}
	return &manifest, nil
}

// Save writes the manifest atomically: temp file then rename
func (s *ManifestStore) Save(ctx context.Context, manifest *domain.BuildManifest) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal build manifest: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
