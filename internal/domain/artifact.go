package domain

import "time"

// BuildArtifact records one compiled contract binary. Artifacts are never
// mutated after creation, only superseded by a new artifact with the same
// logical name.
type BuildArtifact struct {
	// Name is the logical contract name (e.g. "multiple_ica_icq")
	Name string `json:"name"`
	// Path is the stable output location consumed by deployment
	Path string `json:"path"`
	// Fingerprint is the sha256 of the contract's source tree at build time
	Fingerprint string `json:"fingerprint"`
	// Checksum is the sha256 of the produced binary
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	BuiltAt  time.Time `json:"builtAt"`
}

// BuildManifest maps contract names to their last recorded artifact. It is
// persisted under the artifact output root for the dist step to consume.
type BuildManifest struct {
	Artifacts map[string]BuildArtifact `json:"artifacts"`
}

// NewBuildManifest returns an empty manifest
func NewBuildManifest() *BuildManifest {
	return &BuildManifest{Artifacts: make(map[string]BuildArtifact)}
}

// Fresh reports whether the recorded artifact for name matches fingerprint,
// meaning a rebuild can be skipped.
func (m *BuildManifest) Fresh(name, fingerprint string) bool {
	a, ok := m.Artifacts[name]
	return ok && a.Fingerprint == fingerprint
}

// Record supersedes the entry for the artifact's logical name
func (m *BuildManifest) Record(a BuildArtifact) {
	if m.Artifacts == nil {
		m.Artifacts = make(map[string]BuildArtifact)
	}
	m.Artifacts[a.Name] = a
}

// CleanScope selects how much on-disk state a clean operation removes
type CleanScope string

const (
	// CleanStateOnly removes only per-chain/relayer runtime state directories
	CleanStateOnly CleanScope = "state"
	// CleanStateAndArtifacts additionally removes built artifacts and fetched binaries
	CleanStateAndArtifacts CleanScope = "all"
)
