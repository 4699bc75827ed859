package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interlab-org/icx-cli/internal/domain"
)

func newBuildHarness() (*fakeCompiler, *fakeManifestStore, *BuildArtifacts) {
	compiler := &fakeCompiler{
		targets: []string{"ibc_transfer_roundtrip", "multiple_ica_icq"},
		fingerprints: map[string]string{
			"ibc_transfer_roundtrip": "fp-roundtrip-1",
			"multiple_ica_icq":       "fp-icq-1",
		},
		failCompile: make(map[string]error),
	}
	manifest := &fakeManifestStore{}
	return compiler, manifest, NewBuildArtifacts(compiler, manifest, NopSink{}, testLogger())
}

func TestBuildArtifacts_BuildsAllDiscoveredTargets(t *testing.T) {
	compiler, manifest, uc := newBuildHarness()

	result, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)
	assert.Len(t, result.Built, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 2, compiler.compileCalls)
	assert.True(t, manifest.manifest.Fresh("multiple_ica_icq", "fp-icq-1"))
}

func TestBuildArtifacts_SecondBuildIsSkipped(t *testing.T) {
	compiler, _, uc := newBuildHarness()

	_, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)

	// unchanged source: same fingerprints, so the compiler must not run again
	result, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Built)
	assert.Len(t, result.Skipped, 2)
	assert.Equal(t, 2, compiler.compileCalls, "compile step must not be re-invoked for fresh targets")
}

func TestBuildArtifacts_ChangedSourceRebuilds(t *testing.T) {
	compiler, _, uc := newBuildHarness()

	_, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)

	compiler.fingerprints["multiple_ica_icq"] = "fp-icq-2"

	result, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)
	require.Len(t, result.Built, 1)
	assert.Equal(t, "multiple_ica_icq", result.Built[0].Name)
	assert.Equal(t, []string{"ibc_transfer_roundtrip"}, result.Skipped)
}

func TestBuildArtifacts_ForceRebuildsFreshTargets(t *testing.T) {
	compiler, _, uc := newBuildHarness()

	_, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	require.NoError(t, err)

	result, err := uc.Execute(context.Background(), BuildArtifactsParams{Force: true})
	require.NoError(t, err)
	assert.Len(t, result.Built, 2)
	assert.Equal(t, 4, compiler.compileCalls)
}

func TestBuildArtifacts_ExplicitTargetSelection(t *testing.T) {
	compiler, _, uc := newBuildHarness()

	result, err := uc.Execute(context.Background(), BuildArtifactsParams{Targets: []string{"multiple_ica_icq"}})
	require.NoError(t, err)
	require.Len(t, result.Built, 1)
	assert.Equal(t, "multiple_ica_icq", result.Built[0].Name)
	assert.Equal(t, 1, compiler.compileCalls)
}

func TestBuildArtifacts_FailureKeepsEarlierResults(t *testing.T) {
	compiler, manifest, uc := newBuildHarness()
	buildErr := &domain.BuildFailureError{Target: "multiple_ica_icq", Err: errors.New("exit status 101")}
	compiler.failCompile["multiple_ica_icq"] = buildErr

	result, err := uc.Execute(context.Background(), BuildArtifactsParams{})
	var failure *domain.BuildFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "multiple_ica_icq", failure.Target)

	// the target built before the failure is recorded and reported
	require.Len(t, result.Built, 1)
	assert.Equal(t, "ibc_transfer_roundtrip", result.Built[0].Name)
	assert.True(t, manifest.manifest.Fresh("ibc_transfer_roundtrip", "fp-roundtrip-1"))
	assert.False(t, manifest.manifest.Fresh("multiple_ica_icq", "fp-icq-1"))
}
