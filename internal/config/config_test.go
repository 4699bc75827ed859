package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interlab-org/icx-cli/internal/domain"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFileName), []byte(""), 0o644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func TestLoadDevnetConfig_Default(t *testing.T) {
	cfg, err := LoadDevnetConfig(filepath.Join(t.TempDir(), DevnetFileName))
	require.NoError(t, err)

	assert.Equal(t, "localnet", cfg.Name)
	require.Len(t, cfg.Chains, 2)
	require.Len(t, cfg.Relayers, 2)
	assert.Equal(t, domain.ChainKindNeutron, cfg.Chains[0].Kind)
	assert.Equal(t, domain.ChainKindGaia, cfg.Chains[1].Kind)
	assert.Equal(t, domain.RelayerKindHermes, cfg.Relayers[0].Kind)
	assert.Equal(t, domain.RelayerKindICQ, cfg.Relayers[1].Kind)
}

func TestLoadDevnetConfig_File(t *testing.T) {
	yaml := `
name: custom
chains:
  - name: neutron
    kind: neutron
    binary: neutrond
    chain_id: pion-1
    denom: untrn
    rpc_addr: tcp://127.0.0.1:36657
    probe:
      kind: rpc
      url: http://127.0.0.1:36657/status
relayers:
  - name: hermes
    kind: hermes
    binary: hermes
    chains: [neutron]
    probe:
      kind: log
      marker: started
`
	path := filepath.Join(t.TempDir(), DevnetFileName)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadDevnetConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Name)
	require.Len(t, cfg.Chains, 1)
	assert.Equal(t, "pion-1", cfg.Chains[0].ChainID)
	assert.Equal(t, "tcp://127.0.0.1:36657", cfg.Chains[0].RPCAddr)
	require.Len(t, cfg.Relayers, 1)
	assert.Equal(t, domain.ProbeKindLogMarker, cfg.Relayers[0].Probe.Kind)
}

func TestDevnetConfig_Instance(t *testing.T) {
	instance, err := DefaultDevnetConfig().Instance()
	require.NoError(t, err)

	assert.Equal(t, domain.NetworkDown, instance.State)
	assert.Len(t, instance.Chains, 2)
	assert.Len(t, instance.Relayers, 2)

	// defaults were applied to probe polling
	for _, chain := range instance.Chains {
		assert.NotZero(t, chain.Probe.Interval)
		assert.NotZero(t, chain.Probe.Timeout)
	}
}

func TestDevnetConfig_Instance_BadKind(t *testing.T) {
	cfg := DefaultDevnetConfig()
	cfg.Chains[0].Kind = "osmosis"

	_, err := cfg.Instance()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownChainKind)
}

func TestLoadProjectConfig_Defaults(t *testing.T) {
	root := writeWorkspace(t, nil)

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "contracts", cfg.Build.ContractsDir)
	assert.Equal(t, "artifacts", cfg.Build.OutputDir)
	assert.Contains(t, cfg.Build.Command, "{target}")
	assert.NotEmpty(t, cfg.Test.E2ECommand)
}

func TestLoadProjectConfig_PartialFile(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		ProjectFileName: "[build]\noutput_dir = \"dist\"\n",
	})

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "dist", cfg.Build.OutputDir)
	// unset fields fall back to defaults
	assert.Equal(t, "contracts", cfg.Build.ContractsDir)
	assert.NotEmpty(t, cfg.Test.E2ECommand)
}

func TestProvider(t *testing.T) {
	root := writeWorkspace(t, nil)

	cmd := &cobra.Command{}
	v := SetupViper(root, cmd)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, ".icx", "state"), cfg.DataDir)
	assert.Equal(t, filepath.Join(root, "artifacts"), cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join(root, ".icx", "bin"), cfg.BinDir)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Devnet)
	require.NotNil(t, cfg.Project)
}

func TestFindProjectRoot(t *testing.T) {
	root := writeWorkspace(t, nil)
	nested := filepath.Join(root, "contracts", "ica-controller")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	chdir(t, nested)

	found, err := FindProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, resolveSymlinks(t, root), resolveSymlinks(t, found))
}

func TestFindProjectRoot_NotAWorkspace(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := FindProjectRoot()
	require.Error(t, err)
}

// chdir changes the working directory for the test, restoring it on cleanup
// (stand-in for t.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// macOS tempdirs sit behind /private symlinks
func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
