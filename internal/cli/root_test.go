package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Commands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	for _, expected := range []string{
		"start-local",
		"stop-local",
		"status",
		"clean-local-state",
		"clean-local-all",
		"dist",
		"test",
		"version",
	} {
		assert.Contains(t, names, expected)
	}
}

func TestTestCmd_HasE2ESubcommand(t *testing.T) {
	cmd := NewTestCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "e2e")
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "icx version")
}

func TestStartLocalCmd_Flags(t *testing.T) {
	cmd := NewStartLocalCmd()
	assert.NotNil(t, cmd.Flags().Lookup("detach"))
}

func TestDistCmd_Flags(t *testing.T) {
	cmd := NewDistCmd()
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}
