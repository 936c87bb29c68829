package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetModeFlags() {
	userMode = false
	systemMode = false
}

func TestResolveMode_UserAndSystemTogetherIsFatal(t *testing.T) {
	defer resetModeFlags()
	userMode, systemMode = true, true

	_, err := resolveMode(installCmd)
	require.Error(t, err)
}

func TestResolveMode_RejectedOutsideInstallUninstall(t *testing.T) {
	defer resetModeFlags()
	userMode = true

	_, err := resolveMode(listCmd)
	require.Error(t, err)
}

func TestResolveMode_AllowedForInstallAndUninstall(t *testing.T) {
	defer resetModeFlags()
	systemMode = true

	_, err := resolveMode(installCmd)
	require.NoError(t, err)

	_, err = resolveMode(uninstallCmd)
	require.NoError(t, err)
}

// runRoot executes rootCmd with args against fresh in/out buffers, used
// by the other cmd/cargo-go test files.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLogLevelFlag_RejectsUnknown(t *testing.T) {
	f := &logLevelFlag{}
	require.Error(t, f.Set("loud"))
	require.NoError(t, f.Set("debug"))
	assert.Equal(t, "debug", f.String())
}

func TestUsageCmd_PrintsRootHelpWithNoArgs(t *testing.T) {
	out, err := runRoot(t, "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "cargo-go")
}
