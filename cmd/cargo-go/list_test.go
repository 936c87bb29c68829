package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog writes sources.json and one source's packages.json
// directly, simulating a catalog that was already synced at some
// point in the past.
func seedCatalog(t *testing.T, home string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, "sources.json"),
		[]byte(`{"main":{"url":"http://127.0.0.1:1/main","method":"curl"}}`), 0644))

	srcDir := filepath.Join(home, "sources", "main")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "packages.json"), []byte(`[
		{"name":"foo","uuid":"12345678-1234-1234-1234-123456789abc","url":"http://example.invalid/foo","method":"curl","description":"a foo crate","tags":["net"]}
	]`), 0644))
}

func TestListCmd_PrintsSeededPackage(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CARGO_HOME", home)
	defer resetModeFlags()
	seedCatalog(t, home)

	out, err := runRoot(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "foo")
}

func TestSearchCmd_FiltersByTag(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CARGO_HOME", home)
	defer resetModeFlags()
	seedCatalog(t, home)

	out, err := runRoot(t, "search", "*", "cli")
	require.NoError(t, err)
	assert.NotContains(t, out, "foo")

	out, err = runRoot(t, "search", "*", "net")
	require.NoError(t, err)
	assert.Contains(t, out, "foo")
}
