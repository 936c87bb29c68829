package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID("12345678-1234-1234-1234-123456789abc"))
	assert.True(t, ValidUUID("ABCDEF01-ABCD-ABCD-ABCD-ABCDEF012345"))
	assert.False(t, ValidUUID("not-a-uuid"))
	assert.False(t, ValidUUID("12345678-1234-1234-1234"))
	assert.False(t, ValidUUID("1234567-1234-1234-1234-123456789abc"))
}

func TestValidSourceName(t *testing.T) {
	assert.True(t, ValidSourceName("main"))
	assert.True(t, ValidSourceName("my-source_1-0"))
	assert.True(t, ValidSourceName("-foo"))
	assert.True(t, ValidSourceName("_foo"))
	assert.False(t, ValidSourceName(""))
	assert.False(t, ValidSourceName("my-source_1.0"))
	assert.False(t, ValidSourceName("/etc/passwd"))
}

func TestAssumeMethod(t *testing.T) {
	exists := func(p string) bool { return p == "/exists" }
	assert.Equal(t, MethodGit, AssumeMethod("git://example.com/repo", exists))
	assert.Equal(t, MethodGit, AssumeMethod("https://example.com/repo.git", exists))
	assert.Equal(t, MethodFile, AssumeMethod("file:///tmp/repo", exists))
	assert.Equal(t, MethodFile, AssumeMethod("/exists", exists))
	assert.Equal(t, MethodCurl, AssumeMethod("https://example.com/sources.json", exists))
}

func TestLoadSources_MergeRule(t *testing.T) {
	dir := t.TempDir()
	sourcesPath := filepath.Join(dir, "sources.json")
	localPath := filepath.Join(dir, "local-sources.json")

	require.NoError(t, os.WriteFile(sourcesPath, []byte(`{"main":{"url":"https://a.example/sources.json","method":"curl"}}`), 0644))
	require.NoError(t, os.WriteFile(localPath, []byte(`{"main":{"url":"https://b.example/sources.json","method":"curl"}}`), 0644))

	sources, err := LoadSources(sourcesPath, localPath)
	require.NoError(t, err)
	assert.Equal(t, "https://b.example/sources.json", sources["main"].URL)
}

func TestLoadSources_MissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	sources, err := LoadSources(filepath.Join(dir, "sources.json"), filepath.Join(dir, "local-sources.json"))
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestDumpSources_BacksUpPrevious(t *testing.T) {
	dir := t.TempDir()
	sourcesPath := filepath.Join(dir, "sources.json")

	require.NoError(t, DumpSources(sourcesPath, map[string]Source{
		"main": {URL: "https://a.example", Method: MethodCurl},
	}))
	require.NoError(t, DumpSources(sourcesPath, map[string]Source{
		"main": {URL: "https://b.example", Method: MethodCurl},
	}))

	_, err := os.Stat(sourcesPath + ".old")
	require.NoError(t, err)

	sources, err := LoadSources(sourcesPath, filepath.Join(dir, "local-sources.json"))
	require.NoError(t, err)
	assert.Equal(t, "https://b.example", sources["main"].URL)
}

// TestDumpSources_RoundTripsExactly writes every Source field, reloads
// it, and diffs the whole map with cmp so any field silently dropped
// or renamed on the way through JSON shows up as a full struct diff.
func TestDumpSources_RoundTripsExactly(t *testing.T) {
	dir := t.TempDir()
	sourcesPath := filepath.Join(dir, "sources.json")

	want := map[string]Source{
		"main":   {URL: "https://a.example", Method: MethodCurl, Key: "key-url", KeyFP: "DEADBEEF"},
		"mirror": {URL: "git://b.example/repo.git", Method: MethodGit},
	}
	require.NoError(t, DumpSources(sourcesPath, want))

	got, err := LoadSources(sourcesPath, filepath.Join(dir, "local-sources.json"))
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPackages_SkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	packagesPath := filepath.Join(dir, "packages.json")

	content := `[
		{"name":"foo","uuid":"12345678-1234-1234-1234-123456789abc","url":"https://x","method":"curl","description":"d"},
		{"name":"bad uuid","uuid":"not-valid","url":"https://x","method":"curl","description":"d"},
		{"name":"missing-desc","uuid":"12345678-1234-1234-1234-123456789abc","url":"https://x","method":"curl"}
	]`
	require.NoError(t, os.WriteFile(packagesPath, []byte(content), 0644))

	packages, err := LoadPackages(packagesPath)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "foo", packages[0].Name)
	assert.Equal(t, []string{}, packages[0].Tags)
}

func TestCatalogOps(t *testing.T) {
	c := New()

	c1, err := c.Add("main", Source{URL: "https://a.example", Method: MethodCurl})
	require.NoError(t, err)
	assert.Empty(t, c.Sources, "original catalog must not be mutated")
	assert.Len(t, c1.Sources, 1)

	_, err = c1.Add("main", Source{URL: "https://dup.example"})
	assert.Error(t, err)

	c2, err := c1.Rename("main", "upstream")
	require.NoError(t, err)
	assert.Contains(t, c2.Sources, "upstream")
	assert.NotContains(t, c2.Sources, "main")

	c3, err := c2.SetURL("upstream", "https://new.example")
	require.NoError(t, err)
	assert.Equal(t, "https://new.example", c3.Sources["upstream"].URL)

	c4, err := c3.SetMethod("upstream", MethodGit)
	require.NoError(t, err)
	assert.Equal(t, MethodGit, c4.Sources["upstream"].Method)

	c5, err := c4.Remove("upstream")
	require.NoError(t, err)
	assert.Empty(t, c5.Sources)

	c6 := c4.Clear()
	assert.Empty(t, c6.Sources)
}
