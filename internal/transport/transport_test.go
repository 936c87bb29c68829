package transport

import (
	"archive/tar"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestTarXZ(t *testing.T, path string, names []string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	xw, err := xz.NewWriter(f)
	require.NoError(t, err)

	tw := tar.NewWriter(xw)
	for _, name := range names {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: 0, Mode: 0644}))
	}
	require.NoError(t, tw.Close())
	require.NoError(t, xw.Close())
}

func TestFile_Fetch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))

	dest := filepath.Join(dir, "dest.txt")
	f := NewFile()
	require.NoError(t, f.Fetch(context.Background(), src, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestFile_Fetch_MissingSource(t *testing.T) {
	dir := t.TempDir()
	f := NewFile()
	err := f.Fetch(context.Background(), filepath.Join(dir, "nope"), filepath.Join(dir, "dest"))
	assert.Error(t, err)
}

func TestIsGitURL(t *testing.T) {
	cases := map[string]bool{
		"git://example.com/repo":      true,
		"https://example.com/repo.git":  true,
		"https://example.com/repo.git/": true,
		"https://example.com/repo":      false,
		"/local/path":                   false,
	}
	for url, want := range cases {
		assert.Equal(t, want, IsGitURL(url), url)
	}
}

func TestArchiveExtensions(t *testing.T) {
	exts := ArchiveExtensions()
	assert.Contains(t, exts, ".tar.xz")
	assert.Contains(t, exts, ".tgz")
	assert.Len(t, exts, 13)
}

func TestGit_Exists(t *testing.T) {
	dir := t.TempDir()
	g := NewGit()
	assert.False(t, g.Exists(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	assert.True(t, g.Exists(dir))
}

func TestValidateRemote(t *testing.T) {
	require.NoError(t, ValidateRemote(context.Background(), "https://example.com/repo.git"))

	err := ValidateRemote(context.Background(), "::not a url::")
	assert.Error(t, err)
}

func TestGit_Clone_RejectsInvalidRemoteBeforeForking(t *testing.T) {
	g := NewGit()
	err := g.Clone(context.Background(), "::not a url::", t.TempDir())
	assert.Error(t, err)
}

func TestProbeTarXZMembers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg.tar.xz")
	writeTestTarXZ(t, path, []string{"pkg/foo.rc", "pkg/src/main.rs"})

	members, err := ProbeTarXZMembers(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pkg/foo.rc", "pkg/src/main.rs"}, members)
}

func TestProbeTarXZMembers_RejectsNonXZExtension(t *testing.T) {
	_, err := ProbeTarXZMembers(filepath.Join(t.TempDir(), "pkg.tar.gz"))
	assert.Error(t, err)
}
