package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
)

func newCatalogWithPackages() *catalog.Catalog {
	cat := catalog.New()
	cat.Sources["main"] = catalog.Source{URL: "https://example.com", Method: catalog.MethodCurl}
	cat.Packages["main"] = []catalog.Package{
		{Name: "foo", UUID: "12345678-1234-1234-1234-123456789abc", URL: "https://x", Method: catalog.MethodCurl, Description: "d"},
		{Name: "bar", UUID: "87654321-4321-4321-4321-cba987654321", URL: "https://x", Method: catalog.MethodCurl, Description: "d"},
	}
	return cat
}

func TestResolve_ArchivePath(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0644))

	r := NewResolver(catalog.New())
	target, err := r.Resolve(archive, "")
	require.NoError(t, err)
	assert.Equal(t, KindArchiveFile, target.Kind)
}

func TestResolve_GitURL(t *testing.T) {
	r := NewResolver(catalog.New())
	target, err := r.Resolve("https://example.com/repo.git", "v1.0")
	require.NoError(t, err)
	assert.Equal(t, KindGitURL, target.Kind)
	assert.Equal(t, "v1.0", target.GitRef)
}

func TestResolve_TarballURL(t *testing.T) {
	r := NewResolver(catalog.New())
	target, err := r.Resolve("https://example.com/pkg.tar.xz", "")
	require.NoError(t, err)
	assert.Equal(t, KindTarballURL, target.Kind)
}

func TestResolve_QualifiedUUID(t *testing.T) {
	cat := newCatalogWithPackages()
	r := NewResolver(cat)
	target, err := r.Resolve("main/12345678-1234-1234-1234-123456789abc", "")
	require.NoError(t, err)
	assert.Equal(t, KindPackage, target.Kind)
	assert.Equal(t, "foo", target.Package.Name)
}

func TestResolve_QualifiedName(t *testing.T) {
	cat := newCatalogWithPackages()
	r := NewResolver(cat)
	target, err := r.Resolve("main/bar", "")
	require.NoError(t, err)
	assert.Equal(t, "bar", target.Package.Name)
}

func TestResolve_QualifiedName_Ambiguous(t *testing.T) {
	cat := newCatalogWithPackages()
	cat.Packages["main"] = append(cat.Packages["main"], catalog.Package{
		Name: "bar", UUID: "11111111-1111-1111-1111-111111111111", URL: "https://x", Method: catalog.MethodCurl, Description: "d",
	})

	r := NewResolver(cat)
	_, err := r.Resolve("main/bar", "")
	assert.Error(t, err)
}

func TestResolve_BareUUID(t *testing.T) {
	cat := newCatalogWithPackages()
	r := NewResolver(cat)
	target, err := r.Resolve("12345678-1234-1234-1234-123456789abc", "")
	require.NoError(t, err)
	assert.Equal(t, "foo", target.Package.Name)
}

func TestResolve_BareName_NotFound(t *testing.T) {
	cat := newCatalogWithPackages()
	r := NewResolver(cat)
	_, err := r.Resolve("nonexistent", "")
	assert.Error(t, err)
}

func TestResolve_BareName_MultipleSources(t *testing.T) {
	cat := newCatalogWithPackages()
	cat.Sources["other"] = catalog.Source{URL: "https://other.example", Method: catalog.MethodCurl}
	cat.Packages["other"] = []catalog.Package{
		{Name: "foo", UUID: "22222222-2222-2222-2222-222222222222", URL: "https://x", Method: catalog.MethodCurl, Description: "d"},
	}

	r := NewResolver(cat)
	_, err := r.Resolve("foo", "")
	assert.Error(t, err)
}

func TestResolve_QualifiedNameWithVersion(t *testing.T) {
	cat := newCatalogWithPackages()
	cat.Packages["main"] = append(cat.Packages["main"], catalog.Package{
		Name: "bar", UUID: "11111111-1111-1111-1111-111111111111", URL: "https://x", Method: catalog.MethodCurl, Description: "d", Tags: []string{"v1.0.0"},
	})
	cat.Packages["main"][1].Tags = []string{"v2.0.0"}

	r := NewResolver(cat)
	target, err := r.Resolve("main/bar@>=1.5.0", "")
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", target.Package.Tags[0])
}

func TestResolve_QualifiedNameWithVersion_NoMatch(t *testing.T) {
	cat := newCatalogWithPackages()
	cat.Packages["main"][1].Tags = []string{"v2.0.0"}

	r := NewResolver(cat)
	_, err := r.Resolve("main/bar@>=5.0.0", "")
	require.Error(t, err)
	var cErr *cargoerr.Error
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, cargoerr.CodeNoVersionMatch, cErr.Code)
}

func TestResolve_BareNameWithVersion_AcrossSources(t *testing.T) {
	cat := newCatalogWithPackages()
	cat.Packages["main"][0].Tags = []string{"v1.0.0"}
	cat.Sources["other"] = catalog.Source{URL: "https://other.example", Method: catalog.MethodCurl}
	cat.Packages["other"] = []catalog.Package{
		{Name: "foo", UUID: "22222222-2222-2222-2222-222222222222", URL: "https://x", Method: catalog.MethodCurl, Description: "d", Tags: []string{"v2.0.0"}},
	}

	r := NewResolver(cat)
	target, err := r.Resolve("foo@>=1.5.0", "")
	require.NoError(t, err)
	assert.Equal(t, "other", target.SourceName)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", target.Package.UUID)
}

func TestMatchVersion(t *testing.T) {
	candidates := []catalog.Package{
		{Name: "foo", UUID: "a", Tags: []string{"v1.0.0"}},
		{Name: "foo", UUID: "b", Tags: []string{"v2.0.0"}},
	}

	best, ok := MatchVersion(candidates, "foo@>=1.5.0")
	require.True(t, ok)
	assert.Equal(t, "b", best.UUID)

	_, ok = MatchVersion(candidates, "foo@>=5.0.0")
	assert.False(t, ok)

	best, ok = MatchVersion(candidates, "foo")
	require.True(t, ok)
	assert.Equal(t, "a", best.UUID)
}
