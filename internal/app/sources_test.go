package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/cargo-go/internal/catalog"
)

func TestSourcesAdd_InfersMethod(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.SourcesAdd("g", "git://x/y.git"))
	assert.Equal(t, catalog.MethodGit, a.Cat.Sources["g"].Method)

	require.NoError(t, a.SourcesAdd("demo", "http://example.invalid/demo"))
	assert.Equal(t, catalog.MethodCurl, a.Cat.Sources["demo"].Method)
}

func TestSourcesSetMethod_UnrecognizedCollapsesToCurl(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SourcesAdd("g", "git://x/y.git"))

	require.NoError(t, a.SourcesSetMethod("g", catalog.Method("fnord")))
	assert.Equal(t, catalog.MethodCurl, a.Cat.Sources["g"].Method)
}

func TestSourcesSetURL_RecomputesMethod(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SourcesAdd("demo", "http://example.invalid/demo"))
	assert.Equal(t, catalog.MethodCurl, a.Cat.Sources["demo"].Method)

	require.NoError(t, a.SourcesSetURL("demo", "git://x/y.git"))
	assert.Equal(t, "git://x/y.git", a.Cat.Sources["demo"].URL)
	assert.Equal(t, catalog.MethodGit, a.Cat.Sources["demo"].Method)
}

func TestSourcesRemoveAndClear(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SourcesAdd("demo", "http://example.invalid"))
	require.NoError(t, a.SourcesRemove("demo"))
	assert.Empty(t, a.Cat.Sources)

	require.NoError(t, a.SourcesAdd("demo2", "http://example.invalid"))
	require.NoError(t, a.SourcesClear())
	assert.Empty(t, a.Cat.Sources)
}

func TestSourcesRename(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SourcesAdd("old", "http://example.invalid"))
	require.NoError(t, a.SourcesRename("old", "new"))

	assert.NotContains(t, a.Cat.Sources, "old")
	assert.Contains(t, a.Cat.Sources, "new")
}

func TestPrintSources(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SourcesAdd("demo", "http://example.invalid"))

	var buf bytes.Buffer
	require.NoError(t, a.PrintSources(&buf))
	assert.Contains(t, buf.String(), "demo")
	assert.Contains(t, buf.String(), "NAME")
}

func TestPrintSources_Empty(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	require.NoError(t, a.PrintSources(&buf))
	assert.Equal(t, "No sources configured.\n", buf.String())
}
