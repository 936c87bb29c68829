package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/cargo-go/internal/walker"
)

type fakeBuilder struct {
	built []string
}

func (f *fakeBuilder) Build(_ context.Context, crateFile, _ string, _ bool) error {
	f.built = append(f.built, crateFile)
	return nil
}

func TestResolveAndInstall_CWDWithNoManifestsFails(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()

	builder := &fakeBuilder{}
	in := &installer{app: a, builder: builder, top: dir, topIsCWD: true}

	var w *walker.Walker
	w = walker.New(func(ctx context.Context, query string) error {
		return in.resolveAndInstall(ctx, w, query)
	})

	err := w.RunTopLevel(context.Background(), dir)
	require.Error(t, err)
	assert.Empty(t, builder.built)
}

func TestResolveAndInstall_CWDBuildsEveryManifest(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()

	rc := `#[link(name="foo", vers="1.0", uuid="12345678-1234-1234-1234-123456789abc")];
use std;
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.rc"), []byte(rc), 0644))

	builder := &fakeBuilder{}
	in := &installer{app: a, builder: builder, top: dir, topIsCWD: true}

	var w *walker.Walker
	w = walker.New(func(ctx context.Context, query string) error {
		return in.resolveAndInstall(ctx, w, query)
	})

	require.NoError(t, w.RunTopLevel(context.Background(), dir))
	require.Len(t, builder.built, 1)
	assert.Equal(t, filepath.Join(dir, "foo.rc"), builder.built[0])
}
