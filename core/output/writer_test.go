package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePage_FlatName(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WritePage("https://example.com/docs/intro", []byte("body"), ".md")
	require.NoError(t, err)

	assert.Equal(t, "example_com_docs_intro.md", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
}

func TestWritePage_RootURL(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WritePage("https://example.com/", []byte("x"), ".json")
	require.NoError(t, err)
	assert.Equal(t, "example_com.json", filepath.Base(path))
}

func TestWriteTree_MirrorsURLPath(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteTree("https://site.com/docs/guide/intro", []byte("x"), ".md")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docs", "guide", "intro.md"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteTree_RootBecomesIndex(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteTree("https://site.com/", []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.md"), path)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "example_com", filenameFromURL("https://example.com"))
	assert.Equal(t, "example_com_a_b", filenameFromURL("https://example.com/a/b/"))
	assert.Equal(t, "docs_site_io_v1_2", filenameFromURL("https://docs.site.io/v1.2"))
}
