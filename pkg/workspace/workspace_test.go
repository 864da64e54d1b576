// Copyright © 2018 One Concern

package workspace

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestExtract(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	archive := filepath.Join(w.Dir(), "web.1.0.0.zip")
	writeZip(t, archive, map[string]string{
		"index.html":     "<html/>",
		"conf/app.json":  "{}",
		"scripts/run.sh": "echo hi",
	})

	dir, err := w.Extract(archive)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir(), "web.1.0.0"), dir)

	content, err := os.ReadFile(filepath.Join(dir, "conf", "app.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestExtractReusesTree(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	archive := filepath.Join(w.Dir(), "pkg.zip")
	writeZip(t, archive, map[string]string{"a.txt": "a"})

	first, err := w.Extract(archive)
	require.NoError(t, err)
	second, err := w.Extract(archive)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractRejectsZipSlip(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	archive := filepath.Join(w.Dir(), "evil.zip")
	writeZip(t, archive, map[string]string{"../../evil.txt": "boom"})

	_, err = w.Extract(archive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes extraction directory")
}

func TestExtractMissingArchive(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	_, err = w.Extract(filepath.Join(w.Dir(), "absent.zip"))
	require.Error(t, err)
}

func TestCloseRemovesEverything(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	archive := filepath.Join(w.Dir(), "pkg.zip")
	writeZip(t, archive, map[string]string{"a.txt": "a"})
	_, err = w.Extract(archive)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	_, err = os.Stat(w.Dir())
	assert.True(t, os.IsNotExist(err))
}
