package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectoryImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o700))

	images, err := LoadDirectoryImageFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(images))
	for _, image := range images {
		names = append(names, image.Name())
		assert.Equal(t, []byte(image.Name()), image.Data)
	}
	assert.Equal(t, []string{"a.JPG", "b.png", "c.webp"}, names)
}

func TestLoadDirectoryImagesMissingDir(t *testing.T) {
	_, err := LoadDirectoryImageFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
