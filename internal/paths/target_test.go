package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTarget(t *testing.T) {
	t.Run("missing file gets default mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crm_data.csv")
		target, mode, err := SaveTarget(path)
		require.NoError(t, err)
		assert.Equal(t, path, target)
		assert.Equal(t, DefaultFileMode, mode)
	})

	t.Run("existing file keeps its mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crm_data.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		require.NoError(t, os.Chmod(path, 0o640))

		target, mode, err := SaveTarget(path)
		require.NoError(t, err)
		assert.Equal(t, path, target)
		assert.Equal(t, os.FileMode(0o640), mode)
	})

	t.Run("symlink resolves to its target", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "records.csv")
		link := filepath.Join(dir, "crm_data.csv")
		require.NoError(t, os.WriteFile(dest, nil, 0o600))
		require.NoError(t, os.Symlink(dest, link))

		target, mode, err := SaveTarget(link)
		require.NoError(t, err)
		wantDest, err := filepath.EvalSymlinks(dest)
		require.NoError(t, err)
		assert.Equal(t, wantDest, target)
		assert.Equal(t, os.FileMode(0o600), mode)
	})
}

func TestCreateTempSetsMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "crm_data.csv")
	tmp, err := CreateTemp(target, ".crm-*.tmp", 0o644)
	require.NoError(t, err)
	defer tmp.Close()

	info, err := os.Stat(tmp.Name())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	assert.Equal(t, filepath.Dir(target), filepath.Dir(tmp.Name()))
}
