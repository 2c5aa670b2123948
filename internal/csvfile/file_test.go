package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm_data.csv")

	require.NoError(t, Save(path, annSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n"+annRow+"\n", string(data))

	snap, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, annSnapshot().Clients, snap.Clients)
	assert.Equal(t, annSnapshot().Interactions.ListFor("C1"), snap.Interactions.ListFor("C1"))
}

func TestSaveOverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, Save(path, crm.Snapshot{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestLoadReadFailureIsUnreadable(t *testing.T) {
	_, _, err := Load(t.TempDir())
	require.ErrorIs(t, err, types.ErrUnreadable)
	assert.NotErrorIs(t, err, types.ErrIO)
}

func TestSaveKeepsFileMode(t *testing.T) {
	tests := []struct {
		name     string
		existing os.FileMode
		want     os.FileMode
	}{
		{name: "new file", want: 0o644},
		{name: "existing 0640", existing: 0o640, want: 0o640},
		{name: "existing 0600", existing: 0o600, want: 0o600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crm_data.csv")
			if tt.existing != 0 {
				require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o600))
				require.NoError(t, os.Chmod(path, tt.existing))
			}

			require.NoError(t, Save(path, annSnapshot()))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())
		})
	}
}

func TestSaveThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "records.csv")
	link := filepath.Join(dir, "crm_data.csv")
	require.NoError(t, os.WriteFile(dest, []byte(Header+"\n"), 0o644))
	require.NoError(t, os.Symlink(dest, link))

	require.NoError(t, Save(link, annSnapshot()))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive the save")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n"+annRow+"\n", string(data))
}

func TestSaveUnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "crm_data.csv")
	err := Save(path, annSnapshot())
	assert.ErrorIs(t, err, types.ErrIO)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBackendWithManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm_data.csv")
	b := NewBackend()

	m := crm.NewManager()
	m.AddClient(types.Client{IDCard: "C1", FirstName: "Ann", LastName: "Lee", PolicyNumber: 1})
	m.AddClient(types.Client{IDCard: "C2", FirstName: "Bo", LastName: "Kim", PolicyNumber: 2})
	m.AddInteraction("C1", types.NewContract("Home", 12.5, "Open"))
	m.AddInteraction("C2", types.NewAppointment("Visit", "Eve", "2024-01-01", "08:00"))
	require.NoError(t, m.Save(b, path))

	_, err := m.RemoveClient(0)
	require.NoError(t, err)
	require.NoError(t, m.Save(b, path))

	loaded := crm.NewManager()
	_, err = loaded.Load(b, path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Store().Len())
	assert.Equal(t, []string{"C2"}, loaded.Registry().Keys())
}

func TestBackendLoadFailureKeepsManagerState(t *testing.T) {
	m := crm.NewManager()
	m.AddClient(types.Client{IDCard: "C1"})

	_, err := m.Load(NewBackend(), filepath.Join(t.TempDir(), "absent.csv"))
	require.ErrorIs(t, err, types.ErrIO)
	assert.Equal(t, 1, m.Store().Len())
}
