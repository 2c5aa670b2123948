package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func sampleSnapshot() crm.Snapshot {
	reg := crm.NewRegistry()
	reg.Append("C1", types.NewAppointment("Checkup", "Bob", "2024-01-01", "10:00"))
	reg.Append("C1", types.NewContract("Home, deluxe", 1234.56, "Signed"))
	reg.Append("C2", types.NewContract("Car", 0, "Open"))
	reg.Append("ghost", types.NewAppointment("Orphan", "Eve", "", ""))
	return crm.Snapshot{
		Clients: []types.Client{
			{IDCard: "C2", FirstName: "Bo", LastName: "Kim", Email: "b@x.com", PolicyNumber: 7},
			{IDCard: "C1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", PolicyNumber: 100, CompanyName: "Acme"},
		},
		Interactions: reg,
	}
}

func TestBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	b := NewBackend()
	want := sampleSnapshot()

	require.NoError(t, b.Save(path, want))

	got, warnings, err := b.Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, want.Clients, got.Clients, "client order is preserved")
	assert.Equal(t, want.Interactions.Keys(), got.Interactions.Keys())
	for _, id := range want.Interactions.Keys() {
		assert.Equal(t, want.Interactions.ListFor(id), got.Interactions.ListFor(id), id)
	}
}

func TestBackendSaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm.db")
	b := NewBackend()

	require.NoError(t, b.Save(path, sampleSnapshot()))
	require.NoError(t, b.Save(path, crm.Snapshot{Clients: []types.Client{{IDCard: "only"}}}))

	got, _, err := b.Load(path)
	require.NoError(t, err)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "only", got.Clients[0].IDCard)
	assert.Equal(t, 0, got.Interactions.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp database must be renamed away")
}

func TestBackendLoadMissing(t *testing.T) {
	_, _, err := NewBackend().Load(filepath.Join(t.TempDir(), "absent.db"))
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestBackendLoadForeignFileIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm_data.csv")
	content := "ID_Card,First_Name,Last_Name,Email,Policy_Number,Company_Name,Interaction_Type,Description,Sales_Person,Date,Hour,Value,Status\n" +
		"C1,Ann,Lee,a@x.com,100,Acme,,,,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, _, err := NewBackend().Load(path)
	require.ErrorIs(t, err, types.ErrUnreadable)
	assert.NotErrorIs(t, err, types.ErrIO)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "a failed load must not touch the file")
}

func TestBackendSaveKeepsModeAndSymlink(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "records.db")
	link := filepath.Join(dir, "crm.db")
	b := NewBackend()
	require.NoError(t, b.Save(dest, crm.Snapshot{}))
	require.NoError(t, os.Chmod(dest, 0o640))
	require.NoError(t, os.Symlink(dest, link))

	require.NoError(t, b.Save(link, sampleSnapshot()))

	linfo, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&os.ModeSymlink)
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	got, _, err := b.Load(link)
	require.NoError(t, err)
	assert.Len(t, got.Clients, len(sampleSnapshot().Clients))
}

func TestBackendSaveNewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	require.NoError(t, NewBackend().Save(path, sampleSnapshot()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestBackendLoadUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	b := NewBackend()
	require.NoError(t, b.Save(path, sampleSnapshot()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE interactions SET kind = 'Call' WHERE id_card = 'C2'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	got, warnings, err := b.Load(path)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "Call")
	assert.False(t, got.Interactions.Has("C2"))
	assert.Len(t, got.Interactions.ListFor("C1"), 2)
}

func TestBackendInteractionIDsAreUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	require.NoError(t, NewBackend().Save(path, sampleSnapshot()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var total, distinct int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT interaction_id) FROM interactions`).Scan(&total, &distinct))
	assert.Equal(t, 4, total)
	assert.Equal(t, total, distinct)
}

func TestBackendWithManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	b := NewBackend()

	m := crm.NewManager()
	m.Replace(sampleSnapshot())
	_, err := m.RemoveClient(1)
	require.NoError(t, err)
	require.NoError(t, m.Save(b, path))

	loaded := crm.NewManager()
	_, err = loaded.Load(b, path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Store().Len())
	assert.False(t, loaded.Registry().Has("C1"))
}
