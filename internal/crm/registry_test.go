package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func TestRegistryAppendPreservesOrder(t *testing.T) {
	r := NewRegistry()
	first := types.NewAppointment("Intro", "Bob", "2024-01-01", "10:00")
	second := types.NewContract("Home", 1200, "Signed")
	third := types.NewAppointment("Follow-up", "Bob", "2024-02-01", "11:00")

	r.Append("C1", first)
	r.Append("C2", second)
	r.Append("C1", third)

	assert.Equal(t, []types.Interaction{first, third}, r.ListFor("C1"))
	assert.Equal(t, []types.Interaction{second}, r.ListFor("C2"))
	assert.Equal(t, []string{"C1", "C2"}, r.Keys())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryListForAbsentKey(t *testing.T) {
	r := NewRegistry()
	got := r.ListFor("nobody")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.False(t, r.Has("nobody"))
}

func TestRegistryListForReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Append("C1", types.NewContract("Home", 10, "Open"))

	got := r.ListFor("C1")
	got[0].Description = "changed"

	assert.Equal(t, "Home", r.ListFor("C1")[0].Description)
}

func TestRegistryPurgeIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Append("C1", types.NewContract("Home", 10, "Open"))
	r.Append("C2", types.NewContract("Car", 20, "Open"))

	r.Purge("C1")
	once := r.Keys()
	r.Purge("C1")

	assert.Equal(t, once, r.Keys())
	assert.Equal(t, []string{"C2"}, r.Keys())
	assert.Empty(t, r.ListFor("C1"))

	r.Purge("never-seen")
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRekey(t *testing.T) {
	r := NewRegistry()
	a := types.NewContract("A", 1, "Open")
	b := types.NewContract("B", 2, "Open")
	r.Append("old", a)
	r.Append("new", b)

	r.Rekey("old", "new")

	assert.False(t, r.Has("old"))
	assert.Equal(t, []types.Interaction{b, a}, r.ListFor("new"))

	r.Rekey("absent", "new")
	r.Rekey("new", "new")
	assert.Equal(t, []types.Interaction{b, a}, r.ListFor("new"))
}
