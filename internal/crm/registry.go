package crm

import (
	"sort"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Registry maps an identity card to that client's interactions in entry
// order. It is the only owner of interaction values; readers get copies.
type Registry struct {
	entries map[string][]types.Interaction
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]types.Interaction)}
}

// Append adds an interaction to the end of idCard's history, creating the
// history if absent.
func (r *Registry) Append(idCard string, in types.Interaction) {
	r.entries[idCard] = append(r.entries[idCard], in)
}

// ListFor returns a copy of idCard's history in entry order. The result is
// empty, not nil, when the key is absent.
func (r *Registry) ListFor(idCard string) []types.Interaction {
	src := r.entries[idCard]
	out := make([]types.Interaction, len(src))
	copy(out, src)
	return out
}

// Has reports whether idCard has at least one interaction.
func (r *Registry) Has(idCard string) bool {
	return len(r.entries[idCard]) > 0
}

// Purge removes idCard and its whole history. Purging an absent key is a
// no-op.
func (r *Registry) Purge(idCard string) {
	delete(r.entries, idCard)
}

// Rekey moves the history stored under oldID to the end of newID's
// history. It is a no-op when the keys are equal or oldID is absent.
func (r *Registry) Rekey(oldID, newID string) {
	if oldID == newID {
		return
	}
	src, ok := r.entries[oldID]
	if !ok {
		return
	}
	delete(r.entries, oldID)
	r.entries[newID] = append(r.entries[newID], src...)
}

// Len returns the number of identity cards with a history.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Keys returns the identity cards with a history, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
