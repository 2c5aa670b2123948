package crm

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Snapshot is the complete persisted state: clients in store order and
// the interaction registry.
type Snapshot struct {
	Clients      []types.Client
	Interactions *Registry
}

// Backend persists and restores a Snapshot at a path. Load returns a
// fresh snapshot plus any non-fatal warnings; an error means nothing was
// loaded.
type Backend interface {
	Load(path string) (Snapshot, []types.Warning, error)
	Save(path string, snap Snapshot) error
}

// Manager owns one Store and one Registry and keeps them consistent.
type Manager struct {
	store    *Store
	registry *Registry
	log      zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug output on mutations.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager returns a Manager with an empty store and registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:    NewStore(),
		registry: NewRegistry(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the client store.
func (m *Manager) Store() *Store { return m.store }

// Registry returns the interaction registry.
func (m *Manager) Registry() *Registry { return m.registry }

// AddClient appends a client to the store.
func (m *Manager) AddClient(c types.Client) {
	m.store.Add(c)
	m.log.Debug().Str("id_card", c.IDCard).Int("clients", m.store.Len()).Msg("client added")
}

// EditClient sets one field of the client at index. When the identity
// card changes and no other client still uses the old card, the client's
// history moves to the new card.
func (m *Manager) EditClient(index int, field, value string) (types.Client, error) {
	before, err := m.store.At(index)
	if err != nil {
		return types.Client{}, err
	}
	after, err := m.store.Edit(index, field, value)
	if err != nil {
		return types.Client{}, err
	}
	if before.IDCard != after.IDCard && m.store.IndexOf(before.IDCard) < 0 {
		m.registry.Rekey(before.IDCard, after.IDCard)
	}
	m.log.Debug().Int("index", index).Str("field", field).Str("id_card", after.IDCard).Msg("client edited")
	return after, nil
}

// RemoveClient deletes the client at index together with its interaction
// history and returns the removed client. On error nothing changes.
func (m *Manager) RemoveClient(index int) (types.Client, error) {
	c, err := m.store.At(index)
	if err != nil {
		return types.Client{}, err
	}
	idCard, err := m.store.Remove(index)
	if err != nil {
		return types.Client{}, err
	}
	m.registry.Purge(idCard)
	m.log.Debug().Str("id_card", idCard).Int("clients", m.store.Len()).Msg("client removed")
	return c, nil
}

// AddInteraction appends an interaction to the history of idCard.
func (m *Manager) AddInteraction(idCard string, in types.Interaction) {
	m.registry.Append(idCard, in)
	m.log.Debug().Str("id_card", idCard).Str("kind", string(in.Kind)).Msg("interaction added")
}

// AddInteractionAt appends an interaction to the history of the client at
// index. Returns ErrOutOfRange if the index is invalid.
func (m *Manager) AddInteractionAt(index int, in types.Interaction) (types.Client, error) {
	c, err := m.store.At(index)
	if err != nil {
		return types.Client{}, err
	}
	m.AddInteraction(c.IDCard, in)
	return c, nil
}

// Snapshot returns the current state for persistence. The registry is
// shared, not copied.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{Clients: m.store.List(), Interactions: m.registry}
}

// Replace discards the current state and adopts snap.
func (m *Manager) Replace(snap Snapshot) {
	m.store = NewStore(snap.Clients...)
	if snap.Interactions == nil {
		snap.Interactions = NewRegistry()
	}
	m.registry = snap.Interactions
}

// Load replaces the state with the snapshot read by b from path. If b
// fails the previous state is kept and the error is returned. Warnings
// are logged and returned.
func (m *Manager) Load(b Backend, path string) ([]types.Warning, error) {
	snap, warnings, err := b.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, w := range warnings {
		m.log.Warn().Str("file", path).Int("line", w.Line).Msg(w.Message)
	}
	m.Replace(snap)
	m.log.Debug().Str("file", path).Int("clients", m.store.Len()).Msg("data loaded")
	return warnings, nil
}

// Save writes the current state to path through b.
func (m *Manager) Save(b Backend, path string) error {
	if err := b.Save(path, m.Snapshot()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	m.log.Debug().Str("file", path).Int("clients", m.store.Len()).Msg("data saved")
	return nil
}
