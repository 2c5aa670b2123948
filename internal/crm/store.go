// Package crm holds the in-memory client store, the interaction registry,
// and the Manager that owns both for the lifetime of a run.
//
// None of the types in this package are safe for concurrent use. A
// Manager is constructed by its caller and passed to whichever layer
// issues commands.
package crm

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Store is the ordered collection of clients. Indices are positions in
// insertion order; removal shifts later clients down by one.
type Store struct {
	clients []types.Client
}

// NewStore returns a store holding a copy of clients.
func NewStore(clients ...types.Client) *Store {
	s := &Store{}
	s.clients = append(s.clients, clients...)
	return s
}

// Add appends a client. Identity card uniqueness is the caller's concern.
func (s *Store) Add(c types.Client) {
	s.clients = append(s.clients, c)
}

// List returns the clients in order. The slice is a copy; an empty store
// returns an empty, non-nil slice.
func (s *Store) List() []types.Client {
	out := make([]types.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Len returns the number of clients.
func (s *Store) Len() int {
	return len(s.clients)
}

// At returns the client at index.
// Returns ErrOutOfRange if index is outside [0, Len()).
func (s *Store) At(index int) (types.Client, error) {
	if err := s.checkIndex(index); err != nil {
		return types.Client{}, err
	}
	return s.clients[index], nil
}

// IndexOf returns the index of the first client with the given identity
// card, or -1.
func (s *Store) IndexOf(idCard string) int {
	for i, c := range s.clients {
		if c.IDCard == idCard {
			return i
		}
	}
	return -1
}

// Edit sets one field of the client at index and returns the updated
// client. Nothing changes when an error is returned.
// Returns ErrOutOfRange, ErrInvalidField, or ErrInvalidFormat.
func (s *Store) Edit(index int, field, value string) (types.Client, error) {
	if err := s.checkIndex(index); err != nil {
		return types.Client{}, err
	}
	updated := s.clients[index]
	if err := updated.SetField(field, value); err != nil {
		return types.Client{}, err
	}
	s.clients[index] = updated
	return updated, nil
}

// Remove deletes the client at index and returns its identity card so the
// caller can purge the interaction history. Manager.RemoveClient does both.
// Returns ErrOutOfRange if index is outside [0, Len()).
func (s *Store) Remove(index int) (string, error) {
	if err := s.checkIndex(index); err != nil {
		return "", err
	}
	idCard := s.clients[index].IDCard
	s.clients = append(s.clients[:index], s.clients[index+1:]...)
	return idCard, nil
}

// Search returns, in order, the indices of clients whose first or last
// name contains term, ignoring case. The empty term matches every client.
func (s *Store) Search(term string) []int {
	needle := strings.ToLower(term)
	matches := []int{}
	for i, c := range s.clients {
		if strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.clients) {
		return fmt.Errorf("%w: %d (have %d clients)", types.ErrOutOfRange, index, len(s.clients))
	}
	return nil
}
