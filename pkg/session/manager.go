package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

// Manager owns the variables of every open search form. Edits go through Update which hands
// the current value and a setter to the caller and stores whatever the setter last received.
type Manager struct {
	Store Store

	mutex sync.Mutex
}

func NewManager(store Store) *Manager {
	return &Manager{Store: store}
}

func (m *Manager) Create(ctx context.Context, initial tripquery.TripQueryVariables) (string, error) {
	id := uuid.NewString()

	if err := m.Store.Put(ctx, id, initial); err != nil {
		return "", err
	}

	log.Debug().Str("session", id).Msg("Created search session")

	return id, nil
}

func (m *Manager) Get(ctx context.Context, id string) (tripquery.TripQueryVariables, error) {
	return m.Store.Get(ctx, id)
}

// Update runs edit against the stored variables. When edit calls the setter the replacement is
// stored in full, otherwise the session is left alone.
func (m *Manager) Update(
	ctx context.Context,
	id string,
	edit func(current tripquery.TripQueryVariables, set func(tripquery.TripQueryVariables)) error,
) (tripquery.TripQueryVariables, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current, err := m.Store.Get(ctx, id)
	if err != nil {
		return current, err
	}

	next := current
	changed := false

	err = edit(current, func(replacement tripquery.TripQueryVariables) {
		next = replacement
		changed = true
	})
	if err != nil {
		return current, err
	}

	if !changed {
		return current, nil
	}

	if err := m.Store.Put(ctx, id, next); err != nil {
		return current, err
	}

	return next, nil
}
