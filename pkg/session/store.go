package session

import (
	"context"
	"errors"

	"github.com/travigo/tripsearch/pkg/tripquery"
)

var ErrNotFound = errors.New("search session not found")

// Store keeps the current variables of every search session. Put always replaces the stored
// value in full.
type Store interface {
	Get(ctx context.Context, id string) (tripquery.TripQueryVariables, error)
	Put(ctx context.Context, id string, variables tripquery.TripQueryVariables) error
}
