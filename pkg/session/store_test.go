package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

func exampleVariables() tripquery.TripQueryVariables {
	return tripquery.TripQueryVariables{
		From:            &tripquery.Location{Place: "NSR:StopPlace:337"},
		To:              &tripquery.Location{Coordinates: &tripquery.Coordinates{Latitude: 60.39, Longitude: 5.32}},
		NumTripPatterns: tripquery.Int(5),
		ArriveBy:        true,
	}.WithTransportModes([]tripquery.TransportMode{tripquery.TransportModeRail})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.Now = func() time.Time { return now }

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a", exampleVariables()))

	variables, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, exampleVariables(), variables)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreKeepsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	dateTime := time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC)
	variables := exampleVariables()
	variables.DateTime = &dateTime
	require.NoError(t, store.Put(ctx, "c", variables))

	variables.From.Place = "NSR:StopPlace:59872"
	*variables.NumTripPatterns = 1
	variables.Modes.TransportModes[0].TransportMode = tripquery.TransportModeBus

	stored, err := store.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "NSR:StopPlace:337", stored.From.Place)
	assert.Equal(t, 5, *stored.NumTripPatterns)
	assert.Equal(t, []tripquery.TransportMode{tripquery.TransportModeRail}, stored.SelectedTransportModes())
	assert.Equal(t, dateTime, *stored.DateTime)

	again, err := store.Get(ctx, "c")
	require.NoError(t, err)
	assert.NotSame(t, stored.From, again.From)
	assert.NotSame(t, stored.DateTime, again.DateTime)
}

func TestCacheStore(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewCacheStore(client, time.Hour)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "b", exampleVariables()))
	assert.True(t, server.Exists(cacheKeyPrefix+"b"))

	variables, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, exampleVariables(), variables)

	server.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheStoreCorruptValue(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, server.Set(cacheKeyPrefix+"c", "{not json"))

	_, err := NewCacheStore(client, time.Hour).Get(context.Background(), "c")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
