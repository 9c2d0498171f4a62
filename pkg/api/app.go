package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/api/routes"
	"github.com/travigo/tripsearch/pkg/config"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/redis_client"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/session"
)

// NewSearch wires the session store and planner client described by the config
func NewSearch(ctx context.Context, appConfig *config.Config) (*routes.Search, error) {
	location, err := appConfig.Location()
	if err != nil {
		return nil, err
	}

	var store session.Store
	switch appConfig.Sessions.Backend {
	case config.SessionBackendRedis:
		if err := redis_client.Connect(ctx, appConfig.Redis); err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		store = session.NewCacheStore(redis_client.Client, appConfig.Sessions.TTL)
	default:
		store = session.NewMemoryStore(appConfig.Sessions.TTL)
	}

	log.Info().Str("backend", appConfig.Sessions.Backend).Msg("Search session store ready")

	searchWindowPlaceholder := ""
	if searchWindow, err := appConfig.DefaultSearchWindowMinutes(); err == nil && searchWindow != nil {
		searchWindowPlaceholder = strconv.Itoa(*searchWindow)
	}

	return &routes.Search{
		Sessions:                session.NewManager(store),
		Planner:                 planner.NewClient(appConfig.Planner),
		Clock:                   searchbar.Clock{Location: location},
		DefaultVariables:        appConfig.DefaultVariables(),
		SearchWindowPlaceholder: searchWindowPlaceholder,
	}, nil
}
