package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/config"
)

var Client *redis.Client

func Connect(ctx context.Context, redisConfig config.RedisConfig) error {
	options := &redis.Options{
		Addr: redisConfig.Address,
		DB:   redisConfig.Database,
	}

	if redisConfig.Password != "" {
		options.Password = redisConfig.Password
	}

	client := redis.NewClient(options)

	statusCmd := client.Ping(ctx)
	if err := statusCmd.Err(); err != nil {
		client.Close()
		return err
	}

	log.Info().Str("address", redisConfig.Address).Int("database", redisConfig.Database).Msg("Connected to Redis")

	Client = client

	return nil
}
