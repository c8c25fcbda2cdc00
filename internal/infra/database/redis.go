package database

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewRedis connects to the preference store and verifies the connection
// before handing the client out.
func NewRedis(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis connection failed")
	}

	return rdb, nil
}
