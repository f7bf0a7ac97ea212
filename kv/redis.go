package kv

import (
	"errors"
	"time"

	"github.com/go-redis/redis/v7"
)

type Redis struct {
	client *redis.Client
}

var _ KeyValueStore = (*Redis)(nil)

// NewRedisKV connects to redis and verifies the connection with a ping.
// Read and write timeouts are bounded so a cache call can never hang a
// request handler.
func NewRedisKV(addr, pwd string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pwd,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Set(key string, value string, exp time.Duration) error {
	return r.client.Set(key, value, exp).Err()
}

func (r *Redis) Get(key string) (string, error) {
	val, err := r.client.Get(key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}

	return val, err
}

func (r *Redis) Del(key string) (string, error) {
	count, err := r.client.Del(key).Result()
	if err != nil {
		return "", err
	}

	if count == 0 {
		return "", ErrNotFound
	}

	return key, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
