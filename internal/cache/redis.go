package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/domain"
)

const (
	flightsKey   = "cache:flights"
	countriesKey = "cache:countries"
)

// RedisCache holds the read-mostly lists served by the API. A nil slice from
// a getter means a miss.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := c.get(ctx, flightsKey, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.set(ctx, flightsKey, flights)
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey).Err()
}

func (c *RedisCache) GetCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.get(ctx, countriesKey, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *RedisCache) SetCountries(ctx context.Context, countries []domain.Country) error {
	return c.set(ctx, countriesKey, countries)
}

func (c *RedisCache) InvalidateCountries(ctx context.Context) error {
	return c.client.Del(ctx, countriesKey).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return decode(data, dst)
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := encode(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// encode never stores a JSON null, so an empty list still counts as a hit.
func encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(payload) == "null" {
		return []byte("[]"), nil
	}
	return payload, nil
}

func decode(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}
