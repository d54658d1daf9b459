package keystore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	store     *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	addr, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := redis.ParseURL(addr)
	s.Require().NoError(err)

	s.client = redis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())
	s.store = NewRedisStore(s.client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisStoreSuite) TestTakeConsumesOnce() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "otp:010", "654321", time.Minute))

	v, ok, err := s.store.Take(ctx, "otp:010")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("654321", v)

	_, ok, err = s.store.Take(ctx, "otp:010")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisStoreSuite) TestPutSetsTTL() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "otp:011", "111111", time.Minute))

	ttl, err := s.client.TTL(ctx, keyPrefix+"otp:011").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisStoreSuite) TestTakeMissing() {
	_, ok, err := s.store.Take(context.Background(), "otp:missing")
	s.Require().NoError(err)
	s.False(ok)
}
