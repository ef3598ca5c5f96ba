//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	redisstore "njgeo/internal/catalog/store/redis"
	"njgeo/pkg/platform/sentinel"
	"njgeo/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *redisstore.Store
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = redisstore.New(s.redis.Client.Client, "counties", "municipalities")
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) hset(key string, fields ...any) {
	s.Require().NoError(s.redis.Client.HSet(context.Background(), key, fields...).Err())
}

func (s *RedisStoreSuite) TestLoadCountiesInKeyOrder() {
	s.hset("counties:34005", "GEOID", "34005", "county", "Burlington County")
	s.hset("counties:34001", "GEOID", "34001", "county", "Atlantic County")
	s.hset("other:34003", "GEOID", "34003", "county", "Bergen County")

	rows, err := s.store.LoadCounties(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("34001", rows[0].GEOID)
	s.Equal("Burlington County", rows[1].Name)
}

func (s *RedisStoreSuite) TestLoadManyMunicipalities() {
	// More rows than one SCAN page and one pipeline batch.
	const n = 1200
	for i := range n {
		geoid := fmt.Sprintf("%010d", i)
		s.hset("municipalities:"+geoid,
			"GEOID", geoid, "GEOID_Y2K", geoid, "county", "c", "municipality", "m",
			"first_year", "2000", "final_year", "2021")
	}

	rows, err := s.store.LoadMunicipalities(context.Background())
	s.Require().NoError(err)
	s.Len(rows, n)
	s.Equal(2000, rows[0].FirstYear)
	s.Equal(2021, rows[n-1].FinalYear)
}

func (s *RedisStoreSuite) TestMalformedRows() {
	ctx := context.Background()

	s.Run("non-numeric year", func() {
		s.Require().NoError(s.redis.FlushAll(ctx))
		s.hset("municipalities:1", "GEOID", "1", "GEOID_Y2K", "1", "county", "c", "municipality", "m",
			"first_year", "2000", "final_year", "later")

		_, err := s.store.LoadMunicipalities(ctx)
		s.ErrorIs(err, sentinel.ErrInvalidState)
		s.ErrorContains(err, "municipalities:1")
		s.ErrorContains(err, "final_year")
	})

	s.Run("missing field", func() {
		s.Require().NoError(s.redis.FlushAll(ctx))
		s.hset("counties:34001", "GEOID", "34001")

		_, err := s.store.LoadCounties(ctx)
		s.ErrorIs(err, sentinel.ErrInvalidState)
		s.ErrorContains(err, "missing field county")
	})
}
