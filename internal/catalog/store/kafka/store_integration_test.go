//go:build integration

package kafka_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	kafkastore "njgeo/internal/catalog/store/kafka"
	"njgeo/pkg/platform/sentinel"
	"njgeo/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer

	counties       string
	municipalities string
	store          *kafkastore.Store
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

// Each test gets fresh topics so offsets never leak between cases.
func (s *KafkaStoreSuite) SetupTest() {
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	s.counties = "counties-" + suffix
	s.municipalities = "municipalities-" + suffix
	s.Require().NoError(s.redpanda.CreateCompactedTopic(ctx, s.counties, 1))
	s.Require().NoError(s.redpanda.CreateCompactedTopic(ctx, s.municipalities, 3))
	s.store = kafkastore.New(s.redpanda.Client, s.counties, s.municipalities, 20*time.Second)
}

func (s *KafkaStoreSuite) produce(topic, key, value string) {
	rec := &kgo.Record{Topic: topic, Key: []byte(key)}
	if value != "" {
		rec.Value = []byte(value)
	}
	s.Require().NoError(s.redpanda.Produce(context.Background(), rec))
}

func (s *KafkaStoreSuite) TestLatestValuePerKeyWins() {
	s.produce(s.counties, "34021", `{"GEOID":"34021","county":"Mercer"}`)
	s.produce(s.counties, "34001", `{"GEOID":"34001","county":"Atlantic County"}`)
	s.produce(s.counties, "34021", `{"GEOID":"34021","county":"Mercer County"}`)

	rows, err := s.store.LoadCounties(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("34001", rows[0].GEOID)
	s.Equal("Mercer County", rows[1].Name)
}

func (s *KafkaStoreSuite) TestTombstoneRemovesRow() {
	s.produce(s.counties, "34001", `{"GEOID":"34001","county":"Atlantic County"}`)
	s.produce(s.counties, "34003", `{"GEOID":"34003","county":"Bergen County"}`)
	s.produce(s.counties, "34001", "")

	rows, err := s.store.LoadCounties(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("34003", rows[0].GEOID)
}

func (s *KafkaStoreSuite) TestMunicipalitiesAcrossPartitions() {
	const n = 50
	for i := range n {
		geoid := fmt.Sprintf("34%08d", i)
		s.produce(s.municipalities, geoid+"-2000",
			fmt.Sprintf(`{"GEOID":%q,"GEOID_Y2K":%q,"county":"Camden County","municipality":"Town %d","first_year":2000,"final_year":2022}`, geoid, geoid, i))
	}

	rows, err := s.store.LoadMunicipalities(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, n)
	for i := 1; i < n; i++ {
		s.Less(rows[i-1].GEOID, rows[i].GEOID)
	}
}

func (s *KafkaStoreSuite) TestEmptyTopic() {
	rows, err := s.store.LoadCounties(context.Background())
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *KafkaStoreSuite) TestMissingTopic() {
	store := kafkastore.New(s.redpanda.Client, "no-such-topic-"+uuid.NewString()[:8], s.municipalities, 5*time.Second)
	_, err := store.LoadCounties(context.Background())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *KafkaStoreSuite) TestInvalidValue() {
	s.produce(s.counties, "34001", `{"GEOID":"34001"}`)

	_, err := s.store.LoadCounties(context.Background())
	s.ErrorIs(err, sentinel.ErrInvalidState)
}
