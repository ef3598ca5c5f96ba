// Package kafka loads the reference tables from compacted Kafka topics.
//
// Each table is a topic named after it. Records are keyed by row ID with a JSON
// value carrying the same columns as the other stores, for example
//
//	key   3402163850-2007
//	value {"GEOID":"3402163850","GEOID_Y2K":"3402177240","county":"Mercer County",
//	       "municipality":"Robbinsville township","first_year":2007,"final_year":2022}
//
// A load reads every partition from its start offset up to the end offset seen
// when the load began. The latest value per key wins and a nil value deletes
// the key. Rows come back in key order.
package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
	platformkafka "njgeo/internal/platform/kafka"
	"njgeo/pkg/platform/sentinel"
)

// Store snapshots the counties and municipalities topics.
type Store struct {
	client              *platformkafka.Client
	admin               *kadm.Client
	countiesTopic       string
	municipalitiesTopic string
	loadTimeout         time.Duration
}

// New constructs a Store. A zero loadTimeout leaves the caller's deadline in charge.
func New(client *platformkafka.Client, countiesTopic, municipalitiesTopic string, loadTimeout time.Duration) *Store {
	return &Store{
		client:              client,
		admin:               kadm.NewClient(client.Client),
		countiesTopic:       countiesTopic,
		municipalitiesTopic: municipalitiesTopic,
		loadTimeout:         loadTimeout,
	}
}

// LoadCounties returns the live county records, ordered by key.
func (s *Store) LoadCounties(ctx context.Context) ([]countymodels.County, error) {
	recs, err := s.snapshot(ctx, s.countiesTopic)
	if err != nil {
		return nil, err
	}
	return decodeCounties(s.countiesTopic, recs)
}

// LoadMunicipalities returns the live municipality records, ordered by key.
func (s *Store) LoadMunicipalities(ctx context.Context) ([]municipalitymodels.Municipality, error) {
	recs, err := s.snapshot(ctx, s.municipalitiesTopic)
	if err != nil {
		return nil, err
	}
	return decodeMunicipalities(s.municipalitiesTopic, recs)
}

type record struct {
	key   string
	value []byte
}

func (s *Store) snapshot(ctx context.Context, topic string) ([]record, error) {
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	starts, err := s.offsets(ctx, topic, s.admin.ListStartOffsets)
	if err != nil {
		return nil, err
	}
	ends, err := s.offsets(ctx, topic, s.admin.ListEndOffsets)
	if err != nil {
		return nil, err
	}

	// pending holds the end offset of every partition that still has records to read.
	pending := make(map[int32]int64)
	assign := make(map[int32]kgo.Offset)
	for p, start := range starts {
		if end := ends[p]; end > start {
			pending[p] = end
			assign[p] = kgo.NewOffset().At(start)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	consumer, err := s.client.Consumer(kgo.ConsumePartitions(map[string]map[int32]kgo.Offset{topic: assign}))
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", topic, err)
	}
	defer consumer.Close()

	latest := make(map[string][]byte)
	for len(pending) > 0 {
		fetches := consumer.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %d partitions unfinished: %w: %w", topic, len(pending), sentinel.ErrUnavailable, err)
		}
		var fetchErr error
		fetches.EachError(func(t string, p int32, err error) {
			fetchErr = errors.Join(fetchErr, fmt.Errorf("fetch %s[%d]: %w", t, p, err))
		})
		if fetchErr != nil {
			return nil, fmt.Errorf("read %s: %w: %w", topic, sentinel.ErrUnavailable, fetchErr)
		}

		var keyErr error
		fetches.EachRecord(func(r *kgo.Record) {
			end, ok := pending[r.Partition]
			if !ok || r.Offset >= end {
				return
			}
			switch {
			case r.Key == nil:
				keyErr = fmt.Errorf("topic %s partition %d offset %d: record has no key: %w", topic, r.Partition, r.Offset, sentinel.ErrInvalidState)
			case r.Value == nil:
				delete(latest, string(r.Key))
			default:
				latest[string(r.Key)] = r.Value
			}
			if r.Offset >= end-1 {
				delete(pending, r.Partition)
			}
		})
		if keyErr != nil {
			return nil, keyErr
		}
	}

	out := make([]record, 0, len(latest))
	for _, k := range slices.Sorted(maps.Keys(latest)) {
		out = append(out, record{key: k, value: latest[k]})
	}
	return out, nil
}

// offsets flattens one topic's listed offsets to partition -> offset.
func (s *Store) offsets(ctx context.Context, topic string, list func(context.Context, ...string) (kadm.ListedOffsets, error)) (map[int32]int64, error) {
	listed, err := list(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("list %s offsets: %w: %w", topic, sentinel.ErrUnavailable, err)
	}
	partitions := listed[topic]
	if len(partitions) == 0 {
		return nil, fmt.Errorf("topic %s: %w", topic, sentinel.ErrNotFound)
	}
	out := make(map[int32]int64, len(partitions))
	for p, o := range partitions {
		if o.Err != nil {
			if errors.Is(o.Err, kerr.UnknownTopicOrPartition) {
				return nil, fmt.Errorf("topic %s: %w", topic, sentinel.ErrNotFound)
			}
			return nil, fmt.Errorf("list %s[%d] offsets: %w: %w", topic, p, sentinel.ErrUnavailable, o.Err)
		}
		out[p] = o.Offset
	}
	return out, nil
}

// Pointer fields let a missing column be told apart from a zero value.
type countyValue struct {
	GEOID  *string `json:"GEOID"`
	County *string `json:"county"`
}

type municipalityValue struct {
	GEOID        *string `json:"GEOID"`
	GEOIDY2K     *string `json:"GEOID_Y2K"`
	County       *string `json:"county"`
	Municipality *string `json:"municipality"`
	FirstYear    *int    `json:"first_year"`
	FinalYear    *int    `json:"final_year"`
}

func decodeCounties(topic string, recs []record) ([]countymodels.County, error) {
	out := make([]countymodels.County, 0, len(recs))
	for _, rec := range recs {
		var v countyValue
		if err := decode(topic, rec, &v); err != nil {
			return nil, err
		}
		if v.GEOID == nil || v.County == nil {
			return nil, missing(topic, rec)
		}
		out = append(out, countymodels.County{GEOID: *v.GEOID, Name: *v.County})
	}
	return out, nil
}

func decodeMunicipalities(topic string, recs []record) ([]municipalitymodels.Municipality, error) {
	out := make([]municipalitymodels.Municipality, 0, len(recs))
	for _, rec := range recs {
		var v municipalityValue
		if err := decode(topic, rec, &v); err != nil {
			return nil, err
		}
		if v.GEOID == nil || v.GEOIDY2K == nil || v.County == nil || v.Municipality == nil ||
			v.FirstYear == nil || v.FinalYear == nil {
			return nil, missing(topic, rec)
		}
		out = append(out, municipalitymodels.Municipality{
			GEOID:     *v.GEOID,
			GEOIDY2K:  *v.GEOIDY2K,
			County:    *v.County,
			Name:      *v.Municipality,
			FirstYear: *v.FirstYear,
			FinalYear: *v.FinalYear,
		})
	}
	return out, nil
}

func decode(topic string, rec record, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(rec.value))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("topic %s key %s: %w: %w", topic, rec.key, sentinel.ErrInvalidState, err)
	}
	return nil
}

func missing(topic string, rec record) error {
	return fmt.Errorf("topic %s key %s: missing column: %w", topic, rec.key, sentinel.ErrInvalidState)
}
