// Package redis loads the reference tables from Redis hashes.
//
// Each row is a hash stored under "<table>:<id>", for example
// "municipalities:3400500100-2010" with fields GEOID, GEOID_Y2K, county,
// municipality, first_year and final_year. Rows come back in key order.
package redis

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
	"njgeo/pkg/platform/sentinel"
)

const (
	scanCount = 500
	batchSize = 500
)

// Store scans row hashes for the counties and municipalities tables.
type Store struct {
	client              *redis.Client
	countiesTable       string
	municipalitiesTable string
}

// New constructs a Store. Table names are used as key prefixes.
func New(client *redis.Client, countiesTable, municipalitiesTable string) *Store {
	return &Store{client: client, countiesTable: countiesTable, municipalitiesTable: municipalitiesTable}
}

// LoadCounties returns every county hash, ordered by key.
func (s *Store) LoadCounties(ctx context.Context) ([]countymodels.County, error) {
	hashes, err := s.loadTable(ctx, s.countiesTable)
	if err != nil {
		return nil, err
	}
	out := make([]countymodels.County, 0, len(hashes))
	for _, h := range hashes {
		r := row(h)
		c := countymodels.County{GEOID: r.str("GEOID"), Name: r.str("county")}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, c)
	}
	return out, nil
}

// LoadMunicipalities returns every municipality hash, ordered by key.
func (s *Store) LoadMunicipalities(ctx context.Context) ([]municipalitymodels.Municipality, error) {
	hashes, err := s.loadTable(ctx, s.municipalitiesTable)
	if err != nil {
		return nil, err
	}
	out := make([]municipalitymodels.Municipality, 0, len(hashes))
	for _, h := range hashes {
		r := row(h)
		m := municipalitymodels.Municipality{
			GEOID:     r.str("GEOID"),
			GEOIDY2K:  r.str("GEOID_Y2K"),
			County:    r.str("county"),
			Name:      r.str("municipality"),
			FirstYear: r.num("first_year"),
			FinalYear: r.num("final_year"),
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, m)
	}
	return out, nil
}

type hash struct {
	key    string
	fields map[string]string
}

func (s *Store) loadTable(ctx context.Context, table string) ([]hash, error) {
	keys, err := s.scanKeys(ctx, table+":*")
	if err != nil {
		return nil, err
	}

	out := make([]hash, 0, len(keys))
	for batch := range slices.Chunk(keys, batchSize) {
		cmds := make([]*redis.MapStringStringCmd, len(batch))
		_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
			for i, key := range batch {
				cmds[i] = p.HGetAll(ctx, key)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read %s rows: %w: %w", table, sentinel.ErrUnavailable, err)
		}
		for i, cmd := range cmds {
			out = append(out, hash{key: batch[i], fields: cmd.Val()})
		}
	}
	return out, nil
}

// scanKeys returns the keys matching pattern, sorted and without the
// duplicates SCAN may yield while the keyspace is rehashed.
func (s *Store) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w: %w", pattern, sentinel.ErrUnavailable, err)
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// rowReader collects the first field error so a row can be decoded in one expression.
type rowReader struct {
	hash
	err error
}

func row(h hash) *rowReader {
	return &rowReader{hash: h}
}

func (r *rowReader) str(field string) string {
	v, ok := r.fields[field]
	if !ok && r.err == nil {
		r.err = fmt.Errorf("key %s: missing field %s: %w", r.key, field, sentinel.ErrInvalidState)
	}
	return v
}

func (r *rowReader) num(field string) int {
	raw := r.str(field)
	if r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.err = fmt.Errorf("key %s: field %s: invalid integer %q: %w", r.key, field, raw, sentinel.ErrInvalidState)
	}
	return n
}
