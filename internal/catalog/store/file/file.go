// Package file loads the reference tables from a YAML fixture document.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
)

// document is the on-disk layout. Pointer fields let a missing column be told
// apart from a zero value.
type document struct {
	Counties       []countyRow       `yaml:"counties"`
	Municipalities []municipalityRow `yaml:"municipalities"`
}

type countyRow struct {
	GEOID  *string `yaml:"GEOID"`
	County *string `yaml:"county"`
}

type municipalityRow struct {
	GEOID        *string `yaml:"GEOID"`
	GEOIDY2K     *string `yaml:"GEOID_Y2K"`
	County       *string `yaml:"county"`
	Municipality *string `yaml:"municipality"`
	FirstYear    *int    `yaml:"first_year"`
	FinalYear    *int    `yaml:"final_year"`
}

// Store reads one YAML file. Each load re-reads the file.
type Store struct {
	path string
}

// New creates a Store for the document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// LoadCounties returns the county rows in document order.
func (s *Store) LoadCounties(ctx context.Context) ([]countymodels.County, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]countymodels.County, 0, len(doc.Counties))
	for i, r := range doc.Counties {
		if r.GEOID == nil || r.County == nil {
			return nil, fmt.Errorf("%s: counties[%d]: missing GEOID or county", s.path, i)
		}
		out = append(out, countymodels.County{GEOID: *r.GEOID, Name: *r.County})
	}
	return out, nil
}

// LoadMunicipalities returns the municipality rows in document order.
func (s *Store) LoadMunicipalities(ctx context.Context) ([]municipalitymodels.Municipality, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]municipalitymodels.Municipality, 0, len(doc.Municipalities))
	for i, r := range doc.Municipalities {
		if r.GEOID == nil || r.GEOIDY2K == nil || r.County == nil || r.Municipality == nil ||
			r.FirstYear == nil || r.FinalYear == nil {
			return nil, fmt.Errorf("%s: municipalities[%d]: missing column", s.path, i)
		}
		out = append(out, municipalitymodels.Municipality{
			GEOID:     *r.GEOID,
			GEOIDY2K:  *r.GEOIDY2K,
			County:    *r.County,
			Name:      *r.Municipality,
			FirstYear: *r.FirstYear,
			FinalYear: *r.FinalYear,
		})
	}
	return out, nil
}

func (s *Store) read(ctx context.Context) (document, error) {
	if err := ctx.Err(); err != nil {
		return document{}, err
	}
	return decode(s.path)
}

func decode(path string) (document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("read %s: %w", path, err)
	}
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
