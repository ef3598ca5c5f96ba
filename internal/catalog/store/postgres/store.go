// Package postgres loads the reference tables from PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
	"njgeo/pkg/platform/sentinel"
)

// undefinedTable is the SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// Store reads whole tables with a single SELECT each.
type Store struct {
	db                  *sql.DB
	countiesTable       string
	municipalitiesTable string
}

// New constructs a Store. Table names may be schema-qualified ("geo.counties")
// and are quoted before use.
func New(db *sql.DB, countiesTable, municipalitiesTable string) *Store {
	return &Store{
		db:                  db,
		countiesTable:       quoteTable(countiesTable),
		municipalitiesTable: quoteTable(municipalitiesTable),
	}
}

// LoadCounties returns every county row ordered by GEOID.
func (s *Store) LoadCounties(ctx context.Context) ([]countymodels.County, error) {
	query := `SELECT "GEOID", county FROM ` + s.countiesTable + ` ORDER BY "GEOID"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, queryError("load counties", err)
	}
	defer rows.Close()

	var out []countymodels.County
	for rows.Next() {
		var c countymodels.County
		if err := rows.Scan(&c.GEOID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan county row %d: %w", len(out), err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counties: %w", err)
	}
	return out, nil
}

// LoadMunicipalities returns every municipality row ordered by GEOID_Y2K and first_year.
func (s *Store) LoadMunicipalities(ctx context.Context) ([]municipalitymodels.Municipality, error) {
	query := `
		SELECT "GEOID", "GEOID_Y2K", county, municipality, first_year, final_year
		FROM ` + s.municipalitiesTable + `
		ORDER BY "GEOID_Y2K", first_year
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, queryError("load municipalities", err)
	}
	defer rows.Close()

	var out []municipalitymodels.Municipality
	for rows.Next() {
		var m municipalitymodels.Municipality
		if err := rows.Scan(&m.GEOID, &m.GEOIDY2K, &m.County, &m.Name, &m.FirstYear, &m.FinalYear); err != nil {
			return nil, fmt.Errorf("scan municipality row %d: %w", len(out), err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate municipalities: %w", err)
	}
	return out, nil
}

func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func queryError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Message, sentinel.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
