package models

import (
	"fmt"

	dErrors "njgeo/pkg/domain-errors"
)

// Municipality is one snapshot row: a municipality's identity over the closed
// year interval [FirstYear, FinalYear]. GEOIDY2K stays constant across a
// municipality's history while GEOID may change at merges and splits.
type Municipality struct {
	GEOID     string `json:"GEOID" yaml:"GEOID"`
	GEOIDY2K  string `json:"GEOID_Y2K" yaml:"GEOID_Y2K"`
	County    string `json:"county" yaml:"county"`
	Name      string `json:"municipality" yaml:"municipality"`
	FirstYear int    `json:"first_year" yaml:"first_year"`
	FinalYear int    `json:"final_year" yaml:"final_year"`
}

// ValidIn reports whether year falls inside the row's interval, both ends inclusive.
func (m Municipality) ValidIn(year int) bool {
	return m.FirstYear <= year && year <= m.FinalYear
}

// At projects the row as seen from year.
func (m Municipality) At(year int) Snapshot {
	return Snapshot{Year: year, GEOID: m.GEOID, County: m.County, Name: m.Name}
}

// Validate checks the keys and interval of a loaded row.
func (m Municipality) Validate() error {
	switch {
	case m.GEOID == "":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("municipality %q has empty GEOID", m.Name))
	case m.GEOIDY2K == "":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("municipality GEOID %s has empty GEOID_Y2K", m.GEOID))
	case m.FirstYear > m.FinalYear:
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("municipality GEOID %s has first_year %d after final_year %d", m.GEOID, m.FirstYear, m.FinalYear))
	}
	return nil
}

// Snapshot is a municipality row stamped with the year it was resolved for.
type Snapshot struct {
	Year   int    `json:"year"`
	GEOID  string `json:"GEOID"`
	County string `json:"county"`
	Name   string `json:"municipality"`
}

// Xref translates one current-year GEOID to the GEOID its municipality had in
// the reference year. GEOIDRef is nil when the municipality has no row then.
type Xref struct {
	YearRef  int     `json:"year_ref"`
	Year     int     `json:"year"`
	GEOIDRef *string `json:"GEOID_ref"`
	GEOID    string  `json:"GEOID"`
}
