package models

import (
	"fmt"

	dErrors "njgeo/pkg/domain-errors"
)

// County is one row of the county table. Counties have no time dimension.
type County struct {
	GEOID string `json:"GEOID" yaml:"GEOID"`
	Name  string `json:"county" yaml:"county"`
}

// Validate rejects rows that cannot be keyed.
func (c County) Validate() error {
	if c.GEOID == "" {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("county %q has empty GEOID", c.Name))
	}
	return nil
}
