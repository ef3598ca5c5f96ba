package service

import "njgeo/internal/municipality/models"

// Resolve returns the rows valid in year, in input order. The result is a new
// slice; rows is never modified. No match yields an empty result, not an error.
func Resolve(rows []models.Municipality, year int) []models.Municipality {
	var out []models.Municipality
	for _, m := range rows {
		if m.ValidIn(year) {
			out = append(out, m)
		}
	}
	return out
}
