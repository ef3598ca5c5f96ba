package models

import (
	"strconv"

	dErrors "njgeo/pkg/domain-errors"
)

// ParseYear accepts only a non-empty run of ASCII digits. Signs, spaces and
// values that overflow int are rejected with "Invalid <label> <raw>".
func ParseYear(raw, label string) (int, error) {
	invalid := dErrors.New(dErrors.CodeBadRequest, "Invalid "+label+" "+raw)
	if raw == "" {
		return 0, invalid
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, invalid
		}
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid
	}
	return year, nil
}
