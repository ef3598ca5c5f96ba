package paging

import (
	"net/url"
	"strconv"
	"strings"

	dErrors "njgeo/pkg/domain-errors"
)

// ParseParams reads page_size and page_number from a query string, applying
// defaults for absent or empty values. Anything but a positive run of digits
// is rejected as a bad request before any query runs.
func ParseParams(q url.Values) (Params, error) {
	p := Defaults()
	var err error
	if p.PageSize, err = positiveParam(q, "page_size", p.PageSize); err != nil {
		return Params{}, err
	}
	if p.PageNumber, err = positiveParam(q, "page_number", p.PageNumber); err != nil {
		return Params{}, err
	}
	return p, nil
}

// positiveParam accepts only ASCII digits, the same rule path years follow.
// Signs and surrounding spaces are rejected.
func positiveParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	invalid := dErrors.New(dErrors.CodeBadRequest, "Invalid "+name+" "+raw)
	if strings.IndexFunc(raw, func(c rune) bool { return c < '0' || c > '9' }) >= 0 {
		return 0, invalid
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid
	}
	return n, nil
}

// Values encodes p as a query string fragment.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("page_size", strconv.Itoa(p.PageSize))
	v.Set("page_number", strconv.Itoa(p.PageNumber))
	return v
}
