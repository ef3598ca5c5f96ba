package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	municipalitymodels "njgeo/internal/municipality/models"
	"njgeo/pkg/platform/sentinel"
)

func TestDecodeMunicipalities(t *testing.T) {
	recs := []record{{
		key:   "3402163850-2007",
		value: []byte(`{"GEOID":"3402163850","GEOID_Y2K":"3402177240","county":"Mercer County","municipality":"Robbinsville township","first_year":2007,"final_year":2022}`),
	}}

	rows, err := decodeMunicipalities("municipalities", recs)
	require.NoError(t, err)
	assert.Equal(t, []municipalitymodels.Municipality{{
		GEOID:     "3402163850",
		GEOIDY2K:  "3402177240",
		County:    "Mercer County",
		Name:      "Robbinsville township",
		FirstYear: 2007,
		FinalYear: 2022,
	}}, rows)
}

func TestDecodeRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "missing column", value: `{"GEOID":"34021"}`, want: "missing column"},
		{name: "unknown column", value: `{"GEOID":"34021","county":"Mercer County","state":"NJ"}`, want: "unknown field"},
		{name: "not json", value: `34021,Mercer County`, want: "key 34021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCounties("counties", []record{{key: "34021", value: []byte(tt.value)}})
			require.Error(t, err)
			assert.ErrorIs(t, err, sentinel.ErrInvalidState)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeMunicipalitiesRejectsStringYear(t *testing.T) {
	recs := []record{{
		key:   "x",
		value: []byte(`{"GEOID":"1","GEOID_Y2K":"1","county":"c","municipality":"m","first_year":"2000","final_year":2022}`),
	}}
	_, err := decodeMunicipalities("municipalities", recs)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}
