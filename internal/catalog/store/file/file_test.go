package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
)

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDoc(t, `
counties:
  - {GEOID: "34005", county: Burlington County}
  - {GEOID: "34001", county: Atlantic County}
municipalities:
  - {GEOID: "9001", GEOID_Y2K: "0001", county: Burlington County, municipality: b, first_year: 2010, final_year: 2021}
  - {GEOID: "0001", GEOID_Y2K: "0001", county: Burlington County, municipality: a, first_year: 2000, final_year: 2009}
`)
	store := New(path)
	ctx := context.Background()

	counties, err := store.LoadCounties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []countymodels.County{
		{GEOID: "34005", Name: "Burlington County"},
		{GEOID: "34001", Name: "Atlantic County"},
	}, counties)

	munis, err := store.LoadMunicipalities(ctx)
	require.NoError(t, err)
	require.Len(t, munis, 2)
	assert.Equal(t, municipalitymodels.Municipality{
		GEOID: "9001", GEOIDY2K: "0001", County: "Burlington County", Name: "b", FirstYear: 2010, FinalYear: 2021,
	}, munis[0])
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent.yaml")).LoadCounties(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown column", func(t *testing.T) {
		path := writeDoc(t, "counties:\n  - {GEOID: \"34001\", county: Atlantic County, state: NJ}\n")
		_, err := New(path).LoadCounties(ctx)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("non-numeric year", func(t *testing.T) {
		path := writeDoc(t, `municipalities:
  - {GEOID: "1", GEOID_Y2K: "1", county: c, municipality: m, first_year: soon, final_year: 2021}
`)
		_, err := New(path).LoadMunicipalities(ctx)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("missing year column", func(t *testing.T) {
		path := writeDoc(t, `municipalities:
  - {GEOID: "1", GEOID_Y2K: "1", county: c, municipality: m, first_year: 2000}
`)
		_, err := New(path).LoadMunicipalities(ctx)
		assert.ErrorContains(t, err, "municipalities[0]: missing column")
	})

	t.Run("empty document", func(t *testing.T) {
		counties, err := New(writeDoc(t, "")).LoadCounties(ctx)
		require.NoError(t, err)
		assert.Empty(t, counties)
	})
}
