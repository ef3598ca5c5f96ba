package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useSampleData points the file source at the repository fixture and keeps
// any developer .env out of the test.
func useSampleData(t *testing.T) []string {
	t.Helper()
	t.Setenv("DATA_SOURCE", "file")
	t.Setenv("DATA_FILE", filepath.Join("..", "..", "data", "nj_sample.yaml"))
	t.Setenv("NJGEO_DEFAULT_YEAR", "2022")
	t.Setenv("LOG_LEVEL", "error")
	return []string{"--env-file", filepath.Join(t.TempDir(), "none.env")}
}

func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body), out.String())
	return body, nil
}

func TestQueryCounty(t *testing.T) {
	flags := useSampleData(t)

	body, err := run(t, append([]string{"query", "county", "34005"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"GEOID": "34005", "county": "Burlington County"}}, body["data"])
	assert.Equal(t, map[string]any{"GEOID": "34005"}, body["meta"])
	assert.NotContains(t, body, "links")
}

func TestQueryMunicipalities(t *testing.T) {
	flags := useSampleData(t)

	body, err := run(t, append([]string{"query", "municipalities", "--year", "2006", "--page-size", "2"}, flags...)...)
	require.NoError(t, err)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 2006, meta["year"])
	assert.EqualValues(t, 14, meta["record_count"])
	assert.EqualValues(t, 7, meta["page_count"])
	assert.Len(t, body["data"], 2)
}

func TestQueryMunicipalityDefaultYear(t *testing.T) {
	flags := useSampleData(t)

	body, err := run(t, append([]string{"query", "municipality", "3402163850"}, flags...)...)
	require.NoError(t, err)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	row := data[0].(map[string]any)
	assert.Equal(t, "Robbinsville township", row["municipality"])
	assert.EqualValues(t, 2022, row["year"])
}

func TestQueryXrefs(t *testing.T) {
	flags := useSampleData(t)

	body, err := run(t, append([]string{"query", "xrefs", "2000", "2022"}, flags...)...)
	require.NoError(t, err)
	found := false
	for _, item := range body["data"].([]any) {
		row := item.(map[string]any)
		if row["GEOID"] == "3402163850" {
			found = true
			assert.Equal(t, "3402177240", row["GEOID_ref"])
			assert.EqualValues(t, 2000, row["year_ref"])
		}
	}
	assert.True(t, found)
}

func TestQueryErrors(t *testing.T) {
	flags := useSampleData(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"year without rows", []string{"query", "municipalities", "--year", "1999"}, "Year 1999 not found"},
		{"non-numeric year", []string{"query", "municipality", "3402163850", "--year", "soon"}, "Invalid year soon"},
		{"bad reference year", []string{"query", "xrefs", "20x0", "2022"}, "Invalid reference year 20x0"},
		{"zero page size", []string{"query", "counties", "--page-size", "0"}, "Invalid page_size 0"},
		{"page past the end", []string{"query", "counties", "--page-size", "10", "--page-number", "4"}, "Page number 4 not found"},
		{"unknown county", []string{"query", "county", "34999"}, "County GEOID 34999 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append(tt.args, flags...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	flags := useSampleData(t)
	t.Setenv("DATA_SOURCE", "sqlite")

	_, err := run(t, append([]string{"query", "counties"}, flags...)...)
	assert.ErrorContains(t, err, "unknown DATA_SOURCE")
}

func TestServeStopsWhenContextEnds(t *testing.T) {
	useSampleData(t)
	t.Setenv("NJGEO_ADDR", "127.0.0.1:0")
	t.Setenv("NJGEO_WARM_ON_START", "false")

	opts := &rootOptions{envFile: filepath.Join(t.TempDir(), "none.env")}
	a, err := newApp(context.Background(), opts, &bytes.Buffer{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, a.serve(ctx))
}

func TestServeWarmFailure(t *testing.T) {
	useSampleData(t)
	t.Setenv("DATA_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	opts := &rootOptions{envFile: filepath.Join(t.TempDir(), "none.env")}
	a, err := newApp(context.Background(), opts, &bytes.Buffer{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	assert.ErrorContains(t, a.serve(context.Background()), "warm catalog")
}
