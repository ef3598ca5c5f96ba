package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	countymodels "njgeo/internal/county/models"
	"njgeo/internal/municipality/models"
	"njgeo/internal/paging"
)

// pageFlags are shared by the paginated query subcommands.
type pageFlags struct {
	size   int
	number int
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "page-size", paging.DefaultPageSize, "rows per page")
	cmd.Flags().IntVar(&f.number, "page-number", paging.DefaultPageNumber, "1-based page number")
}

// params validates the flags the same way the HTTP query string is validated.
func (f *pageFlags) params() (paging.Params, error) {
	return paging.ParseParams(url.Values{
		"page_size":   {strconv.Itoa(f.size)},
		"page_number": {strconv.Itoa(f.number)},
	})
}

func queryCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "query",
		Short: "Run one query and print the result envelope as JSON",
	}
	c.AddCommand(
		queryCountiesCmd(opts),
		queryCountyCmd(opts),
		queryMunicipalitiesCmd(opts),
		queryMunicipalityCmd(opts),
		queryXrefsCmd(opts),
	)
	return c
}

// runQuery builds the app, runs fn and writes its page to the command's stdout.
func runQuery[T any](cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) (paging.Page[T], error)) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	page, err := fn(ctx, a)
	if err != nil {
		return err
	}
	return writeEnvelope(cmd.OutOrStdout(), paging.NewEnvelope(page.Items, page.Meta, "", ""))
}

func writeEnvelope(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func queryCountiesCmd(opts *rootOptions) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "counties",
		Short: "List counties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.params()
			if err != nil {
				return err
			}
			return runQuery(cmd, opts, func(ctx context.Context, a *app) (paging.Page[countymodels.County], error) {
				return a.counties.List(ctx, p)
			})
		},
	}
	pf.bind(cmd)
	return cmd
}

func queryCountyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "county GEOID",
		Short: "Look up one county",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, func(ctx context.Context, a *app) (paging.Page[countymodels.County], error) {
				return a.counties.Get(ctx, args[0])
			})
		},
	}
}

// yearFlag resolves --year, falling back to the configured default year.
func yearFlag(cmd *cobra.Command, raw string, a *app) (int, error) {
	if !cmd.Flags().Changed("year") {
		return a.municipalities.DefaultYear(), nil
	}
	return models.ParseYear(raw, "year")
}

func queryMunicipalitiesCmd(opts *rootOptions) *cobra.Command {
	var (
		pf   pageFlags
		year string
	)
	cmd := &cobra.Command{
		Use:   "municipalities",
		Short: "List municipalities valid in a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.params()
			if err != nil {
				return err
			}
			return runQuery(cmd, opts, func(ctx context.Context, a *app) (paging.Page[models.Snapshot], error) {
				y, err := yearFlag(cmd, year, a)
				if err != nil {
					return paging.Page[models.Snapshot]{}, err
				}
				return a.municipalities.List(ctx, y, p)
			})
		},
	}
	pf.bind(cmd)
	cmd.Flags().StringVar(&year, "year", "", "query year (default NJGEO_DEFAULT_YEAR)")
	return cmd
}

func queryMunicipalityCmd(opts *rootOptions) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "municipality GEOID",
		Short: "Look up the municipality holding GEOID in a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, func(ctx context.Context, a *app) (paging.Page[models.Snapshot], error) {
				y, err := yearFlag(cmd, year, a)
				if err != nil {
					return paging.Page[models.Snapshot]{}, err
				}
				return a.municipalities.Get(ctx, args[0], y)
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "query year (default NJGEO_DEFAULT_YEAR)")
	return cmd
}

func queryXrefsCmd(opts *rootOptions) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "xrefs YEAR_REF YEAR",
		Short: "Map GEOIDs valid in YEAR to those of YEAR_REF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			yearRef, err := models.ParseYear(args[0], "reference year")
			if err != nil {
				return err
			}
			year, err := models.ParseYear(args[1], "year")
			if err != nil {
				return err
			}
			p, err := pf.params()
			if err != nil {
				return err
			}
			return runQuery(cmd, opts, func(ctx context.Context, a *app) (paging.Page[models.Xref], error) {
				return a.municipalities.Crosswalk(ctx, year, yearRef, p)
			})
		},
	}
	pf.bind(cmd)
	return cmd
}
