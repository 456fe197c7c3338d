// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rna/internal/archive"
	"github.com/pdiddy/rna/internal/display"
	"github.com/pdiddy/rna/internal/export"
	"github.com/pdiddy/rna/internal/rna"
	"github.com/pdiddy/rna/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [per_page] [num]",
	Short: "Search the RNA for associations matching a query",
	Long: `Search runs one full-text query against the RNA API and prints the
requested page of results. per_page defaults to 20 (the API allows at most
100) and num, the page number, defaults to 1. The API does not move to the
next page on its own: pass the page number explicitly.

Quote multi-word queries, for example: rna search 'football association' 50 2`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := searchOptionsFromFlags(cmd, args)
		if err != nil {
			return err
		}
		client := rna.NewClient(clientConfig(), logger)
		return runSearch(cmd.Context(), client, opts, cmd.OutOrStdout())
	},
}

func init() {
	searchCmd.Flags().StringP("output", "o", "", "CSV file in which to write the results")
	searchCmd.Flags().String("format", "text", "console output format: text, table, or json")
	searchCmd.Flags().String("save", "", "save the page to a YAML query file")
	searchCmd.Flags().Bool("archive", false, "record the page in the local archive")

	rootCmd.AddCommand(searchCmd)
}

// searcher fetches one page of results.
type searcher interface {
	Search(ctx context.Context, query string, page, perPage int) (types.ParsedPage, error)
}

// searchOptions holds everything a search invocation needs.
type searchOptions struct {
	Query       string
	PerPage     int
	Page        int
	Output      string
	Format      display.Format
	SavePath    string
	Archive     bool
	ArchiveConf types.ArchiveConfig
}

func searchOptionsFromFlags(cmd *cobra.Command, args []string) (searchOptions, error) {
	opts, err := parseSearchArgs(args)
	if err != nil {
		return opts, err
	}

	format, _ := cmd.Flags().GetString("format")
	if opts.Format, err = display.ParseFormat(format); err != nil {
		return opts, err
	}
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.SavePath, _ = cmd.Flags().GetString("save")
	opts.Archive, _ = cmd.Flags().GetBool("archive")
	if opts.Archive {
		opts.ArchiveConf = archiveConfig()
	}
	return opts, nil
}

// parseSearchArgs reads the positional query, per_page and num arguments.
func parseSearchArgs(args []string) (searchOptions, error) {
	opts := searchOptions{
		PerPage: rna.DefaultPerPage,
		Page:    rna.DefaultPage,
		Format:  display.FormatText,
	}
	if len(args) == 0 {
		return opts, fmt.Errorf("a search query is required")
	}
	opts.Query = args[0]

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return opts, fmt.Errorf("invalid per_page %q: must be an integer", args[1])
		}
		opts.PerPage = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return opts, fmt.Errorf("invalid page number %q: must be an integer", args[2])
		}
		opts.Page = n
	}
	return opts, nil
}

// runSearch performs one search and writes every requested output. Any
// failure aborts the run; nothing is retried.
func runSearch(ctx context.Context, s searcher, opts searchOptions, w io.Writer) error {
	parsed, err := s.Search(ctx, opts.Query, opts.Page, opts.PerPage)
	if err != nil {
		return err
	}
	fetched := time.Now()

	header := display.Header{
		TotalResults: parsed.TotalResults,
		PerPage:      opts.PerPage,
		TotalPages:   parsed.TotalPages,
		Page:         opts.Page,
	}
	switch opts.Format {
	case display.FormatJSON:
		if err := display.WriteJSON(w, parsed); err != nil {
			return err
		}
	case display.FormatTable:
		display.WriteHeader(w, header)
		if err := display.WriteTable(w, parsed.Records); err != nil {
			return err
		}
	default:
		display.WriteHeader(w, header)
		display.WriteRecords(w, parsed.Records)
	}

	if opts.Output != "" {
		if err := export.WriteCSVFile(opts.Output, parsed.Records); err != nil {
			return err
		}
		logger.Info("wrote CSV", "path", opts.Output, "rows", len(parsed.Records))
	}

	if opts.SavePath == "" && !opts.Archive {
		return nil
	}
	qf := export.NewQueryFile(opts.Query, opts.Page, opts.PerPage, parsed, fetched)

	if opts.SavePath != "" {
		if err := export.WriteQueryFile(opts.SavePath, qf); err != nil {
			return err
		}
		logger.Info("saved query file", "path", opts.SavePath)
	}

	if opts.Archive {
		store, err := archive.NewStore(opts.ArchiveConf)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Ingest(ctx, qf)
		if err != nil {
			return err
		}
		logger.Info("archived page",
			"inserted", summary.Inserted,
			"updated", summary.Updated,
			"unchanged", summary.Unchanged)
	}
	return nil
}
