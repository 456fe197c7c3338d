// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rna/internal/archive"
	"github.com/pdiddy/rna/internal/display"
	"github.com/pdiddy/rna/internal/export"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local archive of fetched associations",
	Long: `Archive keeps associations from past searches in a local SQLite
database. Pages enter the archive through "rna search --archive" or by
ingesting YAML query files saved with "rna search --save".`,
}

// --- ingest subcommand ---

var archiveIngestCmd = &cobra.Command{
	Use:   "ingest <file.yaml>...",
	Short: "Load saved query files into the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig())
		if err != nil {
			return err
		}
		defer store.Close()
		return runArchiveIngest(cmd.Context(), store, args, cmd.OutOrStdout())
	},
}

func runArchiveIngest(ctx context.Context, store *archive.Store, paths []string, w io.Writer) error {
	var total archive.IngestSummary
	for _, path := range paths {
		qf, err := export.ReadQueryFile(path)
		if err != nil {
			return err
		}
		summary, err := store.Ingest(ctx, *qf)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		fmt.Fprintf(w, "ingested %s (%d records)\n", path, summary.Total())
		total.Inserted += summary.Inserted
		total.Updated += summary.Updated
		total.Unchanged += summary.Unchanged
	}
	fmt.Fprintf(w, "\ninserted: %d, updated: %d, unchanged: %d\n",
		total.Inserted, total.Updated, total.Unchanged)
	return nil
}

// --- list subcommand ---

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived associations",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		f, err := display.ParseFormat(format)
		if err != nil {
			return err
		}
		departement, _ := cmd.Flags().GetString("departement")
		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := archive.NewStore(archiveConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		opts := archive.ListOptions{Departement: departement, Query: query, MaxResults: limit}
		return runArchiveList(cmd.Context(), store, opts, f, cmd.OutOrStdout())
	},
}

func runArchiveList(ctx context.Context, store *archive.Store, opts archive.ListOptions, f display.Format, w io.Writer) error {
	records, err := store.List(ctx, opts)
	if err != nil {
		return err
	}

	switch f {
	case display.FormatJSON:
		return display.WriteJSON(w, records)
	case display.FormatTable:
		return display.WriteTable(w, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No archived associations found.")
		return nil
	}
	display.WriteRecords(w, records)

	archived, searches, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d associations (archived: %d, searches: %d)\n", len(records), archived, searches)
	return nil
}

func init() {
	archiveListCmd.Flags().String("departement", "", "filter by département code (e.g. 75)")
	archiveListCmd.Flags().String("query", "", "filter by text in titre or objet")
	archiveListCmd.Flags().Int("limit", 0, "maximum results (0 = use archive.max_results)")
	archiveListCmd.Flags().String("format", "text", "output format: text, table, or json")

	archiveCmd.AddCommand(archiveIngestCmd)
	archiveCmd.AddCommand(archiveListCmd)

	rootCmd.AddCommand(archiveCmd)
}
