// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/eds-records/internal/export"
	"github.com/pdiddy/eds-records/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the local record index (put, get, search, delete, export)",
	Long: `Index manages a local SQLite database of normalized records keyed by
their identity key (<dbid>__<an>). Use subcommands to store, look up,
search, remove, or dump records.`,
}

// --- put subcommand ---

var indexPutCmd = &cobra.Command{
	Use:   "put [file|-]...",
	Short: "Normalize raw responses and store the records",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := normalizeInputs(cmd.Context(), args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Put(cmd.Context(), recs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d inserted, %d updated\n", summary.Inserted, summary.Updated)
		return nil
	},
}

// --- get subcommand ---

var indexGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print the stored attribute mapping of a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		attrs, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), attrs)
	},
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored records by title, database, or year",
	RunE:  runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	dbid, _ := cmd.Flags().GetString("dbid")
	year, _ := cmd.Flags().GetString("year")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{
		Query:      strings.Join(args, " "),
		DatabaseID: dbid,
		Year:       year,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --dbid, or --year")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if hits == nil {
			hits = []index.Hit{}
		}
		return writeJSON(cmd.OutOrStdout(), hits)
	}
	formatHits(cmd.OutOrStdout(), hits)
	return nil
}

func formatHits(w io.Writer, hits []index.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-50s  %-4s  %s\n", "Rank", "ID", "Title", "Year", "Type")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, h := range hits {
		fmt.Fprintf(w, "%-4d  %-30s  %-50s  %-4s  %s\n",
			i+1, h.ID, clip(export.PlainText(h.Title), 50), h.Year, h.PublicationType)
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- delete subcommand ---

var indexDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Remove records from the index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			logrus.WithField("id", id).Info("deleted record")
		}
		return nil
	},
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored record as JSON Lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Dump(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		logrus.WithField("records", n).Info("exported index")
		return nil
	},
}

// --- shared helpers ---

func openStore() (*index.Store, error) {
	return index.NewStore(indexConfig(), logrus.StandardLogger())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	indexSearchCmd.Flags().String("dbid", "", "filter by database ID")
	indexSearchCmd.Flags().String("year", "", "filter by publication year")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	indexCmd.AddCommand(indexPutCmd)
	indexCmd.AddCommand(indexGetCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
