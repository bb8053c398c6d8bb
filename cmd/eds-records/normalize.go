// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/eds-records/internal/export"
	"github.com/pdiddy/eds-records/internal/httputil"
	"github.com/pdiddy/eds-records/internal/index"
	"github.com/pdiddy/eds-records/internal/jsonvalue"
	"github.com/pdiddy/eds-records/internal/record"
	"github.com/pdiddy/eds-records/internal/secrets"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]...",
	Short: "Normalize raw retrieve or search responses",
	Long: `Normalize reads raw discovery-service JSON (a retrieve response, a search
response, or an array of records) from files, stdin, or a URL, and writes
one flat attribute record per result. Files named *.yaml or *.yml hold the
same document in YAML.

Gzip and zstd compressed input is detected automatically. With --index the
records are also stored in the local SQLite index.`,
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	url, _ := cmd.Flags().GetString("url")
	if url != "" && len(args) > 0 {
		return fmt.Errorf("--url and file arguments are mutually exclusive")
	}

	ctx := cmd.Context()
	var recs []*record.Record
	if url != "" {
		cfg := fetchConfig()
		data, err := httputil.Fetch(ctx, httputil.NewClient(cfg.HTTPConfig), cfg, url, secrets.Headers(loadedSecrets))
		if err != nil {
			return err
		}
		recs, err = normalizeData(ctx, url, data)
		if err != nil {
			return err
		}
	} else {
		recs, err = normalizeInputs(ctx, args, cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	if toIndex, _ := cmd.Flags().GetBool("index"); toIndex {
		if err := putRecords(ctx, recs); err != nil {
			return err
		}
	}

	return export.Write(cmd.OutOrStdout(), format, recs)
}

// normalizeInputs reads and normalizes every named input in order. No
// names means stdin.
func normalizeInputs(ctx context.Context, names []string, stdin io.Reader) ([]*record.Record, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	var recs []*record.Record
	for _, name := range names {
		data, err := readInput(name, stdin)
		if err != nil {
			return nil, err
		}
		rs, err := normalizeData(ctx, name, data)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rs...)
	}
	return recs, nil
}

func normalizeData(ctx context.Context, source string, data []byte) ([]*record.Record, error) {
	var (
		recs []*record.Record
		err  error
	)
	if isYAML(source) {
		var doc jsonvalue.Value
		if doc, err = decodeYAML(data); err == nil {
			recs, err = record.NormalizeDocument(ctx, doc, normalizeConfig())
		}
	} else {
		recs, err = record.ParseAll(ctx, data, normalizeConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	logrus.WithFields(logrus.Fields{
		"source":  source,
		"records": len(recs),
	}).Debug("normalized")
	return recs, nil
}

func putRecords(ctx context.Context, recs []*record.Record) error {
	store, err := index.NewStore(indexConfig(), logrus.StandardLogger())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Put(ctx, recs)
	return err
}

func init() {
	normalizeCmd.Flags().String("format", string(export.FormatJSON),
		"output format: "+strings.Join(formatNames(), ", "))
	normalizeCmd.Flags().String("url", "", "fetch the raw response from this URL instead of reading files")
	normalizeCmd.Flags().Bool("index", false, "also store the records in the local index")

	rootCmd.AddCommand(normalizeCmd)
}

func formatNames() []string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return names
}
