// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes normalized records in the formats consumed
// downstream: attribute JSON, JSON Lines, the Solr-shaped envelope, YAML,
// CSL-YAML for citation processors, and a plain-text table.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eds-records/internal/record"
)

// Format names an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatSolr  Format = "solr"
	FormatYAML  Format = "yaml"
	FormatCSL   Format = "csl"
	FormatTable Format = "table"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatJSONL, FormatSolr, FormatYAML, FormatCSL, FormatTable}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Write renders recs to w in format f.
func Write(w io.Writer, f Format, recs []*record.Record) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, recs)
	case FormatJSONL:
		return WriteJSONLines(w, recs)
	case FormatSolr:
		return WriteSolr(w, recs)
	case FormatYAML:
		return WriteYAML(w, recs)
	case FormatCSL:
		return WriteCSL(w, recs)
	case FormatTable:
		WriteTable(w, recs)
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

// AttrMaps projects every record into its attribute mapping.
func AttrMaps(recs []*record.Record) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(recs))
	for _, r := range recs {
		m, err := r.AttrMap()
		if err != nil {
			return nil, err
		}
		docs = append(docs, m)
	}
	return docs, nil
}

// WriteJSON writes the attribute mappings as one indented JSON array.
func WriteJSON(w io.Writer, recs []*record.Record) error {
	docs, err := AttrMaps(recs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// WriteJSONLines writes one compact attribute mapping per line.
func WriteJSONLines(w io.Writer, recs []*record.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		m, err := r.AttrMap()
		if err != nil {
			return err
		}
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding %s: %w", r.ID, err)
		}
	}
	return nil
}

// WriteSolr writes all records in a single response envelope.
func WriteSolr(w io.Writer, recs []*record.Record) error {
	docs, err := AttrMaps(recs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record.NewEnvelope(docs...))
}

// WriteYAML writes the attribute mappings as a YAML list.
func WriteYAML(w io.Writer, recs []*record.Record) error {
	docs, err := AttrMaps(recs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(docs)
}
