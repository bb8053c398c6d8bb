// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eds-records/internal/index"
)

const rawSearch = `{"SearchResult":{"Data":{"Records":[
	{"Header":{"DbId":"cat01","An":"b.1001"},"Items":[{"Name":"Title","Data":"A Catalog Book"},{"Name":"DatePub","Data":"2004"}]},
	{"Header":{"DbId":"edsarx","An":"2101.00001"},"Items":[{"Name":"Title","Data":"Preprint Title"}]}
]}}}`

// --- test helpers ---

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain", []byte(rawSearch)},
		{"gzip", gzipped(t, rawSearch)},
		{"zstd", zstded(t, rawSearch)},
	}
	for _, tt := range tests {
		t.Run(tt.name+" file", func(t *testing.T) {
			got, err := readInput(writeTemp(t, "raw.json", tt.data), nil)
			require.NoError(t, err)
			assert.Equal(t, rawSearch, string(got))
		})
		t.Run(tt.name+" stdin", func(t *testing.T) {
			got, err := readInput("-", bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, rawSearch, string(got))
		})
	}
}

func TestReadInput_Errors(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	truncated := gzipped(t, rawSearch)[:12]
	_, err = readInput("-", bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestReadInput_Empty(t *testing.T) {
	got, err := readInput("-", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeInputs(t *testing.T) {
	a := writeTemp(t, "a.json", []byte(rawSearch))
	b := writeTemp(t, "b.json.gz", gzipped(t, `{"Record":{"Header":{"DbId":"db","An":"9"}}}`))

	recs, err := normalizeInputs(context.Background(), []string{a, b}, nil)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "cat01__b_1001", recs[0].ID)
	assert.Equal(t, "edsarx__2101_00001", recs[1].ID)
	assert.Equal(t, "db__9", recs[2].ID)

	_, err = normalizeInputs(context.Background(), []string{writeTemp(t, "x.json", []byte(`{}`))}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.json")
}

const yamlSearch = `SearchResult:
  Data:
    Records:
      - Header: {DbId: cat01, An: 1001}
        Items:
          - {Name: Title, Data: A YAML Book}
          - {Name: DatePub, Data: "2004"}
`

func TestNormalizeInputs_YAML(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"yaml", "raw.yaml", []byte(yamlSearch)},
		{"yml gzip", "raw.yml.gz", gzipped(t, yamlSearch)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := normalizeInputs(context.Background(), []string{writeTemp(t, tt.file, tt.data)}, nil)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "cat01__1001", recs[0].ID)
			assert.Equal(t, "A YAML Book", recs[0].Title)
			assert.Equal(t, "2004", recs[0].PublicationYear)
		})
	}

	_, err := normalizeInputs(context.Background(), []string{writeTemp(t, "bad.yaml", []byte("a: [unclosed"))}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestIsYAML(t *testing.T) {
	assert.True(t, isYAML("a.yaml"))
	assert.True(t, isYAML("a.YML"))
	assert.True(t, isYAML("a.yaml.zst"))
	assert.False(t, isYAML("a.json"))
	assert.False(t, isYAML("-"))
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, rawSearch, "normalize", "--format", "jsonl")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
	assert.Equal(t, "cat01__b_1001", doc["id"])
	assert.Equal(t, "A Catalog Book", doc["eds_title"])
}

func TestIndexCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "idx.db")
	raw := writeTemp(t, "raw.json", []byte(rawSearch))

	out, err := execute(t, "", "index", "put", "--index-path", dbPath, raw)
	require.NoError(t, err)
	assert.Equal(t, "2 inserted, 0 updated\n", out)

	out, err = execute(t, "", "index", "get", "--index-path", dbPath, "cat01__b_1001")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "A Catalog Book", doc["eds_title"])

	out, err = execute(t, "", "index", "search", "--index-path", dbPath, "--json", "title")
	require.NoError(t, err)
	var hits []index.Hit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "edsarx__2101_00001", hits[0].ID)

	_, err = execute(t, "", "index", "delete", "--index-path", dbPath, "cat01__b_1001")
	require.NoError(t, err)
	_, err = execute(t, "", "index", "get", "--index-path", dbPath, "cat01__b_1001")
	assert.ErrorIs(t, err, index.ErrNotFound)
}

func TestFormatHits(t *testing.T) {
	var buf bytes.Buffer
	formatHits(&buf, nil)
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	formatHits(&buf, []index.Hit{{ID: "db__1", Title: "A <i>Title</i>", Year: "2001", PublicationType: "Book"}})
	assert.Contains(t, buf.String(), "db__1")
	assert.Contains(t, buf.String(), "A Title")
	assert.Contains(t, buf.String(), "1 results")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "eds-records dev\n", out)
}
