// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// openInput opens a file ("-" for stdin) and transparently decompresses
// gzip or zstd content, detected by its magic bytes.
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer = io.NopCloser(nil)
	)
	if name == "-" {
		src = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		src, closer = f, f
	}

	br := bufio.NewReader(src)
	head, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", name, err)
		}
		return multiCloser{zr, zr, closer}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("opening zstd stream %s: %w", name, err)
		}
		return multiCloser{zr, closeFunc(func() error { zr.Close(); return nil }), closer}, nil
	default:
		return multiCloser{br, closer, nil}, nil
	}
}

// readInput reads a whole input, decompressing as needed.
func readInput(name string, stdin io.Reader) ([]byte, error) {
	rc, err := openInput(name, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// isYAML reports whether name, ignoring a compression suffix, is a YAML
// file.
func isYAML(name string) bool {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".zst")
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeYAML(data []byte) (jsonvalue.Value, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return jsonvalue.Value{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return jsonvalue.FromAny(doc), nil
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// multiCloser reads from r and closes the decoder before the underlying
// source.
type multiCloser struct {
	r       io.Reader
	decoder io.Closer
	source  io.Closer
}

func (m multiCloser) Read(p []byte) (int, error) { return m.r.Read(p) }

func (m multiCloser) Close() error {
	err := m.decoder.Close()
	if m.source != nil {
		if cerr := m.source.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
