// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
	"github.com/pdiddy/eds-records/pkg/types"
)

// DefaultWorkers bounds concurrent construction in NewBatch.
const DefaultWorkers = 4

// ErrNoRecords is returned by ParseAll when a document carries no records.
var ErrNoRecords = errors.New("no records found")

// Records locates raw records in a decoded document. Accepted shapes:
// a retrieve response ({"Record": …}), a search response
// (SearchResult.Data.Records), a bare array of records, or a single
// in-list record (anything carrying a Header).
func Records(v jsonvalue.Value) []jsonvalue.Value {
	switch {
	case v.Kind() == jsonvalue.Array:
		return v.Elems()
	case v.Has("Record"), v.Has("Header"):
		return []jsonvalue.Value{v}
	case v.Has("SearchResult"):
		return v.Path("SearchResult", "Data", "Records").Elems()
	}
	return nil
}

// NewBatch normalizes raws concurrently with at most workers goroutines
// (DefaultWorkers when workers <= 0). Output order follows input order.
// Records share no state, so the only failure is ctx being done.
func NewBatch(ctx context.Context, raws []jsonvalue.Value, workers int, opts ...Option) ([]*Record, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	out := make([]*Record, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range raws {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = New(raw, opts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// OptionsFrom converts normalization settings to record options.
func OptionsFrom(cfg types.NormalizeConfig) []Option {
	var opts []Option
	if cfg.RestrictedTitle != "" {
		opts = append(opts, WithRestrictedTitle(cfg.RestrictedTitle))
	}
	return opts
}

// ParseAll decodes a raw document of any shape Records accepts and
// normalizes every record it carries.
func ParseAll(ctx context.Context, data []byte, cfg types.NormalizeConfig) ([]*Record, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	return NormalizeDocument(ctx, v, cfg)
}

// NormalizeDocument normalizes every record carried by an already decoded
// document.
func NormalizeDocument(ctx context.Context, v jsonvalue.Value, cfg types.NormalizeConfig) ([]*Record, error) {
	raws := Records(v)
	if len(raws) == 0 {
		return nil, ErrNoRecords
	}
	return NewBatch(ctx, raws, cfg.Workers, OptionsFrom(cfg)...)
}
