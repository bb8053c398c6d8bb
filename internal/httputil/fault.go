// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/eds-records/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "eds-records/dev"

	// maxFaultBody caps how much of an error response is kept.
	maxFaultBody = 64 << 10
)

// Fault is a non-200 response from the discovery service. Every status is
// reported the same way; callers that care inspect Status.
type Fault struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
	Status int    `json:"status" yaml:"status"`
	Body   string `json:"error_body" yaml:"error_body"`
}

func (f *Fault) Error() string {
	if f.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", f.Method, f.URL, f.Status)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", f.Method, f.URL, f.Status, f.Body)
}

// CheckResponse returns a *Fault for any status other than 200. The body is
// read (up to a limit) into the fault and closed; on 200 the body is left
// for the caller.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFaultBody))

	f := &Fault{Status: resp.StatusCode, Body: string(body)}
	if resp.Request != nil {
		f.Method = resp.Request.Method
		f.URL = resp.Request.URL.Redacted()
	}
	return f
}

// NewClient returns an HTTP client with the configured timeout.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Fetch GETs url with the given extra headers and returns the body of a 200
// response. 429 responses are retried as DoWithRetry describes; any non-200
// status that remains yields a *Fault.
func Fetch(ctx context.Context, client *http.Client, cfg types.FetchConfig, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := DoWithRetry(ctx, client, req, cfg.MaxRetries)
	var f *Fault
	if errors.As(err, &f) {
		return nil, f
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL.Redacted(), err)
	}
	if err := CheckResponse(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}
