// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing for fetching raw discovery
// results: rate-limit retries and the upstream fault type.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMaxRetries = 5

var (
	// RetryBaseDelay is the first wait after a 429 that carries no usable
	// Retry-After header. Later waits double it.
	RetryBaseDelay = 10 * time.Second

	// MaxRetryWait caps every wait, requested by the server or computed.
	MaxRetryWait = 5 * time.Minute

	// sleep blocks for d or until ctx is done. Tests replace it.
	sleep = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}

	now = time.Now
)

// DoWithRetry sends req and resends it while the service answers 429 Too
// Many Requests, up to maxRetries times (defaultMaxRetries when <= 0).
//
// Each wait follows the response's Retry-After header when it holds
// delay-seconds or an HTTP date; otherwise it is RetryBaseDelay doubled per
// attempt. Waits never exceed MaxRetryWait. A 429 left over once retries
// are spent comes back as a *Fault carrying its body, with no response.
// Any other status is returned unchecked for the caller.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		log := logrus.WithFields(logrus.Fields{
			"url":     req.URL.Redacted(),
			"attempt": attempt + 1,
			"max":     maxRetries,
		})
		if attempt >= maxRetries {
			log.Warn("rate limited, giving up")
			return nil, CheckResponse(resp)
		}

		wait, requested := retryAfter(resp.Header.Get("Retry-After"))
		if !requested {
			wait = backoff(attempt)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.WithFields(logrus.Fields{
			"wait":        wait,
			"retry_after": requested,
		}).Warn("rate limited, retrying")

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// retryAfter parses a Retry-After value. It reports false when the header
// is absent or malformed. Dates in the past mean no wait.
func retryAfter(h string) (time.Duration, bool) {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0, false
	}
	var d time.Duration
	if secs, err := strconv.ParseInt(h, 10, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		if secs > int64(MaxRetryWait/time.Second) {
			return MaxRetryWait, true
		}
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(h); err == nil {
		d = max(at.Sub(now()), 0)
	} else {
		return 0, false
	}
	return min(d, MaxRetryWait), true
}

func backoff(attempt int) time.Duration {
	d := RetryBaseDelay
	for range attempt {
		if d >= MaxRetryWait {
			break
		}
		d *= 2
	}
	return min(d, MaxRetryWait)
}
