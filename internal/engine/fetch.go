package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

// YouTube serves a cookie consent interstitial to EU visitors without this.
const consentCookie = "CONSENT=YES+1; GPS=1;"

// ErrBodyTooLarge is returned when a page exceeds FetchMaxBytes. The page is
// not cut short, since a truncated payload cannot be told from a changed layout.
var ErrBodyTooLarge = errors.New("response body exceeds fetch limit")

var fetchLimiter *rate.Limiter

func initLimiter(rps float64, burst int) {
	if rps <= 0 {
		fetchLimiter = nil
		return
	}
	if burst <= 0 {
		burst = 1
	}
	fetchLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// newFetchClient creates an HTTP client that follows at most 5 redirects.
func newFetchClient() *http.Client {
	return &http.Client{
		Timeout: DefaultFetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("stopped after 5 redirects")
			}
			return nil
		},
	}
}

// FetchDocument GETs pageURL with browser-like headers and returns the body
// for any status in [200,400). Transient failures are retried with
// exponential backoff; other statuses come back as *HTTPStatusError.
func FetchDocument(ctx context.Context, pageURL string) (string, error) {
	metrics.FetchRequests.Add(1)
	if fetchLimiter != nil {
		if err := fetchLimiter.Wait(ctx); err != nil {
			metrics.FetchErrors.Add(1)
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	client := cfg.HTTPClient
	if client == nil {
		client = newFetchClient()
	}
	maxBytes := cfg.FetchMaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultFetchMaxBytes
	}

	operation := func() (string, error) {
		body, err := fetchOnce(ctx, client, pageURL, maxBytes)
		if err != nil && !isRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return body, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(30*time.Second),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.FetchRetries.Add(1)
			slog.Debug("fetch: retrying", slog.String("url", pageURL), slog.Duration("wait", wait), slog.Any("error", err))
		}),
	)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return "", err
	}
	return body, nil
}

func fetchOnce(ctx context.Context, client *http.Client, pageURL string, maxBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Cookie", consentCookie)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !acceptedStatus(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &HTTPStatusError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	data, err := readResponseBody(resp, maxBytes)
	if errors.Is(err, ErrBodyTooLarge) {
		return "", fmt.Errorf("%s: %w (%d bytes)", pageURL, err, maxBytes)
	}
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}

// readResponseBody reads the body, handling gzip. A body longer than
// maxBytes yields ErrBodyTooLarge.
func readResponseBody(resp *http.Response, maxBytes int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}
