package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// maxDocumentBytes bounds a single fetched catalog document.
const maxDocumentBytes = 8 << 20

// HTTPSource fetches the POI and venue documents over HTTP(S).
// Transient failures are retried with exponential backoff.
type HTTPSource struct {
	session  *http.Client
	poiURL   string
	venueURL string

	maxAttempts    int
	initialBackoff time.Duration
	maxBodyBytes   int64
}

func NewHTTPSource(poiURL, venueURL string) (*HTTPSource, error) {
	for _, u := range []string{poiURL, venueURL} {
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return nil, fmt.Errorf("http catalog source: invalid url %q", u)
		}
	}

	return &HTTPSource{
		session:        &http.Client{Timeout: 10 * time.Second},
		poiURL:         poiURL,
		venueURL:       venueURL,
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
		maxBodyBytes:   maxDocumentBytes,
	}, nil
}

func (s *HTTPSource) Name() string { return "http" }

// Load fetches both documents. A document that cannot be fetched after
// retries becomes an issue; only context cancellation is returned as an error.
func (s *HTTPSource) Load(ctx context.Context) (_ ports.CatalogData, err error) {
	defer obs.Time(ctx, "catalog.http.Load")(&err)

	poiDoc := s.fetch(ctx, s.poiURL)
	venueDoc := s.fetch(ctx, s.venueURL)
	if err := ctx.Err(); err != nil {
		return ports.CatalogData{}, err
	}

	return assemble(poiDoc, venueDoc), nil
}

func (s *HTTPSource) fetch(ctx context.Context, rawURL string) rawDocument {
	doc := rawDocument{name: rawURL, format: formatFor(urlPath(rawURL))}

	resp, err := s.getWithRetry(ctx, rawURL)
	if err != nil {
		doc.err = err
		return doc
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		doc.format = formatYAML
	}

	// One extra byte tells an oversized document apart from one of exactly the limit.
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	switch {
	case err != nil:
		doc.err = fmt.Errorf("read body: %w", err)
	case int64(len(data)) > s.maxBodyBytes:
		doc.err = fmt.Errorf("document exceeds %d bytes", s.maxBodyBytes)
	default:
		doc.data = data
	}
	return doc
}

// get performs a single GET. Responses with status >= 400 are turned into
// *httpStatusError with a truncated body.
func (s *HTTPSource) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// getWithRetry tries a GET up to s.maxAttempts times. The pause between
// tries starts at s.initialBackoff and doubles each time; only failures that
// transientFailure accepts are retried.
func (s *HTTPSource) getWithRetry(ctx context.Context, rawURL string) (*http.Response, error) {
	pause := s.initialBackoff

	for attempt := 1; ; attempt++ {
		resp, err := s.get(ctx, rawURL)
		if err == nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if attempt >= s.maxAttempts || !transientFailure(err) {
			return nil, fmt.Errorf("get %s (attempt %d/%d): %w", rawURL, attempt, s.maxAttempts, err)
		}

		if err := sleepContext(ctx, pause); err != nil {
			return nil, err
		}
		pause *= 2
	}
}

// transientFailure reports whether err may go away on its own: rate limiting,
// gateway or server overload, or a network-level error.
func transientFailure(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
