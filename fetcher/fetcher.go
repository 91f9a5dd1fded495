// Package fetcher downloads the page a check request points at. It owns
// the only network I/O in the audit path; extraction and scoring never
// touch the network.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const userAgent = "SEOAuditBot/1.0 (+https://github.com/contentops/seo-audit)"

// maxBodySize caps how much HTML is read; anything beyond this is not a
// page worth auditing.
const maxBodySize = 5 << 20

var (
	ErrNotHTML   = errors.New("response is not an HTML document")
	ErrBadStatus = errors.New("unexpected response status")
)

// Client wraps a tuned http.Client for page fetching.
type Client struct {
	http *http.Client
	log  *logrus.Logger
}

// New creates a fetch client with connection pooling and a request
// timeout suited for single-page fetches.
func New(log *logrus.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		log: log,
	}
}

// Fetch GETs the URL and returns the HTML body. Non-2xx responses and
// non-HTML content types are hard errors; the caller surfaces them
// before extraction runs.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, pageURL)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return "", fmt.Errorf("%w: %s", ErrNotHTML, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", pageURL, err)
	}

	c.log.WithFields(logrus.Fields{
		"url":      pageURL,
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start).String(),
	}).Debug("page fetched")

	return string(body), nil
}
