package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Source serves tables from base URL, one CSV per table. It implements
// datasource.Source.
type Source struct {
	client  *Client
	base    string
	pattern string
}

// NewSource returns a Source reading fmt.Sprintf(pattern, table) under base.
// An empty pattern means "%s.csv".
func NewSource(c *Client, base, pattern string) *Source {
	if pattern == "" {
		pattern = "%s.csv"
	}
	return &Source{client: c, base: strings.TrimSuffix(base, "/"), pattern: pattern}
}

// URL returns the address fetched for the named table.
func (s *Source) URL(name string) string {
	return s.base + "/" + fmt.Sprintf(s.pattern, name)
}

// IsURL reports whether location looks like an http(s) base URL rather than
// a directory.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open fetches the named table. A 404 is reported as os.ErrNotExist so that
// a missing extract is skipped like a missing file.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	u := s.URL(name)
	resp, err := s.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %w", u, os.ErrNotExist)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", u, resp.Status)
	}
	return resp.Body, nil
}
