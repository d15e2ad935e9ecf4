// Package fetch retrieves external reference documents with monotonic
// file-based memoization: the first access for an identifier performs a
// network read and persists the result to a deterministic local path, and
// every later lookup reads the cached file instead. A fixed pacing delay
// separates consecutive uncached fetches to respect third-party rate
// limits. A failed fetch is fatal to the run; it is never retried and never
// treated as a missing value.
package fetch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const defaultUserAgent = "semvocab/0.1"

// Client fetches and caches external reference documents. It is used from
// the single-threaded conversion pass and needs no locking.
type Client struct {
	cacheDir string
	pace     time.Duration
	http     *http.Client

	// lastUncached is when the previous uncached fetch finished; the next
	// one waits until pace has elapsed.
	lastUncached time.Time
}

// New returns a client caching under cacheDir with the given pacing delay.
func New(cacheDir string, pace time.Duration) *Client {
	return &Client{
		cacheDir: cacheDir,
		pace:     pace,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// cachePath derives the deterministic local path for an identifier.
func (c *Client) cachePath(iri string) string {
	sum := sha256.Sum256([]byte(iri))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:]))
}

// Get returns the document body for an external identifier, fetching and
// persisting it on first access.
func (c *Client) Get(ctx context.Context, iri string) ([]byte, error) {
	path := c.cachePath(iri)
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading cache for %s: %w", iri, err)
	}

	if wait := c.pace - time.Since(c.lastUncached); wait > 0 && !c.lastUncached.IsZero() {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iri, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", iri, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml")

	resp, err := c.http.Do(req)
	c.lastUncached = time.Now()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", iri, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", iri, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", iri, err)
	}

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("persisting cache for %s: %w", iri, err)
	}
	return data, nil
}

// Label resolves a human-readable label for an external IRI from its
// fetched document. An empty label with a nil error means the document
// yielded none; the caller decides whether that is worth an advisory.
func (c *Client) Label(ctx context.Context, iri string) (string, error) {
	data, err := c.Get(ctx, iri)
	if err != nil {
		return "", err
	}

	pageURL, err := url.Parse(iri)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", iri, err)
	}
	if article, err := readability.FromReader(bytes.NewReader(data), pageURL); err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			return title, nil
		}
	}
	return htmlTitle(data), nil
}

// htmlTitle extracts the <title> text from an HTML document, or "".
func htmlTitle(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					sb.WriteString(child.Data)
				}
			}
			return strings.TrimSpace(sb.String())
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if title := walk(child); title != "" {
				return title
			}
		}
		return ""
	}
	return walk(doc)
}
