package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mabry1985/albion-killbot/internal/battle"
)

// DefaultBaseURL is the public Albion game info API.
const DefaultBaseURL = "https://gameinfo.albiononline.com/api/gameinfo"

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 60 * time.Second

// TransportError wraps any failure to fetch or decode a feed page: transport
// errors, timeouts, non-2xx statuses, and malformed bodies. Callers retry;
// the client never retries internally.
type TransportError struct {
	Offset int
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("feed: fetch at offset %d: %v", e.Offset, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Options configures a feed Client.
type Options struct {
	// BaseURL overrides the feed endpoint root. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout overrides the per-call timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the transport. Its Timeout is left untouched;
	// the per-call timeout is applied via context.
	HTTPClient *http.Client
}

// Client fetches battle pages from the upstream feed.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a feed client.
func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{base: base, timeout: timeout, http: hc}
}

// FetchPage returns one page of battles at the given offset, newest-first.
// The request carries a generation timestamp so intermediary caches do not
// serve stale pages.
func (c *Client) FetchPage(ctx context.Context, offset, limit int) ([]battle.Battle, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "recent")
	q.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/battles?"+q.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Offset: offset, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Offset: offset, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Offset: offset, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Offset: offset, Err: err}
	}
	battles, err := battle.DecodeList(body)
	if err != nil {
		return nil, &TransportError{Offset: offset, Err: err}
	}
	return battles, nil
}
