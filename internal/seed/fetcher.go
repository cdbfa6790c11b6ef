package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultURL is the randomuser.me endpoint the seed is fetched from.
	DefaultURL = "https://randomuser.me/api/"
	// DefaultResults is the number of generated people requested.
	DefaultResults = 50
	// DefaultNationality restricts generated people to French records.
	DefaultNationality = "fr"
	// DefaultTimeout bounds a single seed request.
	DefaultTimeout = 10 * time.Second

	userAgent = "PeopleHub/1.0"
	// maxResponseSize caps the body read from the remote API.
	maxResponseSize = 5 << 20
)

// Fetcher retrieves the raw randomuser.me response.
type Fetcher interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	Client      *http.Client
	URL         string
	Results     int
	Nationality string
}

// NewHTTPFetcher creates a fetcher for the given endpoint. Zero values fall back to the defaults.
func NewHTTPFetcher(endpoint string, results int, nationality string, timeout time.Duration) *HTTPFetcher {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if results <= 0 {
		results = DefaultResults
	}
	if nationality == "" {
		nationality = DefaultNationality
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		Client:      &http.Client{Timeout: timeout},
		URL:         endpoint,
		Results:     results,
		Nationality: nationality,
	}
}

// Fetch downloads one batch of generated people. The returned body is limited in size and must be
// closed by the caller.
func (f *HTTPFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported seed url scheme: %s", u.Scheme)
	}
	query := u.Query()
	query.Set("results", strconv.Itoa(f.Results))
	query.Set("nat", f.Nationality)
	u.RawQuery = query.Encode()

	log := slog.With("component", "seed", "url", u.Scheme+"://"+u.Host+u.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("seed server returned error status", "status", resp.StatusCode)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, maxResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser reads from a size-limited reader and closes the original body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
