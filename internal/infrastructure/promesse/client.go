package promesse

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/plantheque/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// maxAttempts bounds the retry loop for transient upstream failures
	maxAttempts = 3

	// maxBodyBytes caps how much of a page we read; product pages are
	// well under 2 MiB
	maxBodyBytes = 5 << 20
)

// Client fetches search and product pages from the Promesse de Fleurs
// shop. It is deliberately slow: the site serves humans, so requests
// are rate limited and carry browser-like headers.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Promesse de Fleurs page client
func NewClient(baseURL string, timeout time.Duration) *Client {
	// One page fetch every two seconds keeps us far below anything the
	// shop would notice; the burst absorbs a retry sequence
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose per-request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[PROMESSE] "+format, args...)
	}
}

// exponentialBackoff returns the wait before the next retry:
// 500ms, 1s, 2s for attempts 1, 2, 3
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from a response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// doRequest executes an HTTP GET request with browser-like headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	return resp, nil
}

// FetchSearchPage retrieves the raw HTML of the search results page for
// a plant query
func (c *Client) FetchSearchPage(ctx context.Context, query string) (string, error) {
	log.Printf("[PROMESSE] FetchSearchPage called with query: %q", query)

	endpoint := fmt.Sprintf("%s/catalogsearch/result/", c.baseURL)
	params := url.Values{}
	params.Add("q", query)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	return c.fetchHTML(ctx, reqURL)
}

// FetchPage retrieves the raw HTML of a single product page
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	log.Printf("[PROMESSE] FetchPage called with url: %s", pageURL)
	return c.fetchHTML(ctx, pageURL)
}

// fetchHTML executes the rate-limited GET, retrying transient failures
func (c *Client) fetchHTML(ctx context.Context, reqURL string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[PROMESSE] Rate limiter error: %v", err)
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[PROMESSE] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, readErr := readLimitedBody(resp.Body, maxBodyBytes)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("failed to read response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusOK {
			c.debugLog("fetched %d bytes from %s", len(body), reqURL)
			return string(body), nil
		}

		log.Printf("[PROMESSE] Source error (attempt %d) - Status: %d, URL: %s", attempt, resp.StatusCode, reqURL)
		if resp.StatusCode == http.StatusNotFound {
			return "", domain.ErrPlantNotFound
		}

		lastErr = fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)

		// Retry server-side and throttling failures only
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", lastErr
		}
		time.Sleep(exponentialBackoff(attempt))
	}

	log.Printf("[PROMESSE] All retries failed for %s", reqURL)
	return "", lastErr
}
