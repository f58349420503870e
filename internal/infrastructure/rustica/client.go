package rustica

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/plantheque/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// probeTimeout bounds each HEAD probe; article pages answer fast
	probeTimeout = 5 * time.Second

	// maxBodyBytes caps how much of an article page we read
	maxBodyBytes = 5 << 20
)

// knownPages maps normalized latin names of common garden plants to
// their hand-checked Rustica pages. Checked in order, before any
// probing: a hit here costs no network round trip.
var knownPages = []struct {
	name string
	path string
}{
	{"lavandula angustifolia", "/plantes-jardin/lavande-lavandula-angustifolia,3886.html"},
	{"olea europaea", "/plantes-jardin/olivier-olea-europaea,3907.html"},
	{"rosa", "/plantes-jardin/rosier-rosa,3918.html"},
	{"prunus avium", "/plantes-jardin/cerisier-prunus-avium,3880.html"},
	{"malus domestica", "/plantes-jardin/pommier-malus-domestica,3910.html"},
}

// Client locates plant care pages on Rustica. The site has no usable
// search endpoint, so pages are found by probing candidate URLs with
// cheap HEAD requests, a known-pages table first.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Rustica page client. delay is the minimum
// spacing between requests to the site; rate.Every(0) disables it.
func NewClient(baseURL string, timeout, delay time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Source identifies this client in the match cache
func (c *Client) Source() string {
	return "rustica"
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")
	req.Header.Set("Referer", c.baseURL+"/")
}

// LocatePlant finds the care page URL for a latin plant name. It tries,
// in order: the known-pages table, the direct slug URL, alternate URL
// patterns, and finally the genus alone. The first page that answers a
// HEAD probe with a 2xx wins.
func (c *Client) LocatePlant(ctx context.Context, latinName string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(latinName))
	if name == "" {
		return "", domain.ErrInvalidRequest
	}
	log.Printf("[RUSTICA] LocatePlant called with latin name: %q", latinName)

	for _, kp := range knownPages {
		genus := strings.Fields(kp.name)[0]
		if strings.Contains(name, kp.name) || strings.HasPrefix(name, genus) {
			log.Printf("[RUSTICA] Known page for %q: %s", latinName, kp.path)
			return c.baseURL + kp.path, nil
		}
	}

	slug := strings.ReplaceAll(name, " ", "-")

	directURL := fmt.Sprintf("%s/plantes-jardin/%s.html", c.baseURL, slug)
	if c.probe(ctx, directURL) {
		log.Printf("[RUSTICA] Found via direct URL: %s", directURL)
		return directURL, nil
	}

	// Rustica sometimes files plants under other sections
	patterns := []string{
		fmt.Sprintf("%s/articles/%s", c.baseURL, slug),
		fmt.Sprintf("%s/jardin/%s.html", c.baseURL, slug),
		fmt.Sprintf("%s/plante/%s", c.baseURL, slug),
	}
	for _, pattern := range patterns {
		if c.probe(ctx, pattern) {
			log.Printf("[RUSTICA] Found via alternate pattern: %s", pattern)
			return pattern, nil
		}
	}

	// The site may carry the genus even when the exact species is missing
	if genus := strings.Fields(name)[0]; genus != name {
		genusURL := fmt.Sprintf("%s/plantes-jardin/%s.html", c.baseURL, genus)
		if c.probe(ctx, genusURL) {
			log.Printf("[RUSTICA] Found via genus: %s", genusURL)
			return genusURL, nil
		}
	}

	log.Printf("[RUSTICA] No page found for %q", latinName)
	return "", domain.ErrPlantNotFound
}

// probe issues a HEAD request and reports whether the URL resolves to a
// real page. Probe failures are never fatal, the next candidate is tried.
func (c *Client) probe(ctx context.Context, probeURL string) bool {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, "HEAD", probeURL, nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// FetchPage retrieves the raw HTML of a Rustica article page
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	log.Printf("[RUSTICA] FetchPage called with url: %s", pageURL)

	// The limiter spaces this out from the probes that just ran
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrPlantNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
