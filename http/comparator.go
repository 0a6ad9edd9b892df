// Package http provides HTTP-backed services: sitemap discovery and
// published-site size comparison.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/bloom"
)

// Ensure SizeComparator implements llmstxt.SizeComparator.
var _ llmstxt.SizeComparator = (*SizeComparator)(nil)

// Ensure DomainLimiter implements llmstxt.DomainLimiter.
var _ llmstxt.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to different domains
// proceed concurrently while requests within a domain are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified
// requests per second limit. Each domain gets a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// bytesPerToken approximates LLM tokenization: roughly one token per
// four bytes of text.
const bytesPerToken = 4

// SizeComparator measures published HTML pages against their markdown
// counterparts over HTTP.
type SizeComparator struct {
	client  *http.Client
	sitemap llmstxt.SitemapService
	limiter llmstxt.DomainLimiter
}

// NewSizeComparator creates a SizeComparator. A nil client falls back
// to http.DefaultClient; a nil limiter disables rate limiting.
func NewSizeComparator(client *http.Client, sitemap llmstxt.SitemapService, limiter llmstxt.DomainLimiter) *SizeComparator {
	if client == nil {
		client = http.DefaultClient
	}
	return &SizeComparator{
		client:  client,
		sitemap: sitemap,
		limiter: limiter,
	}
}

// Compare fetches both URLs and measures their sizes.
func (c *SizeComparator) Compare(ctx context.Context, pageURL, markdownURL string) (*llmstxt.Comparison, error) {
	htmlBytes, err := c.fetchSize(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	mdBytes, err := c.fetchSize(ctx, markdownURL)
	if err != nil {
		return nil, err
	}

	cmp := &llmstxt.Comparison{
		PageURL:        pageURL,
		MarkdownURL:    markdownURL,
		HTMLBytes:      htmlBytes,
		MarkdownBytes:  mdBytes,
		HTMLTokens:     htmlBytes / bytesPerToken,
		MarkdownTokens: mdBytes / bytesPerToken,
	}
	if htmlBytes > 0 {
		cmp.Savings = 1 - float64(mdBytes)/float64(htmlBytes)
	}
	return cmp, nil
}

// CompareSite discovers page URLs via the sitemap, maps each to its
// markdown counterpart, and aggregates results. Pages whose markdown
// counterpart is missing (404) are skipped rather than failing the
// whole run.
func (c *SizeComparator) CompareSite(ctx context.Context, baseURL string, filter *llmstxt.URLFilter) (*llmstxt.SiteComparison, error) {
	if c.sitemap == nil {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "size comparator requires a sitemap service")
	}

	pageURLs, err := c.sitemap.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}
	if len(pageURLs) == 0 {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no page URLs discovered for %s", baseURL)
	}

	seen := bloom.NewFilter(uint(len(pageURLs))*2+16, 0.001)
	site := &llmstxt.SiteComparison{}

	for _, pageURL := range pageURLs {
		if seen.Test(pageURL) {
			continue
		}
		seen.Add(pageURL)

		mdURL, err := MarkdownURL(pageURL)
		if err != nil {
			continue
		}

		cmp, err := c.Compare(ctx, pageURL, mdURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		site.Pages = append(site.Pages, *cmp)
		site.HTMLBytes += cmp.HTMLBytes
		site.MarkdownBytes += cmp.MarkdownBytes
		site.HTMLTokens += cmp.HTMLTokens
		site.MarkdownTokens += cmp.MarkdownTokens
	}

	if len(site.Pages) == 0 {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no markdown counterparts found for %s", baseURL)
	}
	if site.HTMLBytes > 0 {
		site.Savings = 1 - float64(site.MarkdownBytes)/float64(site.HTMLBytes)
	}
	return site, nil
}

// MarkdownURL maps a page URL to its published markdown counterpart:
// trailing slashes and index pages map to index.md, .html swaps to
// .md, and extension-less paths get .md appended.
func MarkdownURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "invalid page URL: %v", err)
	}

	path := u.Path
	switch {
	case path == "" || path == "/":
		path = "/index.md"
	case strings.HasSuffix(path, "/"):
		path += "index.md"
	case strings.HasSuffix(path, ".html"):
		path = strings.TrimSuffix(path, ".html") + ".md"
	case strings.HasSuffix(path, ".htm"):
		path = strings.TrimSuffix(path, ".htm") + ".md"
	default:
		path += ".md"
	}

	u.Path = path
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// fetchSize downloads a URL and returns its body size in bytes,
// respecting the per-domain rate limit.
func (c *SizeComparator) fetchSize(ctx context.Context, targetURL string) (int, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return 0, llmstxt.Errorf(llmstxt.EINVALID, "invalid URL: %v", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, llmstxt.Errorf(llmstxt.ENOTFOUND, "HTTP 404 for %s", targetURL)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", targetURL, err)
	}
	return int(n), nil
}

// FormatBytes renders a byte count as B, KB, or MB for report output.
func FormatBytes(n int) string {
	const kb = 1024
	if n >= kb*kb {
		return fmt.Sprintf("%.1f MB", float64(n)/(kb*kb))
	}
	if n >= kb {
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	}
	return fmt.Sprintf("%d B", n)
}

// FormatTokens renders an estimated token count, rounding to the
// nearest thousand above 1k.
func FormatTokens(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("~%dk tokens", (n+500)/1000)
	}
	return fmt.Sprintf("~%d tokens", n)
}
