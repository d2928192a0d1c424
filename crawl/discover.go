// Package crawl provides URL discovery for --all mode.
// It discovers internal pages via sitemap.xml and falls back to BFS link
// crawling, keeping crawling logic separate from the convert pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/treemark/core"
)

// DefaultMaxPages bounds BFS crawling when no explicit cap is set.
const DefaultMaxPages = 100

// Discoverer finds the set of internal URLs to convert.
type Discoverer struct {
	Fetcher  core.Fetcher
	MaxPages int
}

// NewDiscoverer creates a Discoverer over the given fetcher.
func NewDiscoverer(fetcher core.Fetcher) *Discoverer {
	return &Discoverer{Fetcher: fetcher, MaxPages: DefaultMaxPages}
}

// sitemapURL holds one URL entry from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// Discover finds all internal URLs to process starting from baseURL.
// It tries sitemap.xml first, then falls back to link crawling. The
// baseURL itself is always included.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := d.fromSitemap(ctx, sitemap, domain)
	if err == nil && len(urls) > 0 {
		return urls, nil
	}

	return d.fromLinks(ctx, baseURL, domain)
}

// fromSitemap fetches and parses sitemap.xml for internal URLs.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemapURLStr string, domain string) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURLStr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range sitemap.URLs {
		if IsSameDomain(u.Loc, domain) && !IsStaticAsset(u.Loc) {
			urls = append(urls, NormalizeURL(u.Loc))
		}
	}
	return urls, nil
}

// fromLinks performs BFS crawling to find internal links.
func (d *Discoverer) fromLinks(ctx context.Context, startURL string, domain string) ([]string, error) {
	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() && queue.Visited() < maxPages {
		currentURL := queue.Next()

		result, err := d.Fetcher.Fetch(ctx, currentURL)
		if err != nil {
			continue // Skip failed pages, don't block the crawl.
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All(), nil
}

// extractLinks pulls href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
// Non-HTTP schemes and bare fragments resolve to nothing.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
