package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/treemark/core"
)

// stubFetcher serves canned HTML keyed by URL.
type stubFetcher struct {
	pages map[string]string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	html, ok := s.pages[url]
	if !ok {
		return nil, errors.New("not found: " + url)
	}
	return &core.FetchResult{URL: url, StatusCode: http.StatusOK, HTML: html}, nil
}

func TestDiscover_Sitemap(t *testing.T) {
	var host string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sitemap.xml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<?xml version="1.0"?>
<urlset>
  <url><loc>http://%[1]s/a</loc></url>
  <url><loc>http://%[1]s/b/</loc></url>
  <url><loc>http://%[1]s/logo.png</loc></url>
  <url><loc>http://elsewhere.com/x</loc></url>
</urlset>`, host)
	}))
	defer srv.Close()
	host = srv.Listener.Addr().String()

	d := NewDiscoverer(&stubFetcher{})
	urls, err := d.Discover(context.Background(), srv.URL+"/a")
	require.NoError(t, err)

	// Static assets and foreign domains filtered, trailing slash normalized.
	assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
}

func TestDiscover_LinkCrawlFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	base := srv.URL
	pages := map[string]string{
		base + "/":  `<a href="/one">1</a> <a href="/two">2</a> <a href="mailto:x@y">m</a>`,
		base + "/one": `<a href="/two">2</a> <a href="http://external.com/">out</a>`,
		base + "/two": `<a href="/one">1</a>`,
	}

	d := NewDiscoverer(&stubFetcher{pages: pages})
	urls, err := d.Discover(context.Background(), base+"/")
	require.NoError(t, err)

	assert.Equal(t, []string{base + "/", base + "/one", base + "/two"}, urls)
}

func TestDiscover_MaxPagesBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	base := srv.URL
	// Every page links to the next, unboundedly.
	fetcher := &chainFetcher{base: base}

	d := NewDiscoverer(fetcher)
	d.MaxPages = 5
	urls, err := d.Discover(context.Background(), base+"/p0")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(urls), 6)
	assert.GreaterOrEqual(t, len(urls), 5)
}

// chainFetcher fabricates page N linking to page N+1.
type chainFetcher struct {
	base string
	n    int
}

func (c *chainFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	c.n++
	html := fmt.Sprintf(`<a href="/p%d">next</a>`, c.n)
	return &core.FetchResult{URL: url, StatusCode: http.StatusOK, HTML: html}, nil
}
