package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameDomain(t *testing.T) {
	assert.True(t, IsSameDomain("http://example.com/page", "example.com"))
	assert.False(t, IsSameDomain("http://other.com/page", "example.com"))
	assert.False(t, IsSameDomain("http://sub.example.com/", "example.com"))
	assert.False(t, IsSameDomain("://bad", "example.com"))
}

func TestIsStaticAsset(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://x.com/logo.png", true},
		{"http://x.com/app.JS", true},
		{"http://x.com/manual.pdf", true},
		{"http://x.com/font.woff2", true},
		{"http://x.com/page", false},
		{"http://x.com/page.html", false},
		{"http://x.com/download.png?v=2", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStaticAsset(tt.url), tt.url)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x.com/page#section", "http://x.com/page"},
		{"http://x.com/page/", "http://x.com/page"},
		{"http://x.com/", "http://x.com/"},
		{"http://x.com/a?q=1#f", "http://x.com/a?q=1"},
		{"http://x.com/page", "http://x.com/page"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), tt.in)
	}
}
