package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagOnly = false
	flagAll = false
	flagPDF = false
	flagMarkdown = false
	flagJSON = false
	flagEmbeddings = false
	flagModel = ""
	flagFrontMatter = false
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseLogLevel("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestValidateFlags(t *testing.T) {
	t.Run("no format", func(t *testing.T) {
		resetFlags()
		err := validateFlags()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output format")
	})

	t.Run("one format ok", func(t *testing.T) {
		resetFlags()
		flagMarkdown = true
		assert.NoError(t, validateFlags())
	})

	t.Run("two formats rejected", func(t *testing.T) {
		resetFlags()
		flagMarkdown = true
		flagPDF = true
		require.Error(t, validateFlags())
	})

	t.Run("embeddings requires model", func(t *testing.T) {
		resetFlags()
		flagEmbeddings = true
		err := validateFlags()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--model")

		flagModel = "nomic-embed-text"
		assert.NoError(t, validateFlags())
	})

	t.Run("only and all exclusive", func(t *testing.T) {
		resetFlags()
		flagMarkdown = true
		flagOnly = true
		flagAll = true
		require.Error(t, validateFlags())
	})

	t.Run("front matter needs markdown", func(t *testing.T) {
		resetFlags()
		flagJSON = true
		flagFrontMatter = true
		require.Error(t, validateFlags())
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treemark.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[convert]
github_code_blocks = true
implicit_code_length = 80
log_level = "debug"

[output]
dir = "./out"

[embeddings]
model = "nomic-embed-text"
chunk_size = 256

[crawl]
max_pages = 25
`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Convert.GitHubCodeBlocks)
	assert.False(t, cfg.Convert.ImplicitCodeBlocks)
	assert.Equal(t, 80, cfg.Convert.ImplicitCodeLength)
	assert.Equal(t, "debug", cfg.Convert.LogLevel)
	assert.Equal(t, "./out", cfg.Output.Dir)
	assert.Equal(t, "nomic-embed-text", cfg.Embeddings.Model)
	assert.Equal(t, 256, cfg.Embeddings.ChunkSize)
	assert.Equal(t, 25, cfg.Crawl.MaxPages)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/treemark.toml")
	require.Error(t, err)
}

func TestBuildMetadata(t *testing.T) {
	html := `<html lang="de"><head><title> Seite </title></head><body></body></html>`
	meta := buildMetadata("https://example.com/docs/a", html)

	assert.Equal(t, "example.com", meta.Domain)
	assert.Equal(t, "/docs/a", meta.Path)
	assert.Equal(t, "Seite", meta.Title)
	assert.Equal(t, "de", meta.Language)
	assert.NotEmpty(t, meta.FetchedAt)
}

func TestBuildMetadata_Defaults(t *testing.T) {
	meta := buildMetadata("https://example.com/", "<body></body>")
	assert.Equal(t, "", meta.Title)
	assert.Equal(t, "en", meta.Language)
}
