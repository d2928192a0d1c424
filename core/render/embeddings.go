// Package render — Embeddings renderer.
// Generates embeddings from Markdown by chunking the text and calling an
// Ollama-compatible embedding API for each chunk. Output is a
// human-readable .embeddings.txt file.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/treemark/core"
	"github.com/gaurav-prasanna/treemark/core/chunk"
)

const (
	// DefaultEmbeddingURL is the local Ollama embeddings endpoint.
	DefaultEmbeddingURL = "http://localhost:11434/api/embeddings"

	embeddingTimeout = 60 * time.Second
)

// EmbeddingsRenderer generates embeddings from Markdown chunks.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	BaseURL   string
	client    *http.Client
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer talking to the
// given endpoint. An empty baseURL selects DefaultEmbeddingURL.
func NewEmbeddingsRenderer(model string, chunkSize int, baseURL string) *EmbeddingsRenderer {
	if baseURL == "" {
		baseURL = DefaultEmbeddingURL
	}
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		BaseURL:   baseURL,
		client:    &http.Client{Timeout: embeddingTimeout},
	}
}

// embedRequest is the request body for the embeddings API.
type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embedResponse is the response body from the embeddings API.
type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Render chunks the Markdown, embeds each chunk, and produces the
// human-readable .embeddings.txt output.
func (r *EmbeddingsRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	chunks := chunk.New(r.ChunkSize).Chunk(markdown)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to embed")
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# source: %s\n", meta.URL)
	fmt.Fprintf(&buf, "# model: %s\n", r.Model)
	fmt.Fprintf(&buf, "# chunk_size: %d\n\n", r.ChunkSize)

	ctx := context.Background()
	for i, chunkText := range chunks {
		embedding, err := r.embed(ctx, chunkText)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", i+1, err)
		}

		fmt.Fprintf(&buf, "--- chunk %d ---\n", i+1)
		fmt.Fprintf(&buf, "TEXT:\n%s\n\n", chunkText)

		vecStrs := make([]string, len(embedding))
		for j, v := range embedding {
			vecStrs[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&buf, "VECTOR:\n[%s]\n\n", strings.Join(vecStrs, ", "))
	}

	return []byte(buf.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}

// embed calls the embedding API for a single text input.
func (r *EmbeddingsRenderer) embed(ctx context.Context, text string) ([]float64, error) {
	bodyBytes, err := json.Marshal(embedRequest{Model: r.Model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embedding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API returned %d: %s", resp.StatusCode, string(body))
	}

	var er embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}
	return er.Embedding, nil
}
