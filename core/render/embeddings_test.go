package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/treemark/core"
)

func TestEmbeddingsRenderer_Render(t *testing.T) {
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		prompts = append(prompts, req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2}})
	}))
	defer srv.Close()

	r := NewEmbeddingsRenderer("test-model", 2, srv.URL)
	out, err := r.Render("a b c d e", core.PageMetadata{URL: "https://e.com"})
	require.NoError(t, err)

	// Five words at chunk size 2 make three chunks, one API call each.
	assert.Len(t, prompts, 3)
	s := string(out)
	assert.Contains(t, s, "# source: https://e.com")
	assert.Contains(t, s, "--- chunk 3 ---")
	assert.Contains(t, s, "[0.1000, 0.2000]")
}

func TestEmbeddingsRenderer_EmptyInput(t *testing.T) {
	r := NewEmbeddingsRenderer("m", 10, "http://unused")
	_, err := r.Render("   ", core.PageMetadata{})
	require.Error(t, err)
}

func TestEmbeddingsRenderer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewEmbeddingsRenderer("missing", 10, srv.URL)
	_, err := r.Render("some text", core.PageMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEmbeddingsRenderer_Extension(t *testing.T) {
	assert.Equal(t, ".embeddings.txt", NewEmbeddingsRenderer("m", 0, "").Extension())
}
