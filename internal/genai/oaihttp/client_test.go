package oaihttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardspark/cardstudio-backend/internal/genai"
	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(logger.NewNop(), Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestNewRequiresCredential(t *testing.T) {
	_, err := New(logger.NewNop(), Config{})
	if !errors.Is(err, pkgerrors.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestGenerateTextRoundTrip(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"linkedin":"hello"}`}},
			},
		})
	})

	out, err := c.GenerateText(context.Background(), []genai.Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "usr"},
	}, genai.Options{MaxTokens: 2000, Temperature: 0.7})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"linkedin":"hello"}` {
		t.Fatalf("content = %q", out)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("request model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(2000) {
		t.Fatalf("request max_tokens = %v", gotBody["max_tokens"])
	}
	if gotBody["temperature"] != 0.7 {
		t.Fatalf("request temperature = %v", gotBody["temperature"])
	}
}

func TestGenerateTextPropagatesHTTPFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.GenerateText(context.Background(), nil, genai.Options{})
	var te *pkgerrors.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.HTTPStatusCode() != http.StatusBadGateway {
		t.Fatalf("status = %d", te.HTTPStatusCode())
	}
}

func TestGenerateTextPropagatesMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.GenerateText(context.Background(), nil, genai.Options{})
	if !pkgerrors.IsTransport(err) {
		t.Fatalf("expected transport error for malformed body, got %v", err)
	}
}

func TestGenerateTextEmptyCompletionIsError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := c.GenerateText(context.Background(), nil, genai.Options{})
	if err == nil {
		t.Fatalf("expected error on empty choices")
	}
}
