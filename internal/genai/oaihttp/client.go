package oaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cardspark/cardstudio-backend/internal/genai"
	"github.com/cardspark/cardstudio-backend/internal/pkg/ctxutil"
	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
)

// Config holds the connection settings for the generative-model endpoint.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// Client is the model-backed generation engine. It issues exactly one
// chat-completions request per call; transport and HTTP failures propagate to
// the caller, which owns the retry/fallback decision.
type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(baseLog *logger.Logger, cfg Config) (*Client, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, pkgerrors.ErrMissingCredential
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	return &Client{
		log:        baseLog.With("service", "GenAIClient"),
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

type chatCompletionsRequest struct {
	Model       string          `json:"model"`
	Messages    []genai.Message `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) GenerateText(ctx context.Context, messages []genai.Message, opts genai.Options) (string, error) {
	reqBody := chatCompletionsRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), "POST", c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &pkgerrors.TransportError{Service: "genai", Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", &pkgerrors.TransportError{Service: "genai", Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Generation request failed", "status", resp.StatusCode)
		return "", &pkgerrors.TransportError{Service: "genai", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &pkgerrors.TransportError{Service: "genai", StatusCode: resp.StatusCode, Body: string(raw), Err: err}
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", &pkgerrors.TransportError{Service: "genai", StatusCode: resp.StatusCode, Body: "empty completion"}
	}
	return parsed.Choices[0].Message.Content, nil
}
