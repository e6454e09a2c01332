package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cardspark/cardstudio-backend/internal/pkg/ctxutil"
	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/httpx"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

// Config holds the catalog API connection settings.
type Config struct {
	BaseURL        string
	CacheTTL       time.Duration
	TimeoutSeconds int
	MaxRetries     int
}

// SavingsEstimate is the recommendation API's savings figure for one card.
type SavingsEstimate struct {
	CardID         string             `json:"card_id"`
	MonthlySavings float64            `json:"monthly_savings"`
	AnnualSavings  float64            `json:"annual_savings"`
	Breakdown      map[string]float64 `json:"breakdown,omitempty"`
}

// Client reads card records and savings figures from the external catalog and
// recommendation APIs. Reads are idempotent, so failed calls retry with
// backoff; responses are cached in redis under a short TTL when a redis
// client is configured.
type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	rdb        *goredis.Client
	ttl        time.Duration
	maxRetries int
}

func New(baseLog *logger.Logger, cfg Config, rdb *goredis.Client) (*Client, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("catalog base url required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		log:        baseLog.With("service", "CatalogClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		rdb:        rdb,
		ttl:        ttl,
		maxRetries: maxRetries,
	}, nil
}

// Cards fetches card records matching an opaque filter payload.
func (c *Client) Cards(ctx context.Context, filter map[string]any) ([]types.CardRecord, error) {
	key := cacheKey("cards", filter)

	if cached, ok := c.cacheGet(ctx, key); ok {
		var cards []types.CardRecord
		if err := json.Unmarshal(cached, &cards); err == nil {
			return cards, nil
		}
	}

	raw, err := c.do(ctx, "/cards", filter)
	if err != nil {
		return nil, err
	}
	var cards []types.CardRecord
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	c.cacheSet(ctx, key, raw)
	return cards, nil
}

// CardsByIDs resolves selected ids against the catalog, preserving the input
// order. Unknown ids are skipped with a warning, not an error.
func (c *Client) CardsByIDs(ctx context.Context, ids []string) ([]types.CardRecord, error) {
	cards, err := c.Cards(ctx, nil)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]types.CardRecord, len(cards))
	for _, card := range cards {
		if id := card.ID(); id != "" {
			byID[id] = card
		}
	}

	out := make([]types.CardRecord, 0, len(ids))
	for _, id := range ids {
		card, ok := byID[id]
		if !ok {
			c.log.Warn("Selected card id not found in catalog", "card_id", id)
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

// Savings fetches the recommendation API's savings estimate for one card.
func (c *Client) Savings(ctx context.Context, cardID string, spendProfile map[string]any) (*SavingsEstimate, error) {
	payload := map[string]any{"card_id": cardID}
	for k, v := range spendProfile {
		payload[k] = v
	}

	key := cacheKey("savings", payload)
	if cached, ok := c.cacheGet(ctx, key); ok {
		var est SavingsEstimate
		if err := json.Unmarshal(cached, &est); err == nil {
			return &est, nil
		}
	}

	raw, err := c.do(ctx, "/savings", payload)
	if err != nil {
		return nil, err
	}
	var est SavingsEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return nil, fmt.Errorf("decode savings response: %w", err)
	}

	c.cacheSet(ctx, key, raw)
	return &est, nil
}

func (c *Client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body == nil {
		body = map[string]any{}
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), "POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &pkgerrors.TransportError{Service: "catalog", Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, &pkgerrors.TransportError{Service: "catalog", Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &pkgerrors.TransportError{Service: "catalog", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *Client) do(ctx context.Context, path string, body any) ([]byte, error) {
	backoff := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			break
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		c.log.Warn("Catalog request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
	return nil, lastErr
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (c *Client) cacheSet(ctx context.Context, key string, raw []byte) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "key", key, "error", err)
	}
}

func cacheKey(kind string, payload any) string {
	b, _ := json.Marshal(payload)
	sum := sha256.Sum256(b)
	return "catalog:" + kind + ":" + hex.EncodeToString(sum[:8])
}
