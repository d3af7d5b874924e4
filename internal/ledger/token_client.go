package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/ratelimit"
)

// PROVIDER_TOKENS is the rate limiter provider name for the token ledger
const PROVIDER_TOKENS = "tokens"

// TokenClient implements TokenLedger against the token ledger HTTP API
type TokenClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	baseURL        string
}

// NewTokenClient creates a new token ledger client. A nil rate limit proxy
// sends requests unthrottled.
func NewTokenClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, baseURL string) TokenLedger {
	return &TokenClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Transfer moves tokens between accounts
func (c *TokenClient) Transfer(ctx context.Context, from, to domain.OwnerName, amount domain.TokenAmount, memo string) error {
	reqURL := fmt.Sprintf("%s/v1/transfers", c.baseURL)

	body, err := json.Marshal(map[string]interface{}{
		"from":     from,
		"to":       to,
		"quantity": amount.String(),
		"memo":     memo,
	})
	if err != nil {
		return fmt.Errorf("failed to encode token transfer: %w", err)
	}

	_, err = ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_TOKENS, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, reqURL, "application/json", bytes.NewReader(body))
	})
	if err != nil {
		return fmt.Errorf("failed to transfer tokens: %w", err)
	}

	return nil
}
