package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/ratelimit"
)

// PROVIDER_ASSETS is the rate limiter provider name for the asset ledger
const PROVIDER_ASSETS = "assets"

// assetResponse represents a single asset payload from the asset ledger API
type assetResponse struct {
	Asset domain.Asset `json:"asset"`
}

// assetsResponse represents a multi-asset payload from the asset ledger API
type assetsResponse struct {
	Assets []*domain.Asset `json:"assets"`
}

// templateResponse represents a template payload from the asset ledger API
type templateResponse struct {
	Template domain.Template `json:"template"`
}

// headBlockResponse represents the chain head payload from the asset ledger API
type headBlockResponse struct {
	BlockNum  uint64 `json:"block_num"`
	BlockHash string `json:"block_hash"`
}

// burnAndMintResponse represents the result of a burn-and-mint call
type burnAndMintResponse struct {
	MintedAssetID domain.AssetID `json:"minted_asset_id"`
}

// AssetClient implements AssetLedger against the asset ledger HTTP API
type AssetClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	baseURL        string
}

// NewAssetClient creates a new asset ledger client. A nil rate limit proxy
// sends requests unthrottled.
func NewAssetClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, baseURL string) AssetLedger {
	return &AssetClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// get performs a rate-limited GET against the asset ledger and decodes into out
func (c *AssetClient) get(ctx context.Context, reqURL string, out interface{}) error {
	_, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_ASSETS, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.httpClient.Get(ctx, reqURL, out)
	})
	return err
}

// post performs a rate-limited POST against the asset ledger
func (c *AssetClient) post(ctx context.Context, reqURL string, body []byte) ([]byte, error) {
	return ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_ASSETS, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, reqURL, "application/json", bytes.NewReader(body))
	})
}

// GetAsset fetches a single asset by id
func (c *AssetClient) GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	reqURL := fmt.Sprintf("%s/v1/assets/%d", c.baseURL, id)

	var response assetResponse
	if err := c.get(ctx, reqURL, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch asset %d: %w", id, err)
	}

	return &response.Asset, nil
}

// GetAssets fetches multiple assets by id
func (c *AssetClient) GetAssets(ctx context.Context, ids []domain.AssetID) ([]*domain.Asset, error) {
	if len(ids) == 0 {
		return []*domain.Asset{}, nil
	}

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, strconv.FormatUint(uint64(id), 10))
	}
	reqURL := fmt.Sprintf("%s/v1/assets?ids=%s", c.baseURL, url.QueryEscape(strings.Join(values, ",")))

	var response assetsResponse
	if err := c.get(ctx, reqURL, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return response.Assets, nil
}

// GetTemplate fetches an asset template by id
func (c *AssetClient) GetTemplate(ctx context.Context, id domain.TemplateID) (*domain.Template, error) {
	reqURL := fmt.Sprintf("%s/v1/templates/%d", c.baseURL, id)

	var response templateResponse
	if err := c.get(ctx, reqURL, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch template %d: %w", id, err)
	}

	return &response.Template, nil
}

// UpdateMutableData replaces the mutable attributes of an asset
func (c *AssetClient) UpdateMutableData(ctx context.Context, id domain.AssetID, data domain.AttributeMap) error {
	reqURL := fmt.Sprintf("%s/v1/assets/%d/mutable-data", c.baseURL, id)

	body, err := json.Marshal(map[string]interface{}{
		"mutable_data": data,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mutable data: %w", err)
	}

	if _, err := c.post(ctx, reqURL, body); err != nil {
		return fmt.Errorf("failed to update mutable data of asset %d: %w", id, err)
	}

	return nil
}

// Transfer moves assets between accounts
func (c *AssetClient) Transfer(ctx context.Context, from, to domain.OwnerName, ids []domain.AssetID, memo string) error {
	reqURL := fmt.Sprintf("%s/v1/transfers", c.baseURL)

	body, err := json.Marshal(map[string]interface{}{
		"from":      from,
		"to":        to,
		"asset_ids": ids,
		"memo":      memo,
	})
	if err != nil {
		return fmt.Errorf("failed to encode transfer: %w", err)
	}

	if _, err := c.post(ctx, reqURL, body); err != nil {
		return fmt.Errorf("failed to transfer assets: %w", err)
	}

	return nil
}

// BurnAndMint atomically burns the given assets and mints one asset of the
// result template to the owner
func (c *AssetClient) BurnAndMint(ctx context.Context, owner domain.OwnerName, burn []domain.AssetID, result domain.TemplateID) (domain.AssetID, error) {
	reqURL := fmt.Sprintf("%s/v1/burn-and-mint", c.baseURL)

	body, err := json.Marshal(map[string]interface{}{
		"owner":           owner,
		"burn_asset_ids":  burn,
		"result_template": result,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode burn-and-mint: %w", err)
	}

	respBody, err := c.post(ctx, reqURL, body)
	if err != nil {
		return 0, fmt.Errorf("failed to burn and mint: %w", err)
	}

	var response burnAndMintResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return 0, fmt.Errorf("failed to decode burn-and-mint response: %w", err)
	}

	return response.MintedAssetID, nil
}

// HeadBlock returns the current head block number and its hash
func (c *AssetClient) HeadBlock(ctx context.Context) (uint64, string, error) {
	reqURL := fmt.Sprintf("%s/v1/chain/head", c.baseURL)

	var response headBlockResponse
	if err := c.get(ctx, reqURL, &response); err != nil {
		return 0, "", fmt.Errorf("failed to fetch head block: %w", err)
	}

	return response.BlockNum, response.BlockHash, nil
}
