package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/pkg/authtoken"
)

const (
	upstreamTimeout = 10 * time.Second
)

var (
	// ErrNoToken means the caller's context carries no bearer token. The
	// client fails fast instead of sending unauthenticated requests.
	ErrNoToken = errors.New("missing bearer token")

	// ErrShopNotFound means the upstream has no record for the shop id.
	ErrShopNotFound = errors.New("shop not found")

	// ErrUpstreamUnavailable covers transport failures and 5xx responses.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// CatalogAPI is the slice of the upstream REST API the storefront consumes.
type CatalogAPI interface {
	FetchShop(ctx context.Context, shopID string) (*models.Shop, error)
	FetchShopProducts(ctx context.Context, shopID string) ([]models.Product, error)
	FetchShopsByCategory(ctx context.Context, tag models.CategoryTag) ([]models.Shop, error)
	FetchProductsByCategory(ctx context.Context, tag models.CategoryTag, shopID string) ([]models.Product, error)
	AddToCart(ctx context.Context, req UpstreamCartRequest) (json.RawMessage, error)
	ReduceQuantity(ctx context.Context, req UpstreamCartRequest) (json.RawMessage, error)
}

// UpstreamCartRequest mirrors the upstream cart mutation body.
type UpstreamCartRequest struct {
	ProductID         string                    `json:"productId"`
	Quantity          int                       `json:"quantity"`
	SelectedVariantID string                    `json:"selectedVariantId,omitempty"`
	SelectedAddOns    map[string][]models.AddOn `json:"selectedAddOns,omitempty"`
	Price             float64                   `json:"price"`
}

// CatalogClient talks to the upstream catalog service. Idempotent GETs are
// retried once; cart mutations are never retried, a duplicate POST would
// create a duplicate cart line upstream.
type CatalogClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewCatalogClient(baseURL string, log *zap.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: upstreamTimeout},
		log:     log,
	}
}

func (c *CatalogClient) FetchShop(ctx context.Context, shopID string) (*models.Shop, error) {
	body, err := c.get(ctx, "/shops/"+url.PathEscape(shopID), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Shop *models.Shop `json:"shop"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Shop == nil {
		c.log.Warn("malformed shop response", zap.String("shop_id", shopID), zap.Error(err))
		return nil, ErrShopNotFound
	}
	return payload.Shop, nil
}

func (c *CatalogClient) FetchShopProducts(ctx context.Context, shopID string) ([]models.Product, error) {
	body, err := c.get(ctx, "/products", url.Values{"shopId": {shopID}})
	if err != nil {
		return nil, err
	}
	return c.decodeProducts(body, shopID)
}

func (c *CatalogClient) FetchShopsByCategory(ctx context.Context, tag models.CategoryTag) ([]models.Shop, error) {
	body, err := c.get(ctx, "/shops", url.Values{"category": {string(tag)}})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Shops []models.Shop `json:"shops"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Shops == nil {
		c.log.Warn("malformed shops response", zap.String("category", string(tag)), zap.Error(err))
		return nil, nil
	}
	return payload.Shops, nil
}

func (c *CatalogClient) FetchProductsByCategory(ctx context.Context, tag models.CategoryTag, shopID string) ([]models.Product, error) {
	query := url.Values{"category": {string(tag)}}
	if shopID != "" {
		query.Set("shopId", shopID)
	}
	body, err := c.get(ctx, "/products", query)
	if err != nil {
		return nil, err
	}
	return c.decodeProducts(body, shopID)
}

func (c *CatalogClient) AddToCart(ctx context.Context, req UpstreamCartRequest) (json.RawMessage, error) {
	return c.post(ctx, "/cart/addToCart", req)
}

func (c *CatalogClient) ReduceQuantity(ctx context.Context, req UpstreamCartRequest) (json.RawMessage, error) {
	return c.post(ctx, "/cart/reduceQuantity", req)
}

func (c *CatalogClient) decodeProducts(body []byte, shopID string) ([]models.Product, error) {
	var payload struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Products == nil {
		c.log.Warn("malformed products response", zap.String("shop_id", shopID), zap.Error(err))
		return nil, nil
	}
	return payload.Products, nil
}

// get issues an authenticated GET with a single retry on transport failure
// or 5xx.
func (c *CatalogClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		body, retryable, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *CatalogClient) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	body, _, err := c.do(ctx, http.MethodPost, path, nil, encoded)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// do performs one request. The second return value reports whether the
// failure is safe to retry.
func (c *CatalogClient) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, bool, error) {
	token, ok := authtoken.FromContext(ctx)
	if !ok {
		return nil, false, ErrNoToken
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, method == http.MethodGet, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrShopNotFound
	case resp.StatusCode >= 500:
		c.log.Warn("upstream error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, method == http.MethodGet, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("upstream rejected request: status %d", resp.StatusCode)
	}
	return body, false, nil
}
