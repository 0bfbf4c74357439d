package feed

import (
	"context"
	"encoding/json"
	"net/http"

	"catalog-sync/core/server"

	"go.uber.org/zap"
)

// Gateway hosts per environment.
const (
	midoceanProductionURL = "https://api.midocean.com"
	midoceanTestURL       = "https://apitest.midocean.com"

	midoceanProductsPath = "/gateway/products/2.0"
)

// MidoceanClient fetches product records from the midocean gateway.
type MidoceanClient struct {
	cfg    MidoceanConfig
	client *http.Client
	logger *zap.Logger
}

// NewMidoceanClient creates a midocean feed client.
func NewMidoceanClient(cfg MidoceanConfig, logger *zap.Logger) *MidoceanClient {
	return &MidoceanClient{
		cfg:    cfg,
		client: http.DefaultClient,
		logger: logger,
	}
}

// baseURL resolves the gateway host. An explicit BaseURL wins over the
// environment switch, which keeps tests and proxies simple.
func (c *MidoceanClient) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	if c.cfg.Environment == "production" {
		return midoceanProductionURL
	}
	return midoceanTestURL
}

// Products retrieves the full product list. The gateway ignores pagination;
// the document contains every product in one response. The language is pinned
// to English because the normalizer's key chains assume it.
func (c *MidoceanClient) Products(ctx context.Context) ([]json.RawMessage, error) {
	url := c.baseURL() + midoceanProductsPath + "?language=en"

	c.logger.Info("Fetching midocean products",
		zap.String("environment", c.cfg.Environment),
		zap.String("api_key", maskKey(c.cfg.ApiKey)),
	)

	body, err := fetchJSON(ctx, c.client, server.SupplierMidocean, url, map[string]string{
		"x-Gateway-APIKey": c.cfg.ApiKey,
	})
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(body)
	if err != nil {
		return nil, &FetchError{Supplier: server.SupplierMidocean, Err: err}
	}

	c.logger.Info("Midocean feed fetched", zap.Int("records", len(records)))
	return records, nil
}

// maskKey hides the middle of an API key for log output.
func maskKey(key string) string {
	if len(key) <= 12 {
		return "***"
	}
	return key[:8] + "..." + key[len(key)-4:]
}
