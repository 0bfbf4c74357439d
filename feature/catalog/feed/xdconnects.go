package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"catalog-sync/core/server"

	"go.uber.org/zap"
)

// errNoFeedURL is returned when the signed feed URL is missing from config.
var errNoFeedURL = errors.New("product feed URL not configured")

// XDProduct is the typed intermediate for one XD Connects feed record.
// The feed is flat and PascalCase-keyed; a few sustainability fields use
// spaces in their key names. Numeric fields arrive as numbers or strings
// depending on the feed revision, so they are typed as any and coerced by
// the normalizer.
type XDProduct struct {
	FeedCreatedDateTime          string `json:"FeedCreatedDateTime"`
	ItemDataLastModifiedDateTime string `json:"ItemDataLastModifiedDateTime"`

	ModelCode        string `json:"ModelCode"`
	ItemCode         string `json:"ItemCode"`
	ProductLifeCycle string `json:"ProductLifeCycle"`
	IntroDate        string `json:"IntroDate"`

	ItemName        string `json:"ItemName"`
	LongDescription string `json:"LongDescription"`
	Brand           string `json:"Brand"`
	MainCategory    string `json:"MainCategory"`
	SubCategory     string `json:"SubCategory"`
	Material        string `json:"Material"`
	Color           string `json:"Color"`
	PMSColor1       string `json:"PMSColor1"`
	HexColor1       string `json:"HexColor1"`

	ItemLengthCM      any    `json:"ItemLengthCM"`
	ItemWidthCM       any    `json:"ItemWidthCM"`
	ItemHeightCM      any    `json:"ItemHeightCM"`
	ItemDimensions    string `json:"ItemDimensions"`
	ItemWeightNetGr   any    `json:"ItemWeightNetGr"`
	ItemWeightGrossGr any    `json:"ItemWeightGrossGr"`

	CountryOfOrigin   string `json:"CountryOfOrigin"`
	CommodityCode     string `json:"CommodityCode"`
	EANCode           string `json:"EANCode"`
	PackagingTypeItem string `json:"PackagingTypeItem"`

	OuterCartonLengthCM      any    `json:"OuterCartonLengthCM"`
	OuterCartonWidthCM       any    `json:"OuterCartonWidthCM"`
	OuterCartonHeightCM      any    `json:"OuterCartonHeightCM"`
	OuterCartonDimensions    string `json:"OuterCartonDimensions"`
	OuterCartonWeightNetKG   any    `json:"OuterCartonWeightNetKG"`
	OuterCartonWeightGrossKG any    `json:"OuterCartonWeightGrossKG"`
	InnerboxQty              any    `json:"InnerboxQty"`
	OuterCartonQty           any    `json:"OuterCartonQty"`

	// Sustainability flags. Preserved in raw_data; not normalized columns.
	Compliance     string `json:"Compliance"`
	Certifications string `json:"Certifications"`
	Eco            any    `json:"Eco"`
	PVCFree        any    `json:"PVC free"`

	AllImages        string `json:"AllImages"`
	MainImage        string `json:"MainImage"`
	MainImageNeutral string `json:"MainImageNeutral"`
	ExtraImage1      string `json:"ExtraImage1"`
	ExtraImage2      string `json:"ExtraImage2"`
	ExtraImage3      string `json:"ExtraImage3"`
	ImagePrint       string `json:"ImagePrint"`
}

// XDConnectsClient downloads the XD Connects product feed.
type XDConnectsClient struct {
	cfg    XDConnectsConfig
	client *http.Client
	logger *zap.Logger
}

// NewXDConnectsClient creates an XD Connects feed client.
func NewXDConnectsClient(cfg XDConnectsConfig, logger *zap.Logger) *XDConnectsClient {
	return &XDConnectsClient{
		cfg:    cfg,
		client: http.DefaultClient,
		logger: logger,
	}
}

// Products downloads the product feed. XD serves a plain JSON array from a
// pre-signed URL; there are no auth headers.
func (c *XDConnectsClient) Products(ctx context.Context) ([]json.RawMessage, error) {
	if c.cfg.ProductFeedURL == "" {
		return nil, &FetchError{Supplier: server.SupplierXDConnects, Err: errNoFeedURL}
	}

	body, err := fetchJSON(ctx, c.client, server.SupplierXDConnects, c.cfg.ProductFeedURL, nil)
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(body)
	if err != nil {
		return nil, &FetchError{Supplier: server.SupplierXDConnects, Err: err}
	}

	c.logger.Info("XD Connects feed fetched", zap.Int("records", len(records)))
	return records, nil
}
