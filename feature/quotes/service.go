package quotes

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogmodels "catalog-sync/feature/catalog/models"
	"catalog-sync/feature/quotes/models"
)

// Service handles quote requests.
type Service struct {
	db     *gorm.DB
	engine *Engine
	logger *zap.Logger
}

// NewService creates a new quotes service.
func NewService(db *gorm.DB, engine *Engine, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		engine: engine,
		logger: logger,
	}
}

// CreateRequestInput is the payload for CreateRequest.
type CreateRequestInput struct {
	ProductID              string  `json:"product_id"`
	Quantity               int     `json:"quantity"`
	PersonalizationRemarks *string `json:"personalization_remarks"`
}

// CreateRequest persists a product request, runs the quote engine against
// the product's price and stores one quote per provider. The stored product
// price is the quote base; a product without one quotes from zero.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ProductRequest, error) {
	if input.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	var product catalogmodels.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", input.ProductID).Error; err != nil {
		return nil, err
	}

	basePrice := 0.0
	if product.Price != nil {
		basePrice = *product.Price
	}

	request := models.ProductRequest{
		ProductID:              product.ID,
		ProductName:            product.Name,
		Quantity:               input.Quantity,
		PersonalizationRemarks: input.PersonalizationRemarks,
		Status:                 models.RequestStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("Fetching provider quotes",
		zap.String("request_id", request.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", input.Quantity),
		zap.Float64("base_price", basePrice),
	)

	for _, q := range s.engine.Quotes(input.Quantity, basePrice) {
		quote := models.ProviderQuote{
			RequestID:        request.ID,
			ProviderName:     q.ProviderName,
			Price:            q.Price,
			DeliveryDays:     q.DeliveryDays,
			ReliabilityScore: q.ReliabilityScore,
			ResponseTimeMS:   q.ResponseTimeMS,
		}
		if err := s.db.WithContext(ctx).Create(&quote).Error; err != nil {
			return nil, fmt.Errorf("store quote from %s: %w", q.ProviderName, err)
		}
		request.Quotes = append(request.Quotes, quote)
	}

	return &request, nil
}

// GetRequest returns one request with its quotes, or gorm.ErrRecordNotFound.
func (s *Service) GetRequest(ctx context.Context, id string) (*models.ProductRequest, error) {
	var request models.ProductRequest
	err := s.db.WithContext(ctx).
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests returns all requests, newest first, without quotes.
func (s *Service) ListRequests(ctx context.Context) ([]models.ProductRequest, error) {
	var requests []models.ProductRequest
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}
