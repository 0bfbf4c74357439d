package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatusPending is the initial status of a ProductRequest.
const RequestStatusPending = "pending"

// ProductRequest is a customer request for a quantity of a catalog product.
// Creating one triggers a quote run across all providers.
type ProductRequest struct {
	ID        string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProductID string `gorm:"column:product_id;type:varchar(36);not null;index" json:"product_id"`

	// ProductName is denormalized at request time so the request stays
	// readable even if the product is later re-synced or removed.
	ProductName string `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"`

	Quantity               int     `gorm:"column:quantity;not null" json:"quantity"`
	PersonalizationRemarks *string `gorm:"column:personalization_remarks;type:text" json:"personalization_remarks"`
	Status                 string  `gorm:"column:status;type:varchar(16);not null;default:pending" json:"status"`

	Quotes []ProviderQuote `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"quotes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ProductRequest) TableName() string {
	return "product_requests"
}

// BeforeCreate assigns the request id.
func (r *ProductRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ProviderQuote is one provider's simulated offer for a request.
type ProviderQuote struct {
	ID        string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	RequestID string `gorm:"column:request_id;type:varchar(36);not null;index" json:"request_id"`

	ProviderName     string  `gorm:"column:provider_name;type:varchar(32);not null" json:"provider_name"`
	Price            float64 `gorm:"column:price;not null" json:"price"`
	DeliveryDays     int     `gorm:"column:delivery_days;not null" json:"delivery_days"`
	ReliabilityScore float64 `gorm:"column:reliability_score;not null" json:"reliability_score"`
	ResponseTimeMS   int64   `gorm:"column:response_time_ms;not null" json:"response_time_ms"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (ProviderQuote) TableName() string {
	return "provider_quotes"
}

// BeforeCreate assigns the quote id.
func (q *ProviderQuote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// All returns every quotes model, in migration order.
func All() []any {
	return []any{&ProductRequest{}, &ProviderQuote{}}
}
