package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/normalize"
)

// Repository persists normalized catalog records.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a catalog repository around an existing database handle.
func New(db *gorm.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// FindExisting resolves an incoming record to a stored product. Matching is
// scoped by source and tries external_id first, then product_code. A miss is
// (nil, nil), not an error.
func (r *Repository) FindExisting(ctx context.Context, source string, externalID, productCode *string) (*models.Product, error) {
	return lookup(r.db.WithContext(ctx), source, externalID, productCode)
}

// lookup is the single identity-matching implementation, shared between the
// public resolver and the persist transaction so the policy cannot drift.
func lookup(db *gorm.DB, source string, externalID, productCode *string) (*models.Product, error) {
	find := func(column, value string) (*models.Product, error) {
		var product models.Product
		err := db.Where("source = ? AND "+column+" = ?", source, value).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product identity by %s: %w", column, err)
		}
		return &product, nil
	}

	if externalID != nil {
		if p, err := find("external_id", *externalID); err != nil || p != nil {
			return p, err
		}
	}
	if productCode != nil {
		return find("product_code", *productCode)
	}
	return nil, nil
}

// Persist stores one normalized record: the product row is created or updated
// in place, then its variants and assets are fully replaced by the incoming
// set. Everything runs in one transaction so a failed record leaves no
// partial state. It reports whether the product was newly created.
func (r *Repository) Persist(ctx context.Context, c *normalize.Canonical) (created bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := lookup(tx, c.Product.Source, c.Product.ExternalID, c.Product.ProductCode)
		if err != nil {
			return err
		}

		if existing == nil {
			created = true
			if err := tx.Omit("Variants", "Assets").Create(&c.Product).Error; err != nil {
				return fmt.Errorf("create product: %w", err)
			}
		} else {
			c.Product.ID = existing.ID
			c.Product.CreatedAt = existing.CreatedAt
			if err := tx.Omit("Variants", "Assets").Save(&c.Product).Error; err != nil {
				return fmt.Errorf("update product: %w", err)
			}
		}

		r.replaceChildren(tx, c)
		return nil
	})
	return created, err
}

// replaceChildren deletes the product's stored variants and assets and
// inserts the incoming set. Child failures are logged and tolerated, never
// aborting the product's save: a skipped variant, a failed asset insert, or
// a delete against an already-empty collection all leave the rest of the
// record intact.
func (r *Repository) replaceChildren(tx *gorm.DB, c *normalize.Canonical) {
	productID := c.Product.ID

	if err := tx.Where("product_id = ?", productID).Delete(&models.DigitalAsset{}).Error; err != nil {
		r.logger.Warn("Failed to clear stored assets", zap.String("product_id", productID), zap.Error(err))
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		r.logger.Warn("Failed to clear stored variants", zap.String("product_id", productID), zap.Error(err))
	}

	// Supplier variant id to database id, filled as variants are inserted.
	variantIDMap := make(map[string]string, len(c.Variants))

	for i := range c.Variants {
		v := &c.Variants[i]
		if v.VariantID == "" {
			r.logger.Warn("Skipping variant without supplier id",
				zap.String("product_id", productID),
				zap.String("product_code", c.Code()),
			)
			continue
		}

		v.ID = ""
		v.ProductID = productID
		if err := tx.Create(v).Error; err != nil {
			r.logger.Warn("Failed to save variant",
				zap.String("product_id", productID),
				zap.String("variant_id", v.VariantID),
				zap.Error(err),
			)
			continue
		}
		variantIDMap[v.VariantID] = v.ID
	}

	for _, a := range c.Assets {
		if a.URL == "" {
			r.logger.Warn("Skipping asset without URL",
				zap.String("product_id", productID),
				zap.String("product_code", c.Code()),
			)
			continue
		}

		asset := models.DigitalAsset{
			ProductID:  productID,
			URL:        a.URL,
			URLHighRes: a.URLHighRes,
			Type:       a.Type,
			Subtype:    a.Subtype,
		}
		// Orphan assets (source variant never materialized) attach at product
		// level rather than being dropped.
		if dbID, ok := variantIDMap[a.SourceVariantID]; ok && a.SourceVariantID != "" {
			asset.VariantID = &dbID
		}
		if err := tx.Create(&asset).Error; err != nil {
			r.logger.Warn("Failed to save asset",
				zap.String("product_id", productID),
				zap.String("url", a.URL),
				zap.Error(err),
			)
		}
	}
}

// ListFilter narrows List results.
type ListFilter struct {
	Source string
	Limit  int
	Offset int
}

// List returns products, newest first, optionally filtered by source.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []models.Product
	if err := query.Order("updated_at DESC").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// Get returns one product with its variants and assets, or gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Assets").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
